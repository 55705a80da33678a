// Package relief turns a raster image into a slatted bas-relief: one extruded
// profile per image row plus a flat panel textured with the image itself.
package relief

import (
	"fmt"
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/Faultbox/slatrelief/pkg/math"
)

// PanelName is the name of the display panel element.
const PanelName = "display-panel"

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Faultbox/slatrelief"))

// elementID derives a stable identifier from an element name.
func elementID(name string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(name))
}

// SlatName returns the element name of the slat built from row.
func SlatName(row int) string {
	return fmt.Sprintf("slat-%d", row)
}

// Builder generates relief models from images. It holds no mutable state and
// is safe for concurrent use.
type Builder struct {
	cfg       Config
	sampler   Sampler
	transform math.Mat4
}

// NewBuilder creates a builder for cfg. The config is validated by each
// build call, not here.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:       cfg,
		sampler:   NewSampler(cfg.Channel),
		transform: cfg.Transform(),
	}
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build generates the full model. The config is validated before any geometry
// is built and the image is checked before any row is sampled; on failure no
// model is returned.
func (b *Builder) Build(img image.Image) (*Model, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := b.sampler.Check(img); err != nil {
		return nil, err
	}

	model := &Model{
		Panel:      b.panel(img),
		Extrusions: make([]Extrusion, 0, b.cfg.SlatCount+1),
		Transform:  b.transform,
		Config:     b.cfg,
	}

	for row := 0; row <= b.cfg.SlatCount; row++ {
		profile, err := b.buildRow(img, row)
		if err != nil {
			return nil, fmt.Errorf("building row %d: %w", row, err)
		}
		model.Extrusions = append(model.Extrusions, b.extrude(profile))
	}

	return model, nil
}

// BuildRow generates the profile of a single row in [0, SlatCount].
func (b *Builder) BuildRow(img image.Image, row int) (Profile, error) {
	if err := b.cfg.Validate(); err != nil {
		return Profile{}, err
	}
	if row < 0 || row > b.cfg.SlatCount {
		return Profile{}, fmt.Errorf("%w: row %d outside [0, %d]", ErrInvalidConfig, row, b.cfg.SlatCount)
	}
	if err := b.sampler.Check(img); err != nil {
		return Profile{}, err
	}
	return b.buildRow(img, row)
}

// BuildPanel generates the display panel for img.
func (b *Builder) BuildPanel(img image.Image) Panel {
	return b.panel(img)
}

func (b *Builder) buildRow(img image.Image, row int) (Profile, error) {
	cols := b.cfg.SlatResolution
	v := float64(row) / float64(b.cfg.SlatCount)

	profile := Profile{
		Row:     row,
		V:       v,
		Points:  make([]math.Vec3, 0, cols+3),
		Samples: make([]GridPoint, 0, cols+1),
	}

	// Base edge, traversed from u=1 back to u=0.
	profile.Points = append(profile.Points,
		b.transform.TransformVec3(math.Vec3{X: 1, Y: v, Z: 0}),
		b.transform.TransformVec3(math.Vec3{X: 0, Y: v, Z: 0}),
	)

	for col := 0; col <= cols; col++ {
		u := float64(col) / float64(cols)
		c, err := b.sampler.Sample(img, u, v)
		if err != nil {
			return Profile{}, err
		}
		h := Height(c, b.cfg.Invert)
		z := h*b.cfg.ZDimension + b.cfg.BaseOffset
		pos := b.transform.TransformVec3(math.Vec3{X: u, Y: v, Z: z})

		profile.Points = append(profile.Points, pos)
		profile.Samples = append(profile.Samples, GridPoint{
			U:         u,
			V:         v,
			Intensity: c,
			Height:    h,
			Position:  pos,
		})
	}

	return profile, nil
}

func (b *Builder) extrude(p Profile) Extrusion {
	name := SlatName(p.Row)
	return Extrusion{
		ID:           elementID(name),
		Name:         name,
		Row:          p.Row,
		Profile:      p,
		Direction:    math.YAxis,
		Thickness:    b.cfg.Thickness,
		Flipped:      false,
		SkipCSGUnion: true,
	}
}

// panel builds the unit rectangle scaled to the XY extent. Image row 0 is the
// top of the picture while geometric V grows upward, so V is flipped.
func (b *Builder) panel(img image.Image) Panel {
	unit := [4]math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}

	var p Panel
	p.ID = elementID(PanelName)
	p.Name = PanelName
	for i, c := range unit {
		p.Corners[i] = b.transform.TransformVec3(c)
		p.UVs[i] = math.UV{U: c.X, V: c.Y}.FlipV()
	}
	p.Material = Material{
		Name:    "panel-texture",
		Color:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Unlit:   true,
		Texture: img,
	}
	return p
}

// BuildRow generates one row profile for cfg without building the rest of
// the model.
func BuildRow(cfg Config, img image.Image, row int) (Profile, error) {
	return NewBuilder(cfg).BuildRow(img, row)
}

// Build generates the full model for cfg.
func Build(cfg Config, img image.Image) (*Model, error) {
	return NewBuilder(cfg).Build(img)
}
