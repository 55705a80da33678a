package relief

import (
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/Faultbox/slatrelief/pkg/math"
)

// GridPoint is one sampled cell of the relief grid.
type GridPoint struct {
	U, V      float64   // Normalized grid position
	Intensity uint8     // Sampled channel value
	Height    float64   // Normalized height after inversion
	Position  math.Vec3 // Displaced, transformed point
}

// Profile is the polyline of one row. Points holds the two closing points on
// the base plane (u=1, then u=0) followed by the samples in increasing u.
type Profile struct {
	Row     int
	V       float64
	Points  []math.Vec3
	Samples []GridPoint
}

// Extrusion is one slat: a profile swept along Direction by Thickness.
type Extrusion struct {
	ID        uuid.UUID
	Name      string
	Row       int
	Profile   Profile
	Direction math.Vec3
	Thickness float64
	Flipped   bool

	// SkipCSGUnion marks the solid as independent of its neighbours; a
	// downstream solid merge must not union it with other slats.
	SkipCSGUnion bool
}

// Material describes how the display panel is shaded.
type Material struct {
	Name    string
	Color   color.NRGBA
	Unlit   bool
	Texture image.Image
}

// Panel is the flat textured rectangle showing the source image.
// Corners run counter-clockwise from the origin; UVs[i] belongs to Corners[i].
type Panel struct {
	ID       uuid.UUID
	Name     string
	Corners  [4]math.Vec3
	UVs      [4]math.UV
	Material Material
}

// Model is the generated relief: one panel plus SlatCount+1 extrusions in
// row order.
type Model struct {
	Panel      Panel
	Extrusions []Extrusion
	Transform  math.Mat4
	Config     Config
}

// ElementCount returns the number of generated elements.
func (m *Model) ElementCount() int {
	return 1 + len(m.Extrusions)
}
