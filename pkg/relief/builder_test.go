package relief

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/slatrelief/pkg/math"
)

func TestBuildWorkedExample(t *testing.T) {
	// Red channel [[0,255],[255,0]].
	img := redImage(2, 2, func(x, y int) uint8 {
		if x == y {
			return 0
		}
		return 255
	})
	cfg := DefaultConfig()
	cfg.SlatCount = 1
	cfg.SlatResolution = 1

	model, err := Build(cfg, img)
	require.NoError(t, err)
	require.Len(t, model.Extrusions, 2)

	row0 := model.Extrusions[0].Profile
	assert.Equal(t, []math.Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0.5},
		{X: 1, Y: 0, Z: 1.5},
	}, row0.Points)

	row1 := model.Extrusions[1].Profile
	assert.Equal(t, []math.Vec3{
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 1.5},
		{X: 1, Y: 1, Z: 0.5},
	}, row1.Points)

	assert.Equal(t, uint8(0), row0.Samples[0].Intensity)
	assert.Equal(t, uint8(255), row0.Samples[1].Intensity)
}

func TestBuildElementCounts(t *testing.T) {
	img := gradientImage(64, 48)

	for _, tc := range []struct{ slats, resolution int }{
		{1, 1}, {1, 7}, {5, 1}, {12, 40}, {63, 100},
	} {
		model, err := Build(testConfig(tc.slats, tc.resolution), img)
		require.NoError(t, err)

		assert.Len(t, model.Extrusions, tc.slats+1)
		assert.Equal(t, tc.slats+2, model.ElementCount())
		for _, e := range model.Extrusions {
			assert.Len(t, e.Profile.Points, tc.resolution+3, "slat %s", e.Name)
			assert.Len(t, e.Profile.Samples, tc.resolution+1, "slat %s", e.Name)
		}
	}
}

func TestBuildGridCoverage(t *testing.T) {
	const slats, resolution = 4, 8
	model, err := Build(testConfig(slats, resolution), gradientImage(16, 16))
	require.NoError(t, err)

	for i, e := range model.Extrusions {
		assert.Equal(t, i, e.Row)
		assert.Equal(t, float64(i)/slats, e.Profile.V)
		if i > 0 {
			assert.Greater(t, e.Profile.V, model.Extrusions[i-1].Profile.V)
		}
		for j, s := range e.Profile.Samples {
			assert.Equal(t, float64(j)/resolution, s.U)
			assert.Equal(t, e.Profile.V, s.V)
			if j > 0 {
				assert.Greater(t, s.U, e.Profile.Samples[j-1].U)
			}
		}
		assert.Equal(t, 0.0, e.Profile.Samples[0].U)
		assert.Equal(t, 1.0, e.Profile.Samples[resolution].U)
	}
	assert.Equal(t, 0.0, model.Extrusions[0].Profile.V)
	assert.Equal(t, 1.0, model.Extrusions[slats].Profile.V)
}

func TestBuildClosingPointOrder(t *testing.T) {
	cfg := testConfig(3, 5)
	cfg.XDimension = 4
	cfg.YDimension = 2

	p, err := BuildRow(cfg, gradientImage(8, 8), 2)
	require.NoError(t, err)

	y := 2.0 / 3.0 * 2
	assert.Equal(t, math.Vec3{X: 4, Y: y, Z: 0}, p.Points[0])
	assert.Equal(t, math.Vec3{X: 0, Y: y, Z: 0}, p.Points[1])
	assert.Equal(t, 0.0, p.Points[2].X)
	assert.Equal(t, 4.0, p.Points[len(p.Points)-1].X)
}

func TestBuildScalesXYNotZ(t *testing.T) {
	img := redImage(4, 4, func(x, y int) uint8 { return 255 })
	cfg := testConfig(2, 2)
	cfg.XDimension = 3
	cfg.YDimension = 5
	cfg.ZDimension = 2

	model, err := Build(cfg, img)
	require.NoError(t, err)

	last := model.Extrusions[2].Profile.Samples[2].Position
	assert.Equal(t, math.Vec3{X: 3, Y: 5, Z: 2.5}, last)

	assert.Equal(t, [4]math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
		{X: 3, Y: 5, Z: 0},
		{X: 0, Y: 5, Z: 0},
	}, model.Panel.Corners)
}

func TestBuildPanelFlipsV(t *testing.T) {
	img := gradientImage(4, 4)
	panel := NewBuilder(DefaultConfig()).BuildPanel(img)

	assert.Equal(t, [4]math.UV{
		{U: 0, V: 1},
		{U: 1, V: 1},
		{U: 1, V: 0},
		{U: 0, V: 0},
	}, panel.UVs)
	assert.Equal(t, PanelName, panel.Name)
	assert.True(t, panel.Material.Unlit)
	assert.Equal(t, image.Image(img), panel.Material.Texture)

	// The top edge of the panel (geometric V=1) shows image row 0.
	for i, c := range panel.Corners {
		if c.Y == 1 {
			assert.Equal(t, 0.0, panel.UVs[i].V)
		}
	}
}

func TestBuildExtrusionAttributes(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.Thickness = 0.25

	model, err := Build(cfg, gradientImage(8, 8))
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, e := range model.Extrusions {
		assert.Equal(t, SlatName(i), e.Name)
		assert.True(t, e.SkipCSGUnion)
		assert.False(t, e.Flipped)
		assert.Equal(t, math.YAxis, e.Direction)
		assert.Equal(t, 0.25, e.Thickness)
		assert.False(t, seen[e.ID.String()], "duplicate id %s", e.ID)
		seen[e.ID.String()] = true
	}
	assert.NotEqual(t, model.Panel.ID, model.Extrusions[0].ID)
}

func TestBuildDeterministic(t *testing.T) {
	img := gradientImage(33, 21)
	cfg := testConfig(9, 17)
	cfg.Channel = ChannelLightness

	first, err := Build(cfg, img)
	require.NoError(t, err)
	second, err := NewBuilder(cfg).Build(img)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Build() not deterministic (-first +second):\n%s", diff)
	}
}

func TestBuildInvertComplementary(t *testing.T) {
	img := gradientImage(32, 32)
	cfg := testConfig(6, 11)
	cfg.ZDimension = 3

	normal, err := Build(cfg, img)
	require.NoError(t, err)
	cfg.Invert = true
	inverted, err := Build(cfg, img)
	require.NoError(t, err)

	for i := range normal.Extrusions {
		a := normal.Extrusions[i].Profile.Samples
		b := inverted.Extrusions[i].Profile.Samples
		for j := range a {
			assert.Equal(t, a[j].Intensity, b[j].Intensity)
			assert.InDelta(t, cfg.ZDimension+1.0, a[j].Position.Z+b[j].Position.Z, 1e-12)
		}
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	img := gradientImage(4, 4)

	for _, cfg := range []Config{
		testConfig(0, 4),
		testConfig(4, 0),
		testConfig(-1, 4),
	} {
		model, err := Build(cfg, img)
		assert.Nil(t, model)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
	}

	// Config errors win over image errors.
	_, err := Build(testConfig(0, 0), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuildRejectsEmptyImage(t *testing.T) {
	for _, img := range []image.Image{
		image.NewNRGBA(image.Rect(0, 0, 0, 10)),
		image.NewNRGBA(image.Rect(0, 0, 10, 0)),
		nil,
	} {
		model, err := Build(DefaultConfig(), img)
		assert.Nil(t, model)
		assert.ErrorIs(t, err, ErrInvalidImage)
	}
}

func TestBuildRowBounds(t *testing.T) {
	img := gradientImage(4, 4)
	b := NewBuilder(testConfig(3, 3))

	_, err := b.BuildRow(img, -1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = b.BuildRow(img, 4)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := b.BuildRow(img, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.V)
}

func TestBuildRowMatchesBuild(t *testing.T) {
	img := gradientImage(20, 10)
	cfg := testConfig(5, 6)

	model, err := Build(cfg, img)
	require.NoError(t, err)

	for i, e := range model.Extrusions {
		p, err := BuildRow(cfg, img, i)
		require.NoError(t, err)
		if diff := cmp.Diff(e.Profile, p); diff != "" {
			t.Errorf("row %d differs (-build +row):\n%s", i, diff)
		}
	}
}

func TestBuildSingleRowImage(t *testing.T) {
	// A 1-pixel-high image feeds every row from the same pixel row.
	img := redImage(5, 1, func(x, y int) uint8 { return uint8(x * 50) })
	model, err := Build(testConfig(3, 4), img)
	require.NoError(t, err)

	first := model.Extrusions[0].Profile.Samples
	for _, e := range model.Extrusions[1:] {
		for j, s := range e.Profile.Samples {
			assert.Equal(t, first[j].Intensity, s.Intensity)
		}
	}
}
