package relief

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/slatrelief/pkg/math"
)

// Default geometry constants.
const (
	DefaultBaseOffset = 0.5
	DefaultThickness  = 0.1
)

// Grid limits. A full-size grid is MaxSlatCount+1 rows of MaxSlatResolution+1
// samples, about 4M points.
const (
	MaxSlatCount      = 2048
	MaxSlatResolution = 2048
)

// Config holds the relief generation parameters.
type Config struct {
	XDimension float64 `yaml:"x_dimension"` // Panel width in world units
	YDimension float64 `yaml:"y_dimension"` // Panel depth in world units
	ZDimension float64 `yaml:"z_dimension"` // Height of a full-intensity sample above the base offset

	SlatCount      int  `yaml:"slat_count"`      // Row intervals; SlatCount+1 slats are produced
	SlatResolution int  `yaml:"slat_resolution"` // Column intervals; SlatResolution+1 samples per slat
	Invert         bool `yaml:"invert"`          // Dark pixels high instead of bright pixels

	BaseOffset float64 `yaml:"base_offset"` // Added to every sample height; must be >= 0
	Thickness  float64 `yaml:"thickness"`   // Extrusion depth of each slat
	Channel    Channel `yaml:"channel"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		XDimension:     1,
		YDimension:     1,
		ZDimension:     1,
		SlatCount:      20,
		SlatResolution: 100,
		Invert:         false,
		BaseOffset:     DefaultBaseOffset,
		Thickness:      DefaultThickness,
		Channel:        ChannelRed,
	}
}

// Validate checks the config. All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.SlatCount < 1 {
		return fmt.Errorf("%w: slat count must be at least 1, got %d", ErrInvalidConfig, c.SlatCount)
	}
	if c.SlatCount > MaxSlatCount {
		return fmt.Errorf("%w: slat count must be at most %d, got %d", ErrInvalidConfig, MaxSlatCount, c.SlatCount)
	}
	if c.SlatResolution < 1 {
		return fmt.Errorf("%w: slat resolution must be at least 1, got %d", ErrInvalidConfig, c.SlatResolution)
	}
	if c.SlatResolution > MaxSlatResolution {
		return fmt.Errorf("%w: slat resolution must be at most %d, got %d", ErrInvalidConfig, MaxSlatResolution, c.SlatResolution)
	}
	dims := []struct {
		name  string
		value float64
	}{
		{"x dimension", c.XDimension},
		{"y dimension", c.YDimension},
		{"z dimension", c.ZDimension},
		{"thickness", c.Thickness},
	}
	for _, d := range dims {
		if !(d.value > 0) || gomath.IsInf(d.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, d.name, d.value)
		}
	}
	// Samples must stay on or above the base edge or the row outline crosses itself.
	if !(c.BaseOffset >= 0) || gomath.IsInf(c.BaseOffset, 0) {
		return fmt.Errorf("%w: base offset must be finite and non-negative, got %v", ErrInvalidConfig, c.BaseOffset)
	}
	if !c.Channel.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Channel)
	}
	return nil
}

// Transform returns the XY scale applied to every point. Z is left unscaled
// because sample heights are already in world units.
func (c Config) Transform() math.Mat4 {
	return math.Scale(c.XDimension, c.YDimension, 1)
}

// Height maps an intensity to a normalized height in [0, 1].
func Height(intensity uint8, invert bool) float64 {
	h := float64(intensity) / 255
	if invert {
		return 1 - h
	}
	return h
}
