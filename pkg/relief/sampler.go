package relief

import (
	"fmt"
	"image"
	"math"
)

// Sampler reads a single intensity value from an image at a normalized
// (u, v) position. The zero value samples the red channel.
type Sampler struct {
	channel Channel
}

// NewSampler creates a sampler reading the given channel.
func NewSampler(ch Channel) Sampler {
	return Sampler{channel: ch}
}

// Channel returns the channel the sampler reads.
func (s Sampler) Channel() Channel {
	return s.channel
}

// Check reports ErrInvalidImage if img cannot be sampled.
func (s Sampler) Check(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: image is nil", ErrInvalidImage)
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: image is %dx%d", ErrInvalidImage, size.X, size.Y)
	}
	return nil
}

// Sample returns the intensity of the pixel nearest to (u*(W-1), v*(H-1)).
// Row 0 of the image corresponds to v=0.
func (s Sampler) Sample(img image.Image, u, v float64) (uint8, error) {
	if err := s.Check(img); err != nil {
		return 0, err
	}
	b := img.Bounds()
	x, y := PixelIndex(u, v, b.Dx(), b.Dy())
	return s.channel.Intensity(img.At(b.Min.X+x, b.Min.Y+y)), nil
}

// PixelIndex maps a normalized coordinate to a pixel index in a w x h grid.
// Indices are truncated toward zero, then clamped into [0, w-1] x [0, h-1].
func PixelIndex(u, v float64, w, h int) (x, y int) {
	return clampIndex(u*float64(w-1), w), clampIndex(v*float64(h-1), h)
}

func clampIndex(f float64, n int) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= float64(n-1) {
		return n - 1
	}
	return int(f)
}
