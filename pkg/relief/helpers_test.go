package relief

import (
	"image"
	"image/color"
)

// redImage builds a w x h image whose red channel is red(x, y).
func redImage(w, h int, red func(x, y int) uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: red(x, y), G: 7, B: 9, A: 255})
		}
	}
	return img
}

// gradientImage has red increasing left to right and green top to bottom.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(1, w-1)),
				G: uint8(y * 255 / max(1, h-1)),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func testConfig(slats, resolution int) Config {
	cfg := DefaultConfig()
	cfg.SlatCount = slats
	cfg.SlatResolution = resolution
	return cfg
}
