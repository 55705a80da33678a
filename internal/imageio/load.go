// Package imageio loads source images from disk.
//
// PNG, JPEG and GIF come from the standard library, BMP, TIFF and WebP from
// golang.org/x/image, and TGA from the decoder in this package.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/slatrelief/pkg/relief"
)

// Load decodes the image at path and returns it with the detected format name.
// Images with zero width or height are rejected with relief.ErrInvalidImage.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

// Decode reads a fully decoded image from r.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", err
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, format, fmt.Errorf("%w: %s image is %dx%d", relief.ErrInvalidImage, format, b.Dx(), b.Dy())
	}
	return img, format, nil
}
