package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

func init() {
	// TGA has no magic number; match on "no color map" plus a supported image type.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGAReader, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGAReader, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}

	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes a true-color TGA file, uncompressed (type 2) or RLE (type 10).
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8

	if h.imageType == TGATypeUncompressed {
		if len(pixelData) < h.width*h.height*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < h.width*h.height; i++ {
			setTGAPixel(img, h, i, tgaColor(pixelData[i*bytesPerPixel:], bytesPerPixel))
		}
		return img, nil
	}

	if err := decodeTGARLE(img, h, pixelData, bytesPerPixel); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeTGARLE decodes RLE packets into img.
func decodeTGARLE(img *image.NRGBA, h tgaHeader, pixelData []byte, bytesPerPixel int) error {
	pixelCount := h.width * h.height
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixelIdx, pixelCount)
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixelIdx, pixelCount)
			}
			c := tgaColor(pixelData[dataIdx:], bytesPerPixel)
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				setTGAPixel(img, h, pixelIdx, c)
				pixelIdx++
			}
			continue
		}

		// Raw packet
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixelIdx, pixelCount)
			}
			setTGAPixel(img, h, pixelIdx, tgaColor(pixelData[dataIdx:], bytesPerPixel))
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return nil
}

// tgaColor reads one BGR(A) pixel.
func tgaColor(p []byte, bytesPerPixel int) color.NRGBA {
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

func setTGAPixel(img *image.NRGBA, h tgaHeader, idx int, c color.NRGBA) {
	x := idx % h.width
	y := idx / h.width
	if !h.topToBottom {
		y = h.height - 1 - y
	}
	img.SetNRGBA(x, y, c)
}

func decodeTGAReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading TGA: %w", err)
	}
	return DecodeTGA(data)
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	header := make([]byte, tgaHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return image.Config{}, fmt.Errorf("reading TGA header: %w", err)
	}
	h, err := parseTGAHeader(header)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// EncodeTGA writes img as an uncompressed 32-bit top-to-bottom TGA.
func EncodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xFFFF || b.Dy() > 0xFFFF {
		return fmt.Errorf("image %dx%d too large for TGA", b.Dx(), b.Dy())
	}

	var buf bytes.Buffer
	header := make([]byte, tgaHeaderSize)
	header[2] = TGATypeUncompressed
	header[12], header[13] = byte(b.Dx()), byte(b.Dx()>>8)
	header[14], header[15] = byte(b.Dy()), byte(b.Dy()>>8)
	header[16] = 32
	header[17] = 0x20 | 8
	buf.Write(header)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Write([]byte{c.B, c.G, c.R, c.A})
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
