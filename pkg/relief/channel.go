package relief

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel selects which 8-bit value of a pixel is used as its intensity.
type Channel int

// Supported intensity channels.
const (
	ChannelRed       Channel = iota // Non-premultiplied red byte
	ChannelGreen                    // Non-premultiplied green byte
	ChannelBlue                     // Non-premultiplied blue byte
	ChannelGray                     // Luma as computed by color.GrayModel
	ChannelLightness                // CIE L*, scaled to 0-255
)

var channelNames = map[Channel]string{
	ChannelRed:       "red",
	ChannelGreen:     "green",
	ChannelBlue:      "blue",
	ChannelGray:      "gray",
	ChannelLightness: "lightness",
}

// ParseChannel returns the channel with the given name (case-insensitive).
func ParseChannel(s string) (Channel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for ch, n := range channelNames {
		if n == name {
			return ch, nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// String returns the channel name.
func (c Channel) String() string {
	if n, ok := channelNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	_, ok := channelNames[c]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown channel %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(text []byte) error {
	ch, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = ch
	return nil
}

// Intensity extracts the channel value from a colour.
func (c Channel) Intensity(col color.Color) uint8 {
	switch c {
	case ChannelGreen:
		return color.NRGBAModel.Convert(col).(color.NRGBA).G
	case ChannelBlue:
		return color.NRGBAModel.Convert(col).(color.NRGBA).B
	case ChannelGray:
		return color.GrayModel.Convert(col).(color.Gray).Y
	case ChannelLightness:
		cf, ok := colorful.MakeColor(col)
		if !ok {
			// fully transparent
			return 0
		}
		l, _, _ := cf.Lab()
		return uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
	default:
		return color.NRGBAModel.Convert(col).(color.NRGBA).R
	}
}
