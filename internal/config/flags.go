package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/slatrelief/pkg/relief"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagImage      = flag.String("image", "", "Source image path")
	flagOut        = flag.String("out", "", "Output directory")
	flagSlats      = flag.Int("slats", 0, "Number of slat intervals (slats+1 slats are built)")
	flagResolution = flag.Int("resolution", 0, "Samples per slat minus one")
	flagX          = flag.Float64("x", 0, "Panel width")
	flagY          = flag.Float64("y", 0, "Panel depth")
	flagZ          = flag.Float64("z", 0, "Relief height scale")
	flagInvert     = flag.Bool("invert", false, "Raise dark pixels instead of bright ones")
	flagChannel    = flag.String("channel", "", "Intensity channel: red, green, blue, gray, lightness")
	flagSTL        = flag.Bool("stl", false, "Also write a binary STL of the slats")
	flagPreview    = flag.Bool("preview", false, "Write a PNG plot of the slat profiles")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// visitFlags walks the flags given on the command line.
var visitFlags = flag.Visit

// setFlags returns the names of flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	visitFlags(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags applies CLI flag overrides to the config. Only flags in set are
// applied, so an explicit invalid value reaches Validate instead of being
// mistaken for "not given".
func applyFlags(cfg *Config, set map[string]bool) error {
	if set["debug"] && *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if set["image"] {
		cfg.Input.Image = *flagImage
	} else if flag.NArg() > 0 {
		cfg.Input.Image = flag.Arg(0)
	}
	if set["out"] {
		cfg.Output.Dir = *flagOut
	}
	if set["slats"] {
		cfg.Relief.SlatCount = *flagSlats
	}
	if set["resolution"] {
		cfg.Relief.SlatResolution = *flagResolution
	}
	if set["x"] {
		cfg.Relief.XDimension = *flagX
	}
	if set["y"] {
		cfg.Relief.YDimension = *flagY
	}
	if set["z"] {
		cfg.Relief.ZDimension = *flagZ
	}
	if set["invert"] {
		cfg.Relief.Invert = *flagInvert
	}
	if set["channel"] {
		ch, err := relief.ParseChannel(*flagChannel)
		if err != nil {
			return fmt.Errorf("-channel: %w", err)
		}
		cfg.Relief.Channel = ch
	}
	if set["stl"] {
		cfg.Output.STL = *flagSTL
	}
	if set["preview"] {
		cfg.Preview.Enabled = *flagPreview
	}
	return nil
}
