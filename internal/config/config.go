// Package config handles loading and saving slatrelief settings.
package config

import (
	"errors"

	"github.com/Faultbox/slatrelief/internal/logger"
	"github.com/Faultbox/slatrelief/pkg/relief"
)

// Config holds all tool settings.
type Config struct {
	Relief  relief.Config `yaml:"relief"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig holds the source image location.
type InputConfig struct {
	Image string `yaml:"image"` // Path to the source image
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir      string `yaml:"dir"`       // Output directory
	BaseName string `yaml:"base_name"` // File name prefix; defaults to the image name
	OBJ      bool   `yaml:"obj"`       // Write OBJ + MTL + texture
	STL      bool   `yaml:"stl"`       // Write binary STL of the slats
}

// PreviewConfig holds profile plot settings.
type PreviewConfig struct {
	Enabled  bool   `yaml:"enabled"`
	File     string `yaml:"file"`      // Relative to the output dir unless absolute
	MaxLines int    `yaml:"max_lines"` // Plotted rows; 0 plots all
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Relief: relief.DefaultConfig(),
		Output: OutputConfig{
			Dir: "output",
			OBJ: true,
			STL: false,
		},
		Preview: PreviewConfig{
			Enabled:  false,
			File:     "profiles.png",
			MaxLines: 12,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the config can drive a run.
func (c *Config) Validate() error {
	if err := c.Relief.Validate(); err != nil {
		return err
	}
	if c.Input.Image == "" {
		return errors.New("no input image set")
	}
	if !c.Output.OBJ && !c.Output.STL && !c.Preview.Enabled {
		return errors.New("nothing to write: enable obj, stl or preview output")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
