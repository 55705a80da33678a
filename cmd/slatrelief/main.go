// Package main is the entry point for the slatrelief generator.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/slatrelief/internal/config"
	"github.com/Faultbox/slatrelief/internal/export"
	"github.com/Faultbox/slatrelief/internal/imageio"
	"github.com/Faultbox/slatrelief/internal/logger"
	"github.com/Faultbox/slatrelief/internal/mesh"
	"github.com/Faultbox/slatrelief/internal/preview"
	"github.com/Faultbox/slatrelief/pkg/relief"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	written, err := run(cfg)
	if err != nil {
		logger.Error("relief generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	for _, path := range written {
		fmt.Println(path)
	}
}

// run builds the relief described by cfg and writes every enabled output.
// It returns the paths written.
func run(cfg *config.Config) ([]string, error) {
	start := time.Now()

	img, format, err := imageio.Load(cfg.Input.Image)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	logger.Info("loaded image",
		zap.String("path", cfg.Input.Image),
		zap.String("format", format),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))

	model, err := relief.Build(cfg.Relief, img)
	if err != nil {
		return nil, fmt.Errorf("building relief: %w", err)
	}

	stats := model.HeightStats()
	logger.Info("built relief",
		zap.Int("slats", len(model.Extrusions)),
		zap.Int("samples", stats.Count),
		zap.Float64("min_z", stats.Min),
		zap.Float64("max_z", stats.Max),
		zap.Float64("mean_z", stats.Mean),
		zap.Float64("stddev_z", stats.StdDev),
		zap.Stringer("channel", cfg.Relief.Channel))

	meshes := mesh.FromModel(model)
	bounds := mesh.ModelBounds(meshes)
	logger.Debug("tessellated model",
		zap.Int("meshes", len(meshes)),
		zap.Float32s("min", bounds.Min[:]),
		zap.Float32s("max", bounds.Max[:]))

	exp := export.NewExporter(cfg.Output.Dir, baseName(cfg))
	var written []string

	if cfg.Output.OBJ {
		paths, err := exp.WriteOBJ(meshes, model.Panel.Material.Texture)
		if err != nil {
			return written, fmt.Errorf("writing OBJ: %w", err)
		}
		written = append(written, paths...)
	}

	if cfg.Output.STL {
		path, err := exp.WriteSTL(meshes)
		if err != nil {
			return written, fmt.Errorf("writing STL: %w", err)
		}
		written = append(written, path)
	}

	if cfg.Preview.Enabled {
		path := cfg.Preview.File
		if !filepath.IsAbs(path) {
			path = exp.Path("_" + path)
		}
		opt := preview.DefaultOptions()
		opt.MaxLines = cfg.Preview.MaxLines
		if err := preview.Save(model, path, opt); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	logger.Info("export complete",
		zap.Int("files", len(written)),
		zap.Duration("elapsed", time.Since(start)))
	return written, nil
}

// baseName returns the configured output prefix or the image file name
// without its extension.
func baseName(cfg *config.Config) string {
	if cfg.Output.BaseName != "" {
		return cfg.Output.BaseName
	}
	name := filepath.Base(cfg.Input.Image)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
