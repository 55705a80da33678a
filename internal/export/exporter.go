// Package export writes relief meshes to files: Wavefront OBJ/MTL with the
// textured panel, binary STL of the slats, and the panel texture as PNG.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/slatrelief/internal/mesh"
)

// Exporter writes files named <baseName>.<ext> into an output directory.
type Exporter struct {
	outputDir string
	baseName  string
}

// NewExporter creates a new exporter.
func NewExporter(outputDir, baseName string) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		baseName:  baseName,
	}
}

// SetOutputDir sets the output directory.
func (e *Exporter) SetOutputDir(dir string) {
	e.outputDir = dir
}

// Path returns the output path for a file with the given suffix.
func (e *Exporter) Path(suffix string) string {
	name := e.baseName + suffix
	if e.outputDir != "" {
		return filepath.Join(e.outputDir, name)
	}
	return name
}

// WriteTexture saves the panel texture as PNG and returns its path.
func (e *Exporter) WriteTexture(img image.Image) (string, error) {
	return e.create("_texture.png", func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		return nil
	})
}

// WriteOBJ saves meshes as <base>.obj with a <base>.mtl material library. If
// texture is non-nil it is saved alongside and mapped onto the panel.
// It returns the paths written.
func (e *Exporter) WriteOBJ(meshes []*mesh.Mesh, texture image.Image) ([]string, error) {
	var written []string

	textureFile := ""
	if texture != nil {
		path, err := e.WriteTexture(texture)
		if err != nil {
			return written, err
		}
		written = append(written, path)
		textureFile = filepath.Base(path)
	}

	mtlPath, err := e.create(".mtl", func(w io.Writer) error {
		return EncodeMTL(w, textureFile)
	})
	if err != nil {
		return written, err
	}
	written = append(written, mtlPath)

	objPath, err := e.create(".obj", func(w io.Writer) error {
		return EncodeOBJ(w, meshes, filepath.Base(mtlPath))
	})
	if err != nil {
		return written, err
	}
	return append(written, objPath), nil
}

// WriteSTL saves the slat meshes as <base>.stl. The panel has no thickness
// and is left out.
func (e *Exporter) WriteSTL(meshes []*mesh.Mesh) (string, error) {
	solids := make([]*mesh.Mesh, 0, len(meshes))
	for _, m := range meshes {
		if m.Material != mesh.MaterialPanel {
			solids = append(solids, m)
		}
	}
	return e.create(".stl", func(w io.Writer) error {
		return EncodeSTL(w, solids)
	})
}

// create opens the output file for suffix and runs encode on it.
func (e *Exporter) create(suffix string, encode func(io.Writer) error) (string, error) {
	if e.outputDir != "" {
		if err := os.MkdirAll(e.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := e.Path(suffix)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
