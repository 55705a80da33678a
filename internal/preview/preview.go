// Package preview renders relief row profiles to an image for quick inspection.
package preview

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/slatrelief/pkg/relief"
)

// Options controls the profile plot.
type Options struct {
	MaxLines int       // Upper bound on plotted rows; 0 plots all
	Width    vg.Length // Image width
	Height   vg.Length // Image height
	Title    string
}

// DefaultOptions returns the default plot settings.
func DefaultOptions() Options {
	return Options{
		MaxLines: 12,
		Width:    10 * vg.Inch,
		Height:   5 * vg.Inch,
		Title:    "Slat profiles",
	}
}

// legendLimit is the number of lines above which the legend is omitted.
const legendLimit = 12

// Plot draws the sample height along X for a subset of rows.
func Plot(model *relief.Model, opt Options) (*plot.Plot, error) {
	if model == nil || len(model.Extrusions) == 0 {
		return nil, fmt.Errorf("model has no slats")
	}

	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Height (Z)"

	rows := SelectRows(len(model.Extrusions), opt.MaxLines)
	colors := lineColors(len(rows))

	for i, row := range rows {
		e := model.Extrusions[row]
		pts := make(plotter.XYs, 0, len(e.Profile.Samples))
		for _, s := range e.Profile.Samples {
			pts = append(pts, plotter.XY{X: s.Position.X, Y: s.Position.Z})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plotting %s: %w", e.Name, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		if len(rows) <= legendLimit {
			p.Legend.Add(e.Name, line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// Save renders the plot to path; the format follows the file extension.
func Save(model *relief.Model, path string, opt Options) error {
	p, err := Plot(model, opt)
	if err != nil {
		return err
	}
	if err := p.Save(opt.Width, opt.Height, path); err != nil {
		return fmt.Errorf("saving preview: %w", err)
	}
	return nil
}

// SelectRows picks at most max evenly spaced row indices out of n, always
// including the first and last rows.
func SelectRows(n, max int) []int {
	if n <= 0 {
		return nil
	}
	if max <= 0 || max >= n {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	if max == 1 {
		return []int{0}
	}

	rows := make([]int, 0, max)
	for i := 0; i < max; i++ {
		row := i * (n - 1) / (max - 1)
		if len(rows) > 0 && rows[len(rows)-1] == row {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func lineColors(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = colorful.Hsl(360*float64(i)/float64(max(n, 1)), 0.7, 0.45).Clamped()
	}
	return colors
}
