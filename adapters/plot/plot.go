// Package plot renders sequence and correlogram graphics as PNG files.
package plot

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"randmodel/internal/errors"
	"randmodel/ports"
)

var (
	lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fillColor = color.RGBA{R: 31, G: 119, B: 180, A: 160}
)

// Renderer draws plots into a directory, one PNG per call.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer rooted at dir, creating it on first use
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Line draws values against consecutive integer positions starting at startX
func (r *Renderer) Line(ctx context.Context, name string, values []float64, startX int) error {
	p := plot.New()
	p.Title.Text = titleFor(name)
	p.X.Label.Text = "n"
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(values))
	for i, v := range values {
		points[i].X = float64(startX + i)
		points[i].Y = v
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return errors.InternalError(fmt.Sprintf("failed to build line plot %s: %v", name, err))
	}
	line.Color = lineColor
	line.Width = vg.Points(1)
	p.Add(line)

	return r.save(p, name, 8*vg.Inch, 4*vg.Inch)
}

// Histogram draws the frequency distribution of values with Sturges binning
func (r *Renderer) Histogram(ctx context.Context, name string, values []float64) error {
	p := plot.New()
	p.Title.Text = titleFor(name)
	p.Add(plotter.NewGrid())

	hist, err := plotter.NewHist(plotter.Values(values), binCount(len(values)))
	if err != nil {
		return errors.InternalError(fmt.Sprintf("failed to build histogram %s: %v", name, err))
	}
	hist.FillColor = fillColor
	p.Add(hist)

	return r.save(p, name, 6*vg.Inch, 4*vg.Inch)
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.IOError(fmt.Sprintf("failed to create plot directory %s", r.dir), err)
	}
	path := filepath.Join(r.dir, name)
	if err := p.Save(w, h, path); err != nil {
		return errors.IOError(fmt.Sprintf("failed to save plot %s", path), err)
	}
	return nil
}

// binCount applies the Sturges rule, which lands on 10 bins for the
// standard 300-value sequence
func binCount(n int) int {
	if n < 2 {
		return 1
	}
	return 1 + int(math.Ceil(math.Log2(float64(n))))
}

// titleFor turns a file name like source-line-graph.png into a title
func titleFor(name string) string {
	base := name
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	out := make([]rune, 0, len(base))
	for _, r := range base {
		if r == '-' || r == '_' {
			out = append(out, ' ')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Ensure Renderer implements the port
var _ ports.PlotRenderer = (*Renderer)(nil)
