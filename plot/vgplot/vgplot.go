// SPDX-License-Identifier: EPL-2.0

// Package vgplot renders plot traces with gonum.org/v1/plot. Importing
// it for its side effect registers the eps, jpg, jpeg, pdf, png, svg,
// tif and tiff formats with package plot:
//
//	import _ "github.com/ik5/lissajous/plot/vgplot"
package vgplot

import (
	"fmt"
	"image/color"
	"io"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ik5/lissajous/plot"
)

// DefaultSize is the canvas side in pixels.
const DefaultSize = 600

// LineWidth of the trace.
var LineWidth = vg.Points(0.8)

var formats = []string{"eps", "jpg", "jpeg", "pdf", "png", "svg", "tif", "tiff"}

func init() {
	for _, f := range formats {
		plot.Register(f, Backend{format: f})
	}
}

// Backend draws a trace in one of the gonum/plot output formats.
type Backend struct {
	format string
}

// New returns the backend for format.
func New(format string) (Backend, error) {
	for _, f := range formats {
		if f == format {
			return Backend{format: f}, nil
		}
	}

	return Backend{}, fmt.Errorf("vgplot: unsupported format %q", format)
}

func (b Backend) Render(w io.Writer, trace plot.Trace, opts plot.Options) error {
	p, err := figure(trace)
	if err != nil {
		return err
	}

	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}
	side := vg.Length(size) * vg.Inch / vg.Length(dpi)

	wt, err := p.WriterTo(side, side, b.format)
	if err != nil {
		return fmt.Errorf("vgplot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("vgplot: write %s: %w", b.format, err)
	}

	return nil
}

// dpi is the resolution gonum/plot uses for raster output.
const dpi = 96

func figure(trace plot.Trace) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = trace.Title
	p.X.Label.Text = "Left channel"
	p.Y.Label.Text = "Right channel"

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(grid)

	n := trace.Len()
	if n > 0 {
		xys := make(plotter.XYs, n)
		for i := 0; i < n; i++ {
			xys[i].X = trace.X[i]
			xys[i].Y = trace.Y[i]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("vgplot: %w", err)
		}
		line.LineStyle.Width = LineWidth
		line.LineStyle.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
		p.Add(line)
	}

	// fixed after Add, which widens the axes to fit the data
	p.X.Min, p.X.Max = -plot.Range, plot.Range
	p.Y.Min, p.Y.Max = -plot.Range, plot.Range

	return p, nil
}
