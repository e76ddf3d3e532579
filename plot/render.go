// SPDX-License-Identifier: EPL-2.0

package plot

import (
	"fmt"
	"io"

	"github.com/ik5/lissajous"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = "png"

// Range is the extent of both axes; samples live in [-1, 1].
const Range = 1.1

// Render draws buf, one closure period at sampleRate, as an X/Y trace.
// The buffer is repeated once so the figure is drawn closed.
func Render(w io.Writer, buf lissajous.Buffer, sampleRate int, opts Options) error {
	if sampleRate <= 0 {
		return &lissajous.ParamError{Name: "sample_rate", Value: sampleRate, Reason: "must be positive"}
	}

	return draw(w, TraceOf(buf.Repeat(2), "Lissajous"), opts)
}

// RenderFigure generates the figure for p and renders it with a title
// describing p.
func RenderFigure(w io.Writer, p lissajous.Params, opts Options) error {
	buf, rate, err := p.Generate()
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = FigureTitle(p)
	}

	return Render(w, buf, rate, opts)
}

// RenderFrames draws recorded frames as they are, without repetition.
func RenderFrames(w io.Writer, frames [][2]float32, opts Options) error {
	return draw(w, TraceOf(frames, "Vectorscope"), opts)
}

// TraceOf converts frames to a trace with left as X and right as Y.
func TraceOf(frames []lissajous.Frame, title string) Trace {
	t := Trace{
		X:     make([]float64, len(frames)),
		Y:     make([]float64, len(frames)),
		Title: title,
	}
	for i, f := range frames {
		t.X[i] = float64(f[0])
		t.Y[i] = float64(f[1])
	}

	return t
}

// FigureTitle describes p the way plot titles show it.
func FigureTitle(p lissajous.Params) string {
	return fmt.Sprintf("Lissajous: fx=%g Hz, fy=%d·fx (%.0f Hz), φ=%.1f°",
		p.BaseFreq, p.Ratio, p.BaseFreq*float64(p.Ratio), p.PhaseDeg)
}

func draw(w io.Writer, trace Trace, opts Options) error {
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if opts.Size < 0 {
		return &lissajous.ParamError{Name: "size", Value: opts.Size, Reason: "must not be negative"}
	}
	if opts.Title != "" {
		trace.Title = opts.Title
	}

	b, err := Lookup(opts.Format)
	if err != nil {
		return err
	}
	if err := b.Render(w, trace, opts); err != nil {
		return fmt.Errorf("render %s: %w", opts.Format, err)
	}

	return nil
}
