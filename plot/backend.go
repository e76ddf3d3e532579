// SPDX-License-Identifier: EPL-2.0

package plot

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// VGPlotPackage provides the image and document formats.
const VGPlotPackage = "github.com/ik5/lissajous/plot/vgplot"

// vgplotFormats are the formats VGPlotPackage registers, used to point
// at the right import when one of them is missing.
var vgplotFormats = []string{"eps", "jpeg", "jpg", "pdf", "png", "svg", "tif", "tiff"}

// Trace is the X/Y data handed to a backend. X and Y have equal length.
type Trace struct {
	X, Y  []float64
	Title string
}

// Len is the number of points in the trace.
func (t Trace) Len() int { return min(len(t.X), len(t.Y)) }

// Options control a single render.
type Options struct {
	// Format selects the backend, e.g. "png" or "txt".
	Format string
	// Size is the side of the square canvas: pixels for images,
	// columns for text. Zero uses the backend default.
	Size int
	// Title replaces the trace title when set.
	Title string
}

// Backend writes a trace in one output format.
type Backend interface {
	Render(w io.Writer, trace Trace, opts Options) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(w io.Writer, trace Trace, opts Options) error

func (f BackendFunc) Render(w io.Writer, trace Trace, opts Options) error {
	return f(w, trace, opts)
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available for format. It panics if b is nil
// or format is already taken.
func Register(format string, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	format = strings.ToLower(format)
	if b == nil {
		panic("plot: Register backend is nil for " + format)
	}
	if _, dup := backends[format]; dup {
		panic("plot: Register called twice for " + format)
	}
	backends[format] = b
}

// Lookup returns the backend for format.
func Lookup(format string) (Backend, error) {
	format = strings.ToLower(format)

	backendsMu.RLock()
	b, ok := backends[format]
	backendsMu.RUnlock()

	if ok {
		return b, nil
	}
	if slices.Contains(vgplotFormats, format) {
		return nil, fmt.Errorf("%w: no plot backend for %q, add import _ %q",
			ErrMissingDependency, format, VGPlotPackage)
	}

	return nil, fmt.Errorf("%w: no plot backend for %q", ErrMissingDependency, format)
}

// Formats lists the registered formats in sorted order.
func Formats() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	out := make([]string, 0, len(backends))
	for f := range backends {
		out = append(out, f)
	}
	slices.Sort(out)

	return out
}
