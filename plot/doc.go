// SPDX-License-Identifier: EPL-2.0

// Package plot draws a stereo buffer as an X/Y trace: the left channel
// on the horizontal axis and the right channel on the vertical one.
//
// Rendering is delegated to a Backend chosen by output format. Backends
// register themselves from an init function, the same way image/png
// registers with package image, so importing plot alone links no
// graphics library. The "txt" backend, an ASCII grid for terminals, is
// built in. Raster and vector formats come from plot/vgplot:
//
//	import (
//		"github.com/ik5/lissajous/plot"
//		_ "github.com/ik5/lissajous/plot/vgplot"
//	)
//
//	err := plot.RenderFigure(w, lissajous.DefaultParams(), plot.Options{Format: "png"})
//
// Asking for a format nobody registered fails with an error matching
// ErrMissingDependency that names the package to import.
//
// Render draws the buffer twice end to end so that the closing segment
// from the last sample back to the first is part of the trace.
package plot
