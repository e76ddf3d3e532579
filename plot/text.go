// SPDX-License-Identifier: EPL-2.0

package plot

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// DefaultTextSize is the column count of the txt backend.
const DefaultTextSize = 61

const minTextSize = 11

func init() {
	Register("txt", textBackend{})
}

// textBackend draws the trace on a character grid. Terminal cells are
// about twice as tall as they are wide, so the grid has half as many
// rows as columns to keep the figure square on screen.
type textBackend struct{}

func (textBackend) Render(w io.Writer, trace Trace, opts Options) error {
	cols := opts.Size
	if cols == 0 {
		cols = DefaultTextSize
	}
	cols = max(cols, minTextSize)
	rows := cols/2 + 1

	grid := make([][]byte, rows)
	for r := range grid {
		grid[r] = make([]byte, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	midR, midC := rows/2, cols/2
	for c := 0; c < cols; c++ {
		grid[midR][c] = '-'
	}
	for r := 0; r < rows; r++ {
		grid[r][midC] = '|'
	}
	grid[midR][midC] = '+'

	cell := func(x, y float64) (int, int) {
		c := int(math.Round((x + Range) / (2 * Range) * float64(cols-1)))
		r := int(math.Round((Range - y) / (2 * Range) * float64(rows-1)))
		return min(max(r, 0), rows-1), min(max(c, 0), cols-1)
	}

	n := trace.Len()
	for i := 0; i < n; i++ {
		r0, c0 := cell(trace.X[i], trace.Y[i])
		grid[r0][c0] = '*'
		if i == n-1 {
			break
		}

		// fill gaps between sparse points
		r1, c1 := cell(trace.X[i+1], trace.Y[i+1])
		steps := max(abs(r1-r0), abs(c1-c0))
		for s := 1; s < steps; s++ {
			r := r0 + (r1-r0)*s/steps
			c := c0 + (c1-c0)*s/steps
			grid[r][c] = '*'
		}
	}

	bw := bufio.NewWriter(w)
	if trace.Title != "" {
		fmt.Fprintln(bw, trace.Title)
	}
	for _, row := range grid {
		bw.Write(row)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
