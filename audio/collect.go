// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Collect drains src and returns every interleaved sample it produced.
// bufferSize is the number of samples requested per read; values below
// 1 fall back to src.BufSize().
func Collect(src Source, bufferSize int) ([]float32, error) {
	if bufferSize < 1 {
		bufferSize = max(src.BufSize(), 1)
	}

	channels := max(src.Channels(), 1)
	bufferSize += (channels - bufferSize%channels) % channels
	buf := make([]float32, bufferSize)

	var out []float32
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("collect: %w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return out, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
}

// CollectFrames drains a stereo source into {left, right} frames.
func CollectFrames(src Source, bufferSize int) ([][2]float32, error) {
	if src.Channels() != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotStereo, src.Channels())
	}

	samples, err := Collect(src, bufferSize)
	if err != nil {
		return nil, err
	}

	frames := make([][2]float32, len(samples)/2)
	for i := range frames {
		frames[i] = [2]float32{samples[2*i], samples[2*i+1]}
	}

	return frames, nil
}
