// SPDX-License-Identifier: EPL-2.0

package lissajous

import "math"

// Frame is one stereo sample pair: {left, right}.
type Frame = [2]float32

// Buffer is an ordered sequence of stereo frames.
type Buffer []Frame

// Left returns a copy of the left channel.
func (b Buffer) Left() []float32 {
	out := make([]float32, len(b))
	for i, f := range b {
		out[i] = f[0]
	}

	return out
}

// Right returns a copy of the right channel.
func (b Buffer) Right() []float32 {
	out := make([]float32, len(b))
	for i, f := range b {
		out[i] = f[1]
	}

	return out
}

// Interleaved returns the samples as L0 R0 L1 R1 ...
func (b Buffer) Interleaved() []float32 {
	out := make([]float32, 2*len(b))
	for i, f := range b {
		out[2*i] = f[0]
		out[2*i+1] = f[1]
	}

	return out
}

// Repeat returns a new buffer holding b end-to-end times times.
// times below 1 yields an empty buffer.
func (b Buffer) Repeat(times int) Buffer {
	if times < 1 {
		return Buffer{}
	}

	out := make(Buffer, 0, len(b)*times)
	for i := 0; i < times; i++ {
		out = append(out, b...)
	}

	return out
}

// Peak returns the largest absolute sample value in b.
func (b Buffer) Peak() float32 {
	var peak float64
	for _, f := range b {
		peak = max(peak, math.Abs(float64(f[0])), math.Abs(float64(f[1])))
	}

	return float32(peak)
}

// FromInterleaved builds a buffer from L R L R ... samples. A trailing
// unpaired sample is dropped.
func FromInterleaved(samples []float32) Buffer {
	out := make(Buffer, len(samples)/2)
	for i := range out {
		out[i] = Frame{samples[2*i], samples[2*i+1]}
	}

	return out
}
