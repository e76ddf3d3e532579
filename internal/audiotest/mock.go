// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds audio.Source fakes shared by tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by FailingSource.
var ErrInjected = errors.New("injected failure")

// MockSource generates totalFrames frames from a waveform function.
// It implements audio.Source without importing it to avoid cycles.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float32

	closed bool
}

// NewMockSource creates a source whose sample for (frame, channel) is
// waveform(frame, channel).
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a source of zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return 0
	})
}

// NewSineSource creates a source with the same sine on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewQuadratureSource creates a stereo source where the right channel
// leads the left by 90 degrees, which traces a circle on a vectorscope.
func NewQuadratureSource(sampleRate, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, 2, totalFrames, func(frame int, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2*math.Pi*frequency*t + float64(channel)*math.Pi/2))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	for f := 0; f < frames; f++ {
		for ch := 0; ch < m.channels; ch++ {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames
	n := frames * m.channels

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}

	return n, nil
}

// FailingSource returns ErrInjected after failAfter successful frames.
type FailingSource struct {
	*MockSource

	failAfter int
}

func NewFailingSource(sampleRate, channels, failAfter int) *FailingSource {
	return &FailingSource{
		MockSource: NewSilentSource(sampleRate, channels, math.MaxInt32),
		failAfter:  failAfter,
	}
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	remaining := f.failAfter - f.generated
	if remaining <= 0 {
		return 0, ErrInjected
	}

	limit := min(len(dst), remaining*f.channels)
	return f.MockSource.ReadSamples(dst[:limit])
}
