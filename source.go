// SPDX-License-Identifier: EPL-2.0

package lissajous

import (
	"io"

	"github.com/ik5/lissajous/audio"
)

var _ audio.Source = (*Source)(nil)

// Source streams a Buffer as interleaved stereo samples so it can be
// fed to anything that consumes an audio.Source.
type Source struct {
	buf        Buffer
	sampleRate int
	loops      int

	frame int // next frame within buf
	loop  int // completed passes over buf
}

// NewSource streams buf once.
func NewSource(buf Buffer, sampleRate int) *Source {
	return NewLoopSource(buf, sampleRate, 1)
}

// NewLoopSource streams buf loops times back to back. Because buf is one
// closure period the figure stays closed across every seam. loops
// below 1 is treated as 1.
func NewLoopSource(buf Buffer, sampleRate int, loops int) *Source {
	return &Source{
		buf:        buf,
		sampleRate: sampleRate,
		loops:      max(loops, 1),
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return 2 }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Frames is the total number of frames the source yields.
func (s *Source) Frames() int { return len(s.buf) * s.loops }

// Reset rewinds to the first frame of the first loop.
func (s *Source) Reset() {
	s.frame = 0
	s.loop = 0
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) && s.loop < s.loops && len(s.buf) > 0 {
		f := s.buf[s.frame]
		dst[n] = f[0]
		dst[n+1] = f[1]
		n += 2

		s.frame++
		if s.frame == len(s.buf) {
			s.frame = 0
			s.loop++
		}
	}

	if s.loop >= s.loops || len(s.buf) == 0 {
		return n, io.EOF
	}

	return n, nil
}
