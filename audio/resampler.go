// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/lissajous/utils"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads the resampler
// tolerates from its source before giving up with io.ErrNoProgress.
const maxEmptyReads = 64

// historyFrames is how many consumed source frames may pile up before
// the history buffer is compacted.
const historyFrames = 4096

// Resampler streams src at a new sample rate using Catmull-Rom cubic
// interpolation. It works on interleaved samples and preserves the
// channel count. Output frame k is taken at source position
// k·srcRate/dstRate, so a source of M frames yields ceil(M·dstRate/srcRate)
// frames.
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	channels int

	hist []float32 // buffered source frames, interleaved
	base int       // source index of the first frame in hist
	out  int       // index of the next output frame

	srcBuf []float32
	eof    bool
}

func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	channels := max(src.Channels(), 1)
	bufFrames := max(src.BufSize()/channels, 256)

	return &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
		srcRate:  src.SampleRate(),
		srcBuf:   make([]float32, bufFrames*channels),
	}, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return len(r.srcBuf) }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (r *Resampler) buffered() int { return len(r.hist) / r.channels }

// fill reads from the source until frame need is buffered or the
// source is exhausted.
func (r *Resampler) fill(need int) error {
	empty := 0

	for !r.eof && r.base+r.buffered() <= need {
		n, err := r.src.ReadSamples(r.srcBuf)
		n -= n % r.channels
		r.hist = append(r.hist, r.srcBuf[:n]...)

		if errors.Is(err, io.EOF) {
			r.eof = true
			break
		}
		if err != nil {
			return fmt.Errorf("resampler read: %w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return nil
}

func (r *Resampler) at(frame, ch, total int) float32 {
	frame = min(max(frame, r.base), total-1)
	return r.hist[(frame-r.base)*r.channels+ch]
}

// position returns the source frame at or before output frame k and the
// fractional offset past it. Integer arithmetic keeps the frame count
// exact for long streams.
func (r *Resampler) position(k int) (int, float32) {
	num := int64(k) * int64(r.srcRate)
	i := num / int64(r.dstRate)
	frac := float32(num%int64(r.dstRate)) / float32(r.dstRate)

	return int(i), frac
}

// compact drops history older than keep once enough has accumulated.
func (r *Resampler) compact(keep int) {
	drop := keep - r.base
	if drop < historyFrames {
		return
	}

	r.hist = append(r.hist[:0], r.hist[drop*r.channels:]...)
	r.base += drop
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		i, x := r.position(r.out)
		if err := r.fill(i + 2); err != nil {
			return written, err
		}

		total := r.base + r.buffered()
		if i >= total {
			return written, io.EOF
		}

		for c := 0; c < r.channels; c++ {
			dst[written+c] = utils.CubicInterpolate(
				r.at(i-1, c, total),
				r.at(i, c, total),
				r.at(i+1, c, total),
				r.at(i+2, c, total),
				x,
			)
		}

		written += r.channels
		r.out++
		next, _ := r.position(r.out)
		r.compact(next - 1)
	}

	return written, nil
}
