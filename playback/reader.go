// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/ik5/lissajous/audio"
)

// maxEmptyReads bounds consecutive reads that return no samples and no
// error before the stream is treated as stalled.
const maxEmptyReads = 100

// sourceReader encodes an audio.Source as float32 little endian bytes,
// the format Device players consume.
type sourceReader struct {
	src   audio.Source
	buf   []float32
	pend  []byte // encoded bytes not yet handed out
	err   error  // sticky once the source is done
	empty int
}

func newSourceReader(src audio.Source) *sourceReader {
	size := max(src.BufSize(), 1)
	ch := max(src.Channels(), 1)
	size += (ch - size%ch) % ch

	return &sourceReader{
		src: src,
		buf: make([]float32, size),
	}
}

func (r *sourceReader) Read(p []byte) (int, error) {
	for len(r.pend) == 0 {
		if r.err != nil {
			return 0, r.err
		}

		n, err := r.src.ReadSamples(r.buf)
		if n > 0 {
			r.pend = encode(r.buf[:n])
			r.empty = 0
		}

		switch {
		case errors.Is(err, io.EOF):
			r.err = io.EOF
		case err != nil:
			r.err = err
		case n == 0:
			r.empty++
			if r.empty > maxEmptyReads {
				r.err = io.ErrNoProgress
			}
		}
	}

	n := copy(p, r.pend)
	r.pend = r.pend[n:]

	return n, nil
}

func encode(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}

	return out
}
