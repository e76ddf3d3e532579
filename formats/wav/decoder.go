// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/lissajous/audio"
)

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	format     SampleFormat

	buf []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return 4096 }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) bytesPerSample() int { return s.format.BitsPerSample() / 8 }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	width := s.bytesPerSample()
	need := len(dst) * width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	samples := n / width

	switch s.format {
	case PCM16:
		for i := 0; i < samples; i++ {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
		}
	case Float32:
		for i := 0; i < samples; i++ {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(s.buf[4*i:]))
		}
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return samples, io.EOF
	}

	return samples, fmt.Errorf("%w", err)
}

// Decoder reads RIFF/WAVE files holding 16-bit PCM or 32-bit IEEE float
// samples. Chunks other than "fmt " and "data" are skipped.
type Decoder struct{}

// maxFmtSize bounds the fmt chunk. WAVE_FORMAT_EXTENSIBLE needs 40
// bytes.
const maxFmtSize = 1024

type fmtChunk struct {
	tag        uint16
	channels   int
	sampleRate int
	bits       int
}

func parseFmt(b []byte) (fmtChunk, error) {
	if len(b) < 16 {
		return fmtChunk{}, ErrUnsupportedWavLayout
	}

	fc := fmtChunk{
		tag:        binary.LittleEndian.Uint16(b[0:2]),
		channels:   int(binary.LittleEndian.Uint16(b[2:4])),
		sampleRate: int(binary.LittleEndian.Uint32(b[4:8])),
		bits:       int(binary.LittleEndian.Uint16(b[14:16])),
	}

	// WAVE_FORMAT_EXTENSIBLE keeps the real tag in the sub-format GUID.
	if fc.tag == formatTagExtensible {
		if len(b) < 26 {
			return fmtChunk{}, ErrUnsupportedWavLayout
		}
		fc.tag = binary.LittleEndian.Uint16(b[24:26])
	}

	return fc, nil
}

func (fc fmtChunk) sampleFormat() (SampleFormat, error) {
	switch {
	case fc.tag == formatTagPCM && fc.bits == 16:
		return PCM16, nil
	case fc.tag == formatTagFloat && fc.bits == 32:
		return Float32, nil
	}

	return 0, ErrUnsupportedEncoding
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	riff := make([]byte, 12)
	if _, err := io.ReadFull(r, riff); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !bytes.Equal(riff[0:4], []byte("RIFF")) || !bytes.Equal(riff[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var (
		fc      fmtChunk
		haveFmt bool
		chunk   = make([]byte, 8)
	)

	for {
		if _, err := io.ReadFull(r, chunk); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrMissingDataChunk
			}
			return nil, fmt.Errorf("%w", err)
		}

		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if size > maxFmtSize {
				return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("%w", err)
			}
			parsed, err := parseFmt(body)
			if err != nil {
				return nil, err
			}
			fc, haveFmt = parsed, true

			if size%2 == 1 {
				if _, err := io.CopyN(io.Discard, r, 1); err != nil {
					return nil, fmt.Errorf("%w", err)
				}
			}

		case "data":
			if !haveFmt {
				return nil, ErrUnsupportedWavLayout
			}
			format, err := fc.sampleFormat()
			if err != nil {
				return nil, err
			}
			if fc.channels <= 0 {
				return nil, ErrInvalidChannels
			}

			return &wavSource{
				r:          io.LimitReader(r, size),
				sampleRate: fc.sampleRate,
				channels:   fc.channels,
				format:     format,
			}, nil

		default:
			// RIFF chunks are padded to an even size.
			if _, err := io.CopyN(io.Discard, r, size+size%2); err != nil {
				if errors.Is(err, io.EOF) {
					return nil, ErrMissingDataChunk
				}
				return nil, fmt.Errorf("%w", err)
			}
		}
	}
}
