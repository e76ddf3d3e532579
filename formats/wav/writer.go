// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/lissajous/utils"
)

// HeaderSize is the size of the canonical header written by this package.
const HeaderSize = 44

// maxDataSize is the largest data chunk whose RIFF size (36 + data)
// still fits in 32 bits.
const maxDataSize = math.MaxUint32 - (HeaderSize - 8)

// chunkSamples is how many samples are encoded per Write call.
const chunkSamples = 8192

// header builds the canonical 44 byte RIFF/WAVE header.
func header(sampleRate, channels int, format SampleFormat, samples int) []byte {
	bitsPerSample := uint16(format.BitsPerSample())
	numChannels := uint16(channels)
	blockAlign := numChannels * (bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(samples) * uint32(bitsPerSample/8)

	h := make([]byte, HeaderSize)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], format.tag())
	binary.LittleEndian.PutUint16(h[22:24], numChannels)
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// checkLayout also rejects layouts whose sizes do not fit the 32-bit
// header fields.
func checkLayout(sampleRate, channels, samples int, format SampleFormat) error {
	width := int64(format.BitsPerSample() / 8)

	switch {
	case sampleRate <= 0:
		return ErrInvalidSampleRate
	case channels <= 0 || channels > math.MaxUint16:
		return ErrInvalidChannels
	case samples%channels != 0:
		return ErrMisalignedSamples
	case int64(sampleRate)*int64(channels)*width > math.MaxUint32:
		return fmt.Errorf("%w: byte rate of %d Hz %d ch overflows the header", ErrInvalidSampleRate, sampleRate, channels)
	case int64(samples)*width > maxDataSize:
		return fmt.Errorf("%w: %d samples", ErrDataTooLarge, samples)
	}

	return nil
}

// WriteWAV16 writes interleaved int16 PCM with a canonical header.
// It needs only an io.Writer, so it works for pipes and HTTP bodies.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if err := checkLayout(sampleRate, channels, len(samples), PCM16); err != nil {
		return err
	}

	if _, err := w.Write(header(sampleRate, channels, PCM16, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	buf := make([]byte, 2*min(len(samples), chunkSamples))
	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:2*len(chunk)]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[2*j:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteFloat32 writes interleaved IEEE float samples with a canonical
// header (format tag 3, no fact chunk).
func WriteFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	if err := checkLayout(sampleRate, channels, len(samples), Float32); err != nil {
		return err
	}

	if _, err := w.Write(header(sampleRate, channels, Float32, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	buf := make([]byte, 4*min(len(samples), chunkSamples))
	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:4*len(chunk)]

		for j, s := range chunk {
			binary.LittleEndian.PutUint32(out[4*j:], math.Float32bits(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Write encodes float samples in the requested format. PCM16 output
// is clamped and scaled with utils.Float32ToInt16.
func Write(w io.Writer, sampleRate, channels int, samples []float32, format SampleFormat) error {
	switch format {
	case PCM16:
		pcm := make([]int16, len(samples))
		utils.Float32SliceToInt16(pcm, samples)
		return WriteWAV16(w, sampleRate, channels, pcm)
	case Float32:
		return WriteFloat32(w, sampleRate, channels, samples)
	}

	return fmt.Errorf("%w: %d", ErrUnknownSampleFormat, int(format))
}
