// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// # Sample Formats
//
// Two encodings are supported in both directions:
//   - PCM16: signed 16-bit integer PCM, format tag 1 (the default)
//   - Float32: 32-bit IEEE float, format tag 3
//
// Any channel count and sample rate are accepted. Lissajous figures are
// written as two channel files, left first.
//
// # Writing
//
// WriteWAV16 and WriteFloat32 write a canonical 44 byte header followed
// by the data chunk and only need an io.Writer:
//
//	err := wav.Write(w, 48000, 2, interleaved, wav.PCM16)
//
// Encode goes through github.com/go-audio/wav and adds a LIST/INFO
// chunk; it needs an io.WriteSeeker such as *os.File:
//
//	f, _ := os.Create("figure.wav")
//	err := wav.Encode(f, 48000, 2, interleaved, &wav.Metadata{Software: "lissajous"})
//
// # Decoding
//
//	source, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder walks the chunk list, skipping anything that is not
// "fmt " or "data", and understands WAVE_FORMAT_EXTENSIBLE headers.
//
// # Errors
//
//   - ErrNotWavFile: missing RIFF/WAVE signature
//   - ErrUnsupportedWavLayout: data before fmt, or a truncated fmt chunk
//   - ErrUnsupportedEncoding: neither PCM16 nor Float32
//   - ErrMissingDataChunk: the file ended before a data chunk
package wav
