// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("only PCM 16-bit and IEEE float 32-bit supported")
	ErrMissingDataChunk     = errors.New("WAV data chunk not found")
	ErrInvalidChannels      = errors.New("channel count must be positive")
	ErrInvalidSampleRate    = errors.New("sample rate must be positive")
	ErrMisalignedSamples    = errors.New("sample count must be multiple of channels")
	ErrUnknownSampleFormat  = errors.New("unknown sample format")
	ErrDataTooLarge         = errors.New("WAV data does not fit in 4 GiB")
)
