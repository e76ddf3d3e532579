// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"strings"
)

// SampleFormat selects how samples are stored in the data chunk.
type SampleFormat int

const (
	// PCM16 is signed 16-bit little-endian integer PCM (format tag 1).
	PCM16 SampleFormat = iota
	// Float32 is 32-bit little-endian IEEE float (format tag 3).
	Float32
)

const (
	formatTagPCM        uint16 = 1
	formatTagFloat      uint16 = 3
	formatTagExtensible uint16 = 0xFFFE
)

func (f SampleFormat) String() string {
	switch f {
	case PCM16:
		return "pcm16"
	case Float32:
		return "float32"
	}

	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// ParseSampleFormat accepts "pcm16"/"int16"/"16" and "float32"/"f32"/"32".
func ParseSampleFormat(s string) (SampleFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pcm16", "int16", "s16", "16", "":
		return PCM16, nil
	case "float32", "float", "f32", "32":
		return Float32, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSampleFormat, s)
}

func (f SampleFormat) tag() uint16 {
	if f == Float32 {
		return formatTagFloat
	}

	return formatTagPCM
}

// BitsPerSample is 16 for PCM16 and 32 for Float32.
func (f SampleFormat) BitsPerSample() int {
	if f == Float32 {
		return 32
	}

	return 16
}
