// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrNotStereo         = errors.New("source is not stereo")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidRate       = errors.New("sample rate must be positive")
)

// FormatError names the format no decoder was registered for.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFormat, e.Format)
}

func (e *FormatError) Unwrap() error { return ErrUnsupportedFormat }
