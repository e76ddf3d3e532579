// SPDX-License-Identifier: EPL-2.0

package lissajous

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned before any computation when a
	// generation parameter fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMissingDependency is returned by a consumer whose optional
	// backend is not linked into the program.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrDeviceError is returned when no audio output device could be
	// opened or it failed while playing.
	ErrDeviceError = errors.New("audio device error")
)

// ParamError reports which generation parameter was rejected and why.
// It matches ErrInvalidParameter with errors.Is.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidParameter, e.Name, e.Reason, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }
