// SPDX-License-Identifier: EPL-2.0

package lissajous

import (
	"fmt"
	"math"
)

// Defaults produce a circle: equal frequencies 90 degrees apart.
const (
	DefaultBaseFreq   = 1000.0
	DefaultRatio      = 1
	DefaultPhaseDeg   = 90.0
	DefaultSampleRate = 48000
)

// Params holds the inputs of the waveform generator.
type Params struct {
	// BaseFreq is the left (X) channel frequency in Hz.
	BaseFreq float64
	// Ratio multiplies BaseFreq to give the right (Y) channel frequency.
	Ratio int
	// PhaseDeg offsets the right channel, in degrees. Any finite value.
	PhaseDeg float64
	// SampleRate in samples per second.
	SampleRate int
}

// DefaultParams returns the parameters that trace a circle at 1 kHz, 48 kHz.
func DefaultParams() Params {
	return Params{
		BaseFreq:   DefaultBaseFreq,
		Ratio:      DefaultRatio,
		PhaseDeg:   DefaultPhaseDeg,
		SampleRate: DefaultSampleRate,
	}
}

// Validate reports the first constraint p violates as a *ParamError.
func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.BaseFreq) || math.IsInf(p.BaseFreq, 0):
		return &ParamError{Name: "base_freq", Value: p.BaseFreq, Reason: "must be finite"}
	case p.BaseFreq <= 0:
		return &ParamError{Name: "base_freq", Value: p.BaseFreq, Reason: "must be positive"}
	case p.Ratio <= 0:
		return &ParamError{Name: "ratio", Value: p.Ratio, Reason: "must be a positive integer"}
	case p.SampleRate <= 0:
		return &ParamError{Name: "sample_rate", Value: p.SampleRate, Reason: "must be positive"}
	case math.IsNaN(p.PhaseDeg) || math.IsInf(p.PhaseDeg, 0):
		return &ParamError{Name: "phase_deg", Value: p.PhaseDeg, Reason: "must be finite"}
	}

	return nil
}

// String formats p for logs and plot titles.
func (p Params) String() string {
	return fmt.Sprintf("fx=%g Hz, fy=%d*fx (%.0f Hz), phase=%.1f deg, rate=%d",
		p.BaseFreq, p.Ratio, p.BaseFreq*float64(p.Ratio), p.PhaseDeg, p.SampleRate)
}

// RatioFromFloat converts a numerically parsed ratio to an int. Values
// that are not finite, not integral, or not positive are rejected.
func RatioFromFloat(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &ParamError{Name: "ratio", Value: v, Reason: "must be a positive integer"}
	}
	if v <= 0 || v > math.MaxInt32 {
		return 0, &ParamError{Name: "ratio", Value: v, Reason: "must be a positive integer"}
	}

	return int(v), nil
}
