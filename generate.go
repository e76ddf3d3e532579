// SPDX-License-Identifier: EPL-2.0

package lissajous

import (
	"math"
	"time"

	"github.com/ik5/lissajous/utils"
)

// leftMultiplier is the number of left-channel cycles per closure unit.
// Only 1 is produced today; keeping it explicit keeps the LCM correct
// if the left channel ever gets its own multiplier.
const leftMultiplier = 1

// Generate returns one closure period of a stereo Lissajous figure
// together with the sample rate it was computed at.
//
// The left channel is sin(2π·baseFreq·t) and the right channel is
// sin(2π·baseFreq·ratio·t + phase). The buffer covers exactly the time
// both channels need to complete a whole number of cycles, so plotting
// right against left draws a closed curve.
//
// Parameters are validated before anything is allocated; on failure the
// returned error wraps ErrInvalidParameter and the buffer is nil.
func Generate(baseFreq float64, ratio int, phaseDeg float64, sampleRate int) (Buffer, int, error) {
	return Params{
		BaseFreq:   baseFreq,
		Ratio:      ratio,
		PhaseDeg:   phaseDeg,
		SampleRate: sampleRate,
	}.Generate()
}

// Generate is the method form of the package level Generate.
func (p Params) Generate() (Buffer, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	fLeft := p.BaseFreq
	fRight := p.BaseFreq * float64(p.Ratio)
	phase := p.PhaseDeg * math.Pi / 180
	duration := closureSeconds(p)
	n, err := frameCount(p, duration)
	if err != nil {
		return nil, 0, err
	}

	buf := make(Buffer, n)
	if n == 0 {
		return buf, p.SampleRate, nil
	}

	step := duration / float64(n)
	wLeft := 2 * math.Pi * fLeft
	wRight := 2 * math.Pi * fRight

	for i := range buf {
		t := float64(i) * step
		buf[i] = Frame{
			utils.Clamp(float32(math.Sin(wLeft * t))),
			utils.Clamp(float32(math.Sin(wRight*t + phase))),
		}
	}

	return buf, p.SampleRate, nil
}

// ClosureSeconds is the shortest time, in seconds, after which both
// channels have completed a whole number of cycles.
func ClosureSeconds(p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	return closureSeconds(p), nil
}

// ClosureDuration is ClosureSeconds as a time.Duration, rounded to the
// nearest nanosecond.
func ClosureDuration(p Params) (time.Duration, error) {
	s, err := ClosureSeconds(p)
	if err != nil {
		return 0, err
	}

	ns := math.Round(s * float64(time.Second))
	if math.IsInf(ns, 0) || ns >= math.MaxInt64 {
		return 0, &ParamError{Name: "base_freq", Value: p.BaseFreq, Reason: "gives a figure too long to represent"}
	}

	return time.Duration(ns), nil
}

// FrameCount is the number of frames Generate will return for p.
func FrameCount(p Params) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	return frameCount(p, closureSeconds(p))
}

func closureSeconds(p Params) float64 {
	cycles := utils.LCM(leftMultiplier, p.Ratio)
	return float64(cycles) / p.BaseFreq
}

// frameCount fails when the figure has more frames than an int can
// count, which happens for vanishingly small base frequencies.
func frameCount(p Params, duration float64) (int, error) {
	n := math.Floor(float64(p.SampleRate) * duration)
	if math.IsInf(n, 0) || math.IsNaN(n) || n >= math.MaxInt {
		return 0, &ParamError{Name: "base_freq", Value: p.BaseFreq, Reason: "gives a figure too long to represent"}
	}

	return int(n), nil
}
