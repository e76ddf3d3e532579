// SPDX-License-Identifier: EPL-2.0

// Package lissajous generates stereo audio whose two channels, plotted
// against each other on an oscilloscope in X/Y mode, draw a closed
// Lissajous figure.
//
// # Generating
//
// Generate returns exactly one closure period: the shortest span after
// which both channels have completed a whole number of cycles.
//
//	buf, rate, err := lissajous.Generate(500, 3, 45, 48000)
//	// len(buf) == 288, rate == 48000
//
// The left channel runs at the base frequency and the right channel at
// ratio times that, offset by the phase. The defaults (1 kHz, ratio 1,
// 90 degrees, 48 kHz) draw a circle:
//
//	buf, rate, err := lissajous.DefaultParams().Generate()
//
// Every sample is a float32 clipped to [-1, 1]. Invalid parameters fail
// with an error matching ErrInvalidParameter before anything is
// allocated; the returned *ParamError names the offending field.
//
// # Consumers
//
// The generator does no I/O. Output goes to:
//   - WriteWAV / SaveWAV: 16-bit PCM or 32-bit float WAV (formats/wav)
//   - NewSource / NewLoopSource: an audio.Source for any stream consumer
//   - package playback: blocking playback on the default audio device
//   - package plot: an X/Y trace rendered to an image or the terminal
//
// Playback and plotting live in their own packages so that importing
// this one never links an audio or graphics library.
package lissajous
