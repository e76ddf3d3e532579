// SPDX-License-Identifier: EPL-2.0

// Package playback sends interleaved float32 audio to the default output
// device and blocks until it has been played.
//
// The device is opened on the first call to Play, never at import or
// construction time, so programs that link this package but only write
// files do not need a working sound card:
//
//	sink := playback.NewDeviceSink()
//	err := playback.PlayFigure(sink, lissajous.DefaultParams(), 1000)
//	if errors.Is(err, playback.ErrDeviceError) {
//		// no audio output available
//	}
//
// The default device is github.com/ebitengine/oto/v3. oto allows a
// single context per process, so the first Play fixes the sample rate
// and channel count for the life of the program; asking for a different
// layout later fails with ErrDeviceError. Tests and alternative backends
// plug in through WithDevice.
package playback
