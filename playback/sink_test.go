// SPDX-License-Identifier: EPL-2.0

package playback_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/lissajous"
	"github.com/ik5/lissajous/audio"
	"github.com/ik5/lissajous/internal/audiotest"
	"github.com/ik5/lissajous/playback"
	"github.com/ik5/lissajous/playback/playbacktest"
)

func newSink(dev *playbacktest.FakeDevice) *playback.DeviceSink {
	return playback.NewDeviceSink(
		playback.WithDevice(dev.Open),
		playback.WithPollInterval(time.Millisecond),
	)
}

func TestDeviceSink_OpensLazily(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	sink := newSink(dev)
	assert.Zero(t, dev.Opens(), "device opened at construction")

	require.NoError(t, sink.Play([]float32{0.1, 0.2}, 2, 48000))
	require.NoError(t, sink.Play([]float32{0.3, 0.4}, 2, 48000))

	assert.Equal(t, 1, dev.Opens())
	rate, ch := dev.Layout()
	assert.Equal(t, 48000, rate)
	assert.Equal(t, 2, ch)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, dev.Samples())
}

func TestDeviceSink_BlocksUntilDrained(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{Polls: 5}
	sink := newSink(dev)

	start := time.Now()
	require.NoError(t, sink.Play(make([]float32, 96), 2, 48000))

	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	created, closed := dev.Players()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, closed)
}

func TestDeviceSink_DeviceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dev  *playbacktest.FakeDevice
	}{
		{"open fails", &playbacktest.FakeDevice{OpenErr: audiotest.ErrInjected}},
		{"player fails", &playbacktest.FakeDevice{PlayErr: audiotest.ErrInjected}},
		{"close fails", &playbacktest.FakeDevice{CloseErr: audiotest.ErrInjected}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := newSink(tt.dev).Play([]float32{0, 0}, 2, 48000)

			require.ErrorIs(t, err, playback.ErrDeviceError)
			assert.ErrorIs(t, err, lissajous.ErrDeviceError)
			assert.ErrorIs(t, err, audiotest.ErrInjected)
		})
	}
}

func TestDeviceSink_OpenErrorWrappedOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		openErr error
	}{
		{"already a device error", fmt.Errorf("%w: no audio backend", playback.ErrDeviceError)},
		{"foreign error", audiotest.ErrInjected},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dev := &playbacktest.FakeDevice{OpenErr: tt.openErr}
			err := newSink(dev).Play([]float32{0, 0}, 2, 48000)

			require.ErrorIs(t, err, playback.ErrDeviceError)
			assert.ErrorIs(t, err, tt.openErr)
			assert.Equal(t, 1, strings.Count(err.Error(), playback.ErrDeviceError.Error()), err.Error())
		})
	}
}

func TestDeviceSink_OpenFailureIsSticky(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{OpenErr: audiotest.ErrInjected}
	sink := newSink(dev)

	require.ErrorIs(t, sink.Play([]float32{0, 0}, 2, 48000), playback.ErrDeviceError)
	require.ErrorIs(t, sink.Play([]float32{0, 0}, 2, 48000), playback.ErrDeviceError)
	assert.Equal(t, 1, dev.Opens())
}

func TestDeviceSink_LayoutIsFixed(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	sink := newSink(dev)

	require.NoError(t, sink.Play([]float32{0, 0}, 2, 48000))

	err := sink.Play([]float32{0, 0}, 2, 44100)
	require.ErrorIs(t, err, playback.ErrDeviceError)

	err = sink.Play([]float32{0}, 1, 48000)
	require.ErrorIs(t, err, playback.ErrDeviceError)
}

func TestDeviceSink_InvalidInput(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	sink := newSink(dev)

	tests := []struct {
		name     string
		samples  []float32
		channels int
		rate     int
	}{
		{"no channels", []float32{0}, 0, 48000},
		{"no rate", []float32{0, 0}, 2, 0},
		{"partial frame", []float32{0, 0, 0}, 2, 48000},
	}

	for _, tt := range tests {
		err := sink.Play(tt.samples, tt.channels, tt.rate)
		assert.ErrorIs(t, err, lissajous.ErrInvalidParameter, tt.name)
	}

	assert.Zero(t, dev.Opens(), "device opened for invalid input")
}

func TestDeviceSink_Cancel(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{Polls: 1 << 30}
	sink := newSink(dev)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := sink.PlayContext(ctx, []float32{0, 0}, 2, 48000)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

	_, closed := dev.Players()
	assert.Equal(t, 1, closed)
}

func TestDeviceSink_PlaySource(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	sink := newSink(dev)

	src := audiotest.NewMockSource(44100, 2, 5000, func(frame, ch int) float32 {
		return float32(frame%100)/100 - float32(ch)
	})
	require.NoError(t, sink.PlaySource(context.Background(), src))

	want, err := audio.Collect(audiotest.NewMockSource(44100, 2, 5000, func(frame, ch int) float32 {
		return float32(frame%100)/100 - float32(ch)
	}), 0)
	require.NoError(t, err)
	assert.Equal(t, want, dev.Samples())

	rate, ch := dev.Layout()
	assert.Equal(t, 44100, rate)
	assert.Equal(t, 2, ch)
}

func TestDeviceSink_PlaySourceError(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	err := newSink(dev).PlaySource(context.Background(), audiotest.NewFailingSource(48000, 2, 10))

	require.ErrorIs(t, err, audiotest.ErrInjected)
	assert.NotErrorIs(t, err, playback.ErrDeviceError)
	assert.Len(t, dev.Samples(), 20)
}

func TestDeviceSink_PlaySourceInvalid(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	err := newSink(dev).PlaySource(context.Background(), audiotest.NewSilentSource(0, 2, 10))

	require.ErrorIs(t, err, lissajous.ErrInvalidParameter)
	assert.Zero(t, dev.Opens())
}

// streamSink records the source it is handed instead of playing it.
type streamSink struct {
	plainSink

	frames int
	src    audio.Source
}

func (s *streamSink) PlaySource(_ context.Context, src audio.Source) error {
	s.src = src
	if fs, ok := src.(interface{ Frames() int }); ok {
		s.frames = fs.Frames()
	}

	return nil
}

func TestPlayFigure_StreamsLoops(t *testing.T) {
	t.Parallel()

	sink := &streamSink{}
	p := lissajous.Params{BaseFreq: 500, Ratio: 3, PhaseDeg: 45, SampleRate: 48000}

	require.NoError(t, playback.PlayFigure(sink, p, 1000))

	require.NotNil(t, sink.src)
	assert.Nil(t, sink.samples, "figure was flattened for a streaming sink")
	assert.Equal(t, 1000*288, sink.frames)
	assert.Equal(t, 48000, sink.src.SampleRate())
	assert.Equal(t, 2, sink.src.Channels())
}

func TestPlayFigure(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	sink := newSink(dev)
	p := lissajous.Params{BaseFreq: 500, Ratio: 3, PhaseDeg: 45, SampleRate: 48000}

	require.NoError(t, playback.PlayFigure(sink, p, 3))

	buf, _, err := p.Generate()
	require.NoError(t, err)

	got := dev.Samples()
	require.Len(t, got, 3*288*2)
	assert.Equal(t, buf.Repeat(3).Interleaved(), got)

	rate, ch := dev.Layout()
	assert.Equal(t, 48000, rate)
	assert.Equal(t, 2, ch)
}

func TestPlayFigure_InvalidParams(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{}
	p := lissajous.DefaultParams()
	p.BaseFreq = -1

	err := playback.PlayFigure(newSink(dev), p, 1)

	require.ErrorIs(t, err, lissajous.ErrInvalidParameter)
	assert.Zero(t, dev.Opens())
}

func TestPlayFigure_Unavailable(t *testing.T) {
	t.Parallel()

	dev := &playbacktest.FakeDevice{OpenErr: audiotest.ErrInjected}

	err := playback.PlayFigure(newSink(dev), lissajous.DefaultParams(), 1)

	require.ErrorIs(t, err, playback.ErrDeviceError)
}

// plainSink only implements Sink.
type plainSink struct {
	samples  []float32
	channels int
	rate     int
}

func (s *plainSink) Play(samples []float32, channels, sampleRate int) error {
	s.samples, s.channels, s.rate = samples, channels, sampleRate
	return nil
}

func TestPlayFigureContext(t *testing.T) {
	t.Parallel()

	sink := &plainSink{}
	require.NoError(t, playback.PlayFigureContext(context.Background(), sink, lissajous.DefaultParams(), 0))
	assert.Len(t, sink.samples, 96)
	assert.Equal(t, 2, sink.channels)
	assert.Equal(t, 48000, sink.rate)

	dev := &playbacktest.FakeDevice{Polls: 1 << 30}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := playback.PlayFigureContext(ctx, newSink(dev), lissajous.DefaultParams(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
