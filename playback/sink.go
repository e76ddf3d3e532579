// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ik5/lissajous"
	"github.com/ik5/lissajous/audio"
)

// DefaultPollInterval is how often Play checks whether the device has
// drained.
const DefaultPollInterval = 10 * time.Millisecond

// Sink plays interleaved samples and returns once they have been heard.
type Sink interface {
	Play(samples []float32, channels, sampleRate int) error
}

// Option configures a DeviceSink.
type Option func(*DeviceSink)

// WithDevice replaces the oto backend.
func WithDevice(open DeviceFactory) Option {
	return func(s *DeviceSink) { s.open = open }
}

// WithPollInterval sets how often Play checks for the end of playback.
func WithPollInterval(d time.Duration) Option {
	return func(s *DeviceSink) {
		if d > 0 {
			s.poll = d
		}
	}
}

// DeviceSink plays through an output device opened on first use. Calls
// to Play are serialized.
type DeviceSink struct {
	open DeviceFactory
	poll time.Duration

	once     sync.Once
	dev      Device
	openErr  error
	rate     int
	channels int

	mu sync.Mutex
}

func NewDeviceSink(opts ...Option) *DeviceSink {
	s := &DeviceSink{
		open: OpenOto,
		poll: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Play blocks until every sample has been played.
func (s *DeviceSink) Play(samples []float32, channels, sampleRate int) error {
	return s.PlayContext(context.Background(), samples, channels, sampleRate)
}

// PlayContext is Play that stops early, closing the player, when ctx is
// done.
func (s *DeviceSink) PlayContext(ctx context.Context, samples []float32, channels, sampleRate int) error {
	switch {
	case channels <= 0:
		return &lissajous.ParamError{Name: "channels", Value: channels, Reason: "must be positive"}
	case sampleRate <= 0:
		return &lissajous.ParamError{Name: "sample_rate", Value: sampleRate, Reason: "must be positive"}
	case len(samples)%channels != 0:
		return &lissajous.ParamError{Name: "samples", Value: len(samples), Reason: "must be a whole number of frames"}
	}

	if len(samples) == 0 {
		s.mu.Lock()
		defer s.mu.Unlock()

		_, err := s.device(sampleRate, channels)
		return err
	}

	return s.play(ctx, bytes.NewReader(encode(samples)), channels, sampleRate)
}

// PlaySource streams src to the device without buffering it whole. It
// returns once the source is exhausted and the device has drained, or
// when ctx is done.
func (s *DeviceSink) PlaySource(ctx context.Context, src audio.Source) error {
	switch {
	case src.Channels() <= 0:
		return &lissajous.ParamError{Name: "channels", Value: src.Channels(), Reason: "must be positive"}
	case src.SampleRate() <= 0:
		return &lissajous.ParamError{Name: "sample_rate", Value: src.SampleRate(), Reason: "must be positive"}
	}

	r := newSourceReader(src)
	if err := s.play(ctx, r, src.Channels(), src.SampleRate()); err != nil {
		return err
	}
	if !errors.Is(r.err, io.EOF) {
		return fmt.Errorf("read source: %w", r.err)
	}

	return nil
}

func (s *DeviceSink) play(ctx context.Context, r io.Reader, channels, sampleRate int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dev, err := s.device(sampleRate, channels)
	if err != nil {
		return err
	}

	p := dev.NewPlayer(r)
	p.Play()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			_ = p.Close()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if err := p.Err(); err != nil {
		_ = p.Close()
		return fmt.Errorf("%w: %w", ErrDeviceError, err)
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("%w: close player: %w", ErrDeviceError, err)
	}

	return nil
}

func (s *DeviceSink) device(sampleRate, channels int) (Device, error) {
	s.once.Do(func() {
		s.rate, s.channels = sampleRate, channels

		dev, err := s.open(sampleRate, channels)
		switch {
		case errors.Is(err, ErrDeviceError):
			s.openErr = err
		case err != nil:
			s.openErr = fmt.Errorf("%w: open output: %w", ErrDeviceError, err)
		case dev == nil:
			s.openErr = fmt.Errorf("%w: no output device", ErrDeviceError)
		default:
			s.dev = dev
		}
	})

	if s.openErr != nil {
		return nil, s.openErr
	}
	if sampleRate != s.rate || channels != s.channels {
		return nil, fmt.Errorf("%w: sink opened at %d Hz %d ch, requested %d Hz %d ch",
			ErrDeviceError, s.rate, s.channels, sampleRate, channels)
	}

	return s.dev, nil
}

// ContextSink is a Sink that can be interrupted.
type ContextSink interface {
	Sink
	PlayContext(ctx context.Context, samples []float32, channels, sampleRate int) error
}

// SourceSink is a Sink that can stream from an audio.Source.
type SourceSink interface {
	Sink
	PlaySource(ctx context.Context, src audio.Source) error
}

var (
	_ ContextSink = (*DeviceSink)(nil)
	_ SourceSink  = (*DeviceSink)(nil)
)

// PlayFigure generates the figure for p and plays it loops times back to
// back. loops below 1 plays it once.
func PlayFigure(sink Sink, p lissajous.Params, loops int) error {
	return PlayFigureContext(context.Background(), sink, p, loops)
}

// PlayFigureContext is PlayFigure that stops when ctx is done, provided
// sink is a ContextSink. A SourceSink receives the loops as a stream
// and only one closure period is held in memory.
func PlayFigureContext(ctx context.Context, sink Sink, p lissajous.Params, loops int) error {
	buf, rate, err := p.Generate()
	if err != nil {
		return err
	}
	src := lissajous.NewLoopSource(buf, rate, loops)

	if ss, ok := sink.(SourceSink); ok {
		return ss.PlaySource(ctx, src)
	}

	samples, err := audio.Collect(src, 0)
	if err != nil {
		return err
	}
	if cs, ok := sink.(ContextSink); ok {
		return cs.PlayContext(ctx, samples, src.Channels(), rate)
	}

	return sink.Play(samples, src.Channels(), rate)
}
