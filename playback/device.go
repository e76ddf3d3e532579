// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player plays one stream. It mirrors the subset of *oto.Player used by
// DeviceSink.
type Player interface {
	Play()
	IsPlaying() bool
	Err() error
	Close() error
}

// Device creates players reading float32 little endian samples.
type Device interface {
	NewPlayer(r io.Reader) Player
}

// DeviceFactory opens a device for the given layout.
type DeviceFactory func(sampleRate, channels int) (Device, error)

type otoDevice struct {
	ctx *oto.Context
}

func (d otoDevice) NewPlayer(r io.Reader) Player {
	return otoPlayer{d.ctx.NewPlayer(r)}
}

// otoPlayer stops output on Close.
type otoPlayer struct {
	*oto.Player
}

func (p otoPlayer) Close() error {
	p.Pause()
	return nil
}

// oto panics on a second NewContext, so the context is process wide.
var (
	otoOnce     sync.Once
	otoCtx      *oto.Context
	otoErr      error
	otoRate     int
	otoChannels int
)

// OpenOto is the default DeviceFactory.
func OpenOto(sampleRate, channels int) (Device, error) {
	otoOnce.Do(func() {
		otoRate, otoChannels = sampleRate, channels

		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = fmt.Errorf("%w: %w", ErrDeviceError, err)
			return
		}
		<-ready

		if err := ctx.Err(); err != nil {
			otoErr = fmt.Errorf("%w: %w", ErrDeviceError, err)
			return
		}
		otoCtx = ctx
	})

	if otoErr != nil {
		return nil, otoErr
	}
	if sampleRate != otoRate || channels != otoChannels {
		return nil, fmt.Errorf("%w: output already open at %d Hz %d ch, requested %d Hz %d ch",
			ErrDeviceError, otoRate, otoChannels, sampleRate, channels)
	}

	return otoDevice{ctx: otoCtx}, nil
}
