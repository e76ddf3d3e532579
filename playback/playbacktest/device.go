// SPDX-License-Identifier: EPL-2.0

// Package playbacktest provides a recording playback device for tests.
package playbacktest

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/ik5/lissajous/playback"
)

// FakeDevice records what would have been played. Its Open method is a
// playback.DeviceFactory.
type FakeDevice struct {
	// OpenErr fails Open.
	OpenErr error
	// PlayErr is reported by every player's Err after draining.
	PlayErr error
	// CloseErr is returned by every player's Close.
	CloseErr error
	// Polls is how many IsPlaying calls report true before draining.
	Polls int

	mu       sync.Mutex
	opens    int
	rate     int
	channels int
	data     []byte
	players  int
	closed   int
}

// Open records the requested layout.
func (d *FakeDevice) Open(sampleRate, channels int) (playback.Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.opens++
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	d.rate, d.channels = sampleRate, channels

	return d, nil
}

func (d *FakeDevice) NewPlayer(r io.Reader) playback.Player {
	d.mu.Lock()
	d.players++
	d.mu.Unlock()

	return &fakePlayer{dev: d, r: r}
}

// Opens is how many times Open was called.
func (d *FakeDevice) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.opens
}

// Layout is the sample rate and channel count of the last Open.
func (d *FakeDevice) Layout() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rate, d.channels
}

// Players is how many players were created and how many were closed.
func (d *FakeDevice) Players() (created, closed int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.players, d.closed
}

// Samples decodes everything played so far.
func (d *FakeDevice) Samples() []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]float32, len(d.data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(d.data[4*i:]))
	}

	return out
}

type fakePlayer struct {
	dev   *FakeDevice
	r     io.Reader
	polls int
}

func (p *fakePlayer) Play() {
	b, _ := io.ReadAll(p.r)

	p.dev.mu.Lock()
	p.dev.data = append(p.dev.data, b...)
	p.polls = p.dev.Polls
	p.dev.mu.Unlock()
}

func (p *fakePlayer) IsPlaying() bool {
	if p.polls > 0 {
		p.polls--
		return true
	}

	return false
}

func (p *fakePlayer) Err() error { return p.dev.PlayErr }

func (p *fakePlayer) Close() error {
	p.dev.mu.Lock()
	p.dev.closed++
	p.dev.mu.Unlock()

	return p.dev.CloseErr
}
