// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/lissajous/internal/audiotest"
)

func TestCollect_AllSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		bufSize  int
	}{
		{"mono exact", 1, 100, 100},
		{"mono chunked", 1, 1000, 64},
		{"stereo odd buffer rounded up", 2, 333, 7},
		{"default buffer size", 2, 10000, 0},
		{"empty", 2, 0, 16},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(8000, tt.channels, tt.frames, 440)
			got, err := Collect(src, tt.bufSize)
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}

			if want := tt.frames * tt.channels; len(got) != want {
				t.Errorf("len(Collect()) = %d, want %d", len(got), want)
			}
		})
	}
}

func TestCollect_Error(t *testing.T) {
	t.Parallel()

	got, err := Collect(audiotest.NewFailingSource(8000, 2, 10), 4)
	if !errors.Is(err, audiotest.ErrInjected) {
		t.Fatalf("Collect() error = %v, want ErrInjected", err)
	}
	if len(got) != 20 {
		t.Errorf("len(partial) = %d, want 20", len(got))
	}
}

func TestCollectFrames(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 5, func(frame int, ch int) float32 {
		return float32(frame) + float32(ch)/10
	})

	frames, err := CollectFrames(src, 3)
	if err != nil {
		t.Fatalf("CollectFrames() error = %v", err)
	}

	if len(frames) != 5 {
		t.Fatalf("len(frames) = %d, want 5", len(frames))
	}
	for i, f := range frames {
		if f[0] != float32(i) || f[1] != float32(i)+0.1 {
			t.Errorf("frame %d = %v", i, f)
		}
	}
}

func TestCollectFrames_NotStereo(t *testing.T) {
	t.Parallel()

	_, err := CollectFrames(audiotest.NewSilentSource(8000, 1, 10), 16)
	if !errors.Is(err, ErrNotStereo) {
		t.Errorf("CollectFrames() error = %v, want ErrNotStereo", err)
	}
}
