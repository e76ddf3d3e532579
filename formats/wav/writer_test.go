// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200}
	buf := new(bytes.Buffer)

	if err := WriteWAV16(buf, 48000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != HeaderSize+8 {
		t.Fatalf("size = %d, want %d", len(data), HeaderSize+8)
	}

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(data[4:8]), 36 + 8},
		{"fmt size", binary.LittleEndian.Uint32(data[16:20]), 16},
		{"format tag", uint32(binary.LittleEndian.Uint16(data[20:22])), 1},
		{"channels", uint32(binary.LittleEndian.Uint16(data[22:24])), 2},
		{"sample rate", binary.LittleEndian.Uint32(data[24:28]), 48000},
		{"byte rate", binary.LittleEndian.Uint32(data[28:32]), 48000 * 4},
		{"block align", uint32(binary.LittleEndian.Uint16(data[32:34])), 4},
		{"bits", uint32(binary.LittleEndian.Uint16(data[34:36])), 16},
		{"data size", binary.LittleEndian.Uint32(data[40:44]), 8},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	for _, marker := range []struct {
		at   int
		want string
	}{{0, "RIFF"}, {8, "WAVE"}, {12, "fmt "}, {36, "data"}} {
		if got := string(data[marker.at : marker.at+4]); got != marker.want {
			t.Errorf("marker at %d = %q, want %q", marker.at, got, marker.want)
		}
	}

	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(data[HeaderSize+2*i:]))
		if got != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestWriteFloat32_Header(t *testing.T) {
	t.Parallel()

	samples := []float32{0.5, -0.5, 1, -1}
	buf := new(bytes.Buffer)

	if err := WriteFloat32(buf, 44100, 2, samples); err != nil {
		t.Fatalf("WriteFloat32() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != HeaderSize+16 {
		t.Fatalf("size = %d, want %d", len(data), HeaderSize+16)
	}
	if tag := binary.LittleEndian.Uint16(data[20:22]); tag != 3 {
		t.Errorf("format tag = %d, want 3", tag)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 32 {
		t.Errorf("bits = %d, want 32", bits)
	}
	if align := binary.LittleEndian.Uint16(data[32:34]); align != 8 {
		t.Errorf("block align = %d, want 8", align)
	}

	for i, want := range samples {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[HeaderSize+4*i:]))
		if got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestWriteWAV16_LargeChunked(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 3*chunkSamples+10)
	for i := range samples {
		samples[i] = int16(i)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 8000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	if want := HeaderSize + 2*len(samples); buf.Len() != want {
		t.Fatalf("size = %d, want %d", buf.Len(), want)
	}

	last := int16(binary.LittleEndian.Uint16(buf.Bytes()[buf.Len()-2:]))
	if last != samples[len(samples)-1] {
		t.Errorf("last sample = %d, want %d", last, samples[len(samples)-1])
	}
}

func TestWrite_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    []float32
		format     SampleFormat
		want       error
	}{
		{"zero rate", 0, 2, nil, PCM16, ErrInvalidSampleRate},
		{"zero channels", 8000, 0, nil, PCM16, ErrInvalidChannels},
		{"half frame", 8000, 2, []float32{0.1}, Float32, ErrMisalignedSamples},
		{"unknown format", 8000, 2, nil, SampleFormat(9), ErrUnknownSampleFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Write(new(bytes.Buffer), tt.sampleRate, tt.channels, tt.samples, tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("Write() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheckLayout_HeaderOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    int
		format     SampleFormat
		want       error
	}{
		{"pcm16 at the limit", 48000, 1, maxDataSize / 2, PCM16, nil},
		{"pcm16 past the limit", 48000, 1, maxDataSize/2 + 1, PCM16, ErrDataTooLarge},
		{"float32 at the limit", 48000, 1, maxDataSize / 4, Float32, nil},
		{"float32 past the limit", 48000, 2, 1 << 30, Float32, ErrDataTooLarge},
		{"data wraps uint32", 48000, 2, 1 << 32, PCM16, ErrDataTooLarge},
		{"too many channels", 48000, 1 << 16, 0, PCM16, ErrInvalidChannels},
		{"byte rate overflow", 1 << 30, 2, 0, Float32, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkLayout(tt.sampleRate, tt.channels, tt.samples, tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("checkLayout() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWrite_PropagatesWriterError(t *testing.T) {
	t.Parallel()

	for _, format := range []SampleFormat{PCM16, Float32} {
		if err := Write(failingWriter{}, 8000, 2, []float32{0, 0}, format); err == nil {
			t.Errorf("Write(%v) error = nil, want writer error", format)
		}
	}
}

func TestWrite_EmptyIsHeaderOnly(t *testing.T) {
	t.Parallel()

	for _, format := range []SampleFormat{PCM16, Float32} {
		buf := new(bytes.Buffer)
		if err := Write(buf, 48000, 2, nil, format); err != nil {
			t.Fatalf("Write(%v) error = %v", format, err)
		}
		if buf.Len() != HeaderSize {
			t.Errorf("Write(%v) size = %d, want %d", format, buf.Len(), HeaderSize)
		}
	}
}

func TestParseSampleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SampleFormat
		wantErr bool
	}{
		{"pcm16", PCM16, false},
		{"PCM16", PCM16, false},
		{"", PCM16, false},
		{"float32", Float32, false},
		{" f32 ", Float32, false},
		{"mp3", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSampleFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSampleFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSampleFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func BenchmarkWrite_PCM16(b *testing.B) {
	samples := make([]float32, 96000)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) * 0.01))
	}

	var buf bytes.Buffer

	b.ReportAllocs()

	b.ResetTimer()

	for iter := 0; iter < b.N; iter++ {
		buf.Reset()
		_ = Write(&buf, 48000, 2, samples, PCM16)
	}
}
