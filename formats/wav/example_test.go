// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/lissajous/formats/wav"
)

// Example_encoding writes a short stereo clip as 32-bit float.
func Example_encoding() {
	interleaved := []float32{0, 1, 1, 0, 0, -1, -1, 0}

	var out bytes.Buffer
	if err := wav.Write(&out, 48000, 2, interleaved, wav.Float32); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("File size: %d bytes\n", out.Len())
	// Output:
	// File size: 76 bytes
}

// Example_decoding reads back a PCM16 file.
func Example_decoding() {
	var file bytes.Buffer
	_ = wav.WriteWAV16(&file, 16000, 2, []int16{100, 200, 300, 400})

	source, err := wav.Decoder{}.Decode(&file)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", source.SampleRate())
	fmt.Printf("Channels: %d\n", source.Channels())
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 2
}
