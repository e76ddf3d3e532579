// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/lissajous/utils"
)

// Metadata is written as a LIST/INFO chunk by Encode.
type Metadata = gowav.Metadata

// Encode writes interleaved float samples as 16-bit PCM through the
// go-audio encoder, which patches chunk sizes on Close and so needs an
// io.WriteSeeker. meta may be nil.
func Encode(ws io.WriteSeeker, sampleRate, channels int, samples []float32, meta *Metadata) error {
	if err := checkLayout(sampleRate, channels, len(samples), PCM16); err != nil {
		return err
	}

	enc := gowav.NewEncoder(ws, sampleRate, PCM16.BitsPerSample(), channels, int(formatTagPCM))
	enc.Metadata = meta

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: PCM16.BitsPerSample(),
	}

	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		buf.Data = buf.Data[:0]
		for _, s := range chunk {
			buf.Data = append(buf.Data, int(utils.Float32ToInt16(s)))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("encode wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}

	return nil
}
