// SPDX-License-Identifier: EPL-2.0

package lissajous

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/lissajous/formats/wav"
)

// Software is written into the INFO chunk of saved files.
const Software = "lissajous"

// WriteWAV encodes buf as a two channel WAV stream.
func WriteWAV(w io.Writer, buf Buffer, sampleRate int, format wav.SampleFormat) error {
	return wav.Write(w, sampleRate, 2, buf.Interleaved(), format)
}

// SaveWAV generates the figure for p and writes it to path. PCM16 files
// carry an INFO chunk describing the parameters.
func SaveWAV(path string, p Params, format wav.SampleFormat) (err error) {
	buf, rate, err := p.Generate()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if format == wav.PCM16 {
		meta := &wav.Metadata{
			Software: Software,
			Comments: p.String(),
		}
		return wav.Encode(f, rate, 2, buf.Interleaved(), meta)
	}

	return WriteWAV(f, buf, rate, format)
}
