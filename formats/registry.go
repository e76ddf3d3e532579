// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder in this module into an
// audio.Registry.
package formats

import (
	"github.com/ik5/lissajous/audio"
	"github.com/ik5/lissajous/formats/aiff"
	"github.com/ik5/lissajous/formats/mp3"
	"github.com/ik5/lissajous/formats/vorbis"
	"github.com/ik5/lissajous/formats/wav"
)

// NewRegistry returns a registry keyed by the usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}
