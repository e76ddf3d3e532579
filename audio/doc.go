// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives shared by the
// generator, the file decoders and the consumers.
//
// # Source Interface
//
// Everything that produces PCM implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1.0, 1.0]. A generated Lissajous
// figure is a two channel Source whose left channel is the X axis and
// right channel the Y axis.
//
// # Resampling
//
// Resampler changes the sample rate with Catmull-Rom cubic interpolation.
// The vectorscope uses it to thin out long recordings before plotting:
//
//	r, err := audio.NewResampler(src, 8000)
//	frames, err := audio.CollectFrames(r, 4096)
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("capture.wav")
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available; it may
// return n > 0 together with io.EOF on the last read:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
