// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always outputs two interleaved channels of 16-bit PCM; mono
// files come out with the channel duplicated, which a vectorscope shows
// as a diagonal line.
//
//	source, err := mp3.Decoder{}.Decode(file)
//	frames, err := audio.CollectFrames(source, 4096)
package mp3
