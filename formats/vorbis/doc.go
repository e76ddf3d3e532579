// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into an audio.Source using
// github.com/jfreymuth/oggvorbis. Samples arrive already as float32 and
// are passed through untouched; reads are trimmed to whole frames.
package vorbis
