// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source using
// github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported and normalised to
// float32 in [-1.0, 1.0). Inputs that are not an io.ReadSeeker are read
// fully into memory first because the underlying decoder seeks.
package aiff
