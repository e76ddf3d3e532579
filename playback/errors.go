// SPDX-License-Identifier: EPL-2.0

package playback

import "github.com/ik5/lissajous"

// ErrDeviceError is lissajous.ErrDeviceError, repeated here so callers
// that only import playback can test for it.
var ErrDeviceError = lissajous.ErrDeviceError
