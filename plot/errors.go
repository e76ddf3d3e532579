// SPDX-License-Identifier: EPL-2.0

package plot

import "github.com/ik5/lissajous"

// ErrMissingDependency is lissajous.ErrMissingDependency, repeated here
// so callers that only import plot can test for it.
var ErrMissingDependency = lissajous.ErrMissingDependency
