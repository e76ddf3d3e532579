// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to the closed range [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}

	return x
}

// Float32ToInt16 clamps x and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	// 32767 keeps +1.0 from wrapping
	return int16(Clamp(x) * 32767.0)
}

// Float32SliceToInt16 converts src into dst and returns the number of
// samples written, min(len(dst), len(src)).
func Float32SliceToInt16(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
