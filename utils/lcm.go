// SPDX-License-Identifier: EPL-2.0

package utils

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm. The result is never negative; GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// LCM returns the least common multiple of a and b.
// LCM(0, x) is 0.
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}

	l := a / GCD(a, b) * b
	if l < 0 {
		return -l
	}

	return l
}
