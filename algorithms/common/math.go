package common

import (
	"math"
)

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampIndex constrains an index to [0, n-1].
func ClampIndex(i, n int) int {
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// IsPowerOfTwo checks if n is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOfTwo finds the next power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// Log2Ceil returns the smallest o with 1<<o >= n.
func Log2Ceil(n int) int {
	o := 0
	for 1<<o < n {
		o++
	}
	return o
}

// NearlyInteger reports whether v lies within tol of an integer.
func NearlyInteger(v, tol float64) bool {
	return math.Abs(math.Floor(v)-v) < tol || math.Abs(math.Ceil(v)-v) < tol
}
