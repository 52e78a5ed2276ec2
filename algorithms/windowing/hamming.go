package windowing

import "math"

// hammingAt evaluates the Hamming window 0.54 - 0.46*cos(2*pi*x).
func hammingAt(x float64) float64 {
	return 0.54 - 0.46*math.Cos(2*math.Pi*x)
}

// NewHamming creates a new Hamming window
func NewHamming(size int) (*Window, error) {
	return NewWindow(Hamming, size)
}
