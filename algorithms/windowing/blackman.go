package windowing

import "math"

// blackmanAt evaluates the classic three term Blackman window.
func blackmanAt(x float64) float64 {
	a0, a1, a2 := 0.42, 0.5, 0.08
	arg := 2 * math.Pi * x
	return a0 - a1*math.Cos(arg) + a2*math.Cos(2*arg)
}

// NewBlackman creates a new Blackman window
func NewBlackman(size int) (*Window, error) {
	return NewWindow(Blackman, size)
}
