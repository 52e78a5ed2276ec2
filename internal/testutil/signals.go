package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Gaussian generates a Gaussian peak of the given height, centre and sigma.
func Gaussian(length int, centre, sigma, height float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := (float64(i) - centre) / sigma
		out[i] = height * math.Exp(-0.5*d*d)
	}
	return out
}

// Step generates a detector-like charge pulse: zero before start, a linear
// rise over rise samples, then flat at height.
func Step(length, start, rise int, height float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		switch {
		case i < start:
		case i < start+rise:
			out[i] = height * float64(i-start+1) / float64(rise)
		default:
			out[i] = height
		}
	}
	return out
}

// Ramp generates the current pulse of Step: a box of height/rise over the
// rise time, zero elsewhere.
func Ramp(length, start, rise int, height float64) []float64 {
	out := make([]float64, length)
	for i := start; i < start+rise && i < length; i++ {
		if i >= 0 {
			out[i] = height / float64(rise)
		}
	}
	return out
}
