package spectral

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// ReferenceFFT transforms sequences of any length with mjibson/go-dsp,
// scaled like ComplexFFT: the forward transform divides by n and the
// inverse does not. It serves for lengths that are not a power of two.
type ReferenceFFT struct{}

// NewReferenceFFT creates a reference transform.
func NewReferenceFFT() *ReferenceFFT {
	return &ReferenceFFT{}
}

// Spectrum returns the real and imaginary parts of the n bins of the real
// sequence x, divided by n.
func (f *ReferenceFFT) Spectrum(x []float64) (re, im []float64) {
	n := len(x)
	if n == 0 {
		return []float64{}, []float64{}
	}
	return split(fft.FFTReal(x), 1/float64(n))
}

// Inverse is the inverse of Spectrum for a full set of n bins.
func (f *ReferenceFFT) Inverse(re, im []float64) (ore, oim []float64) {
	n := min(len(re), len(im))
	if n == 0 {
		return []float64{}, []float64{}
	}
	bins := make([]complex128, n)
	for k := range bins {
		bins[k] = complex(re[k], im[k])
	}
	// go-dsp divides its inverse by n
	return split(fft.IFFT(bins), float64(n))
}

// Amplitudes returns the single sided amplitude spectrum of x scaled like
// RealFFT: 2*|X_k|/n for the first n/2 bins.
func (f *ReferenceFFT) Amplitudes(x []float64) []float64 {
	if len(x) < 2 {
		return []float64{}
	}
	re, im := f.Spectrum(x)
	out := make([]float64, len(x)/2)
	for k := range out {
		out[k] = 2 * math.Hypot(re[k], im[k])
	}
	return out
}

func split(bins []complex128, scale float64) (re, im []float64) {
	re = make([]float64, len(bins))
	im = make([]float64, len(bins))
	for k, b := range bins {
		re[k] = real(b) * scale
		im[k] = imag(b) * scale
	}
	return re, im
}
