// Package spectral transforms sample arrays into the frequency domain and
// back: a direct DFT, an in-place radix-2 FFT, polar conversion, and
// convolution with kernel extraction by deconvolution.
package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/interp"
	"github.com/RyanBlaney/sonido-samples/algorithms/windowing"
)

const maxOrder = 30

// FFT transforms the 2^|m| complex samples in x (real) and y (imaginary)
// in place. A positive m runs the forward transform, scaled by 1/n, and a
// negative m the unscaled inverse, so that the pair reproduces its input.
// Returns n, or 0 when m is 0, |m| > 30 or the arrays are too short.
func FFT(m int, x, y []float64) int {
	forward := m > 0
	if m < 0 {
		m = -m
	}
	if m == 0 || m > maxOrder {
		return 0
	}
	n := 1 << m
	if len(x) < n || len(y) < n {
		return 0
	}

	// bit reversal
	j := 0
	for i := 0; i < n-1; i++ {
		if i < j {
			x[i], x[j] = x[j], x[i]
			y[i], y[j] = y[j], y[i]
		}
		k := n >> 1
		for k <= j {
			j -= k
			k >>= 1
		}
		j += k
	}

	sign := 1.0
	if forward {
		sign = -1
	}
	for half := 1; half < n; half <<= 1 {
		step := half << 1
		for p := 0; p < half; p++ {
			ui, ur := math.Sincos(sign * math.Pi * float64(p) / float64(half))
			for i := p; i < n; i += step {
				i1 := i + half
				t1 := ur*x[i1] - ui*y[i1]
				t2 := ur*y[i1] + ui*x[i1]
				x[i1] = x[i] - t1
				y[i1] = y[i] - t2
				x[i] += t1
				y[i] += t2
			}
		}
	}

	if forward {
		scale := 1 / float64(n)
		for i := 0; i < n; i++ {
			x[i] *= scale
			y[i] *= scale
		}
	}
	return n
}

// ComplexFFT copies 2^|o| samples from ire, iim into ore, oim and
// transforms them there; o < 0 selects the inverse. Returns n or 0 on a
// bad order.
func ComplexFFT(o int, ire, iim, ore, oim []float64) int {
	if o == 0 || o > maxOrder || o < -maxOrder {
		return 0
	}
	n := 1 << max(o, -o)
	if len(ire) < n || len(iim) < n || len(ore) < n || len(oim) < n {
		return 0
	}
	copy(ore[:n], ire)
	copy(oim[:n], iim)
	return FFT(o, ore, oim)
}

// spectrum windows the first 2^o samples of in and transforms them with a
// zero imaginary part.
func spectrum(o int, in []float64, window windowing.Type) (re, im []float64, err error) {
	if o < 1 || o > maxOrder {
		return nil, nil, ErrBadOrder
	}
	n := 1 << o
	if len(in) < n {
		return nil, nil, ErrShortInput
	}
	re = make([]float64, n)
	im = make([]float64, n)
	windowing.Apply(window, in[:n], re)
	FFT(o, re, im)
	return re, im, nil
}

// RealFFT returns the single sided amplitude spectrum of the first 2^o
// samples of in after applying window: 2^o/2 bins holding twice the
// magnitude of the positive frequency half, which matches the scaling of
// DFT.
func RealFFT(o int, in []float64, window windowing.Type) ([]float64, error) {
	re, im, err := spectrum(o, in, window)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(re)/2)
	for k := range out {
		out[k] = 2 * math.Hypot(re[k], im[k])
	}
	return out, nil
}

// PolarFFT is RealFFT that also returns the phase of every bin.
func PolarFFT(o int, in []float64, window windowing.Type) (amp, phase []float64, err error) {
	re, im, err := spectrum(o, in, window)
	if err != nil {
		return nil, nil, err
	}
	half := len(re) / 2
	amp = make([]float64, half)
	phase = make([]float64, half)
	ComplexToPolar(re[:half], im[:half], amp, phase)
	for k := range amp {
		amp[k] *= 2
	}
	return amp, phase, nil
}

// RealNFFT returns an amplitude spectrum of len(in) bins for an input of
// any length. The windowed input is centred in a zero padded buffer of the
// next power of two, transformed, and the nfft/2 amplitude bins are
// resampled onto len(in) channels. The resampling keeps the summed
// amplitude, not the bin values.
func RealNFFT(in []float64, window windowing.Type) ([]float64, error) {
	n := len(in)
	o := common.Log2Ceil(n)
	if o < 1 || o > maxOrder {
		return nil, ErrBadOrder
	}
	nfft := 1 << o
	buf := make([]float64, nfft)
	windowing.Apply(window, in, buf[(nfft-n)/2:(nfft-n)/2+n])
	amp, err := RealFFT(o, buf, windowing.None)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	interp.Resize(amp, out, 0, float64(len(amp)))
	return out, nil
}
