package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// vanishing is the squared bin magnitude, relative to the largest bin,
// below which a response bin counts as zero.
const vanishing = 1e-24

// Convolve returns the full linear convolution of in with the kernel h,
// len(in)+len(h)-1 samples.
func Convolve(in, h []float64) []float64 {
	if len(in) == 0 || len(h) == 0 {
		return []float64{}
	}
	out := make([]float64, len(in)+len(h)-1)
	for i, v := range in {
		floats.AddScaled(out[i:i+len(h)], v, h)
	}
	return out
}

// ConvolutionKernel extracts the kernel that turns the response in, caused
// by a unit impulse at channel delta, back into that impulse. The kernel
// is the circular deconvolution of the impulse by the response, computed
// with DFT, and is truncated to at most nh samples. A response with
// vanishing spectral bins cannot be inverted and yields ErrIllConditioned.
func ConvolutionKernel(in []float64, delta, nh int) ([]float64, error) {
	n := len(in) &^ 1
	if n == 0 || delta < 0 || delta >= n {
		return nil, ErrShortInput
	}
	impulse := make([]float64, n)
	impulse[delta] = 1

	dre, dim := DFT(impulse)
	ire, iim := DFT(in[:n])

	peak := 0.0
	for k := range ire {
		peak = math.Max(peak, ire[k]*ire[k]+iim[k]*iim[k])
	}
	for k := range ire {
		if ire[k]*ire[k]+iim[k]*iim[k] <= vanishing*peak {
			return nil, ErrIllConditioned
		}
	}

	DivideComplex(dre, dim, ire, iim, dre, dim)
	// the quotient lost the 2/n bin scaling InverseDFT expects
	floats.Scale(2/float64(n), dre)
	floats.Scale(2/float64(n), dim)

	kernel := InverseDFT(dre, dim)
	for _, v := range kernel {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrIllConditioned
		}
	}
	if nh < len(kernel) {
		kernel = kernel[:max(nh, 0)]
	}
	return kernel, nil
}
