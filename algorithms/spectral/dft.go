package spectral

import "math"

// DFT computes the discrete Fourier transform of in by direct summation.
// An odd length drops the last sample. The n/2+1 bins are scaled by 2/n so
// that a cosine of amplitude A shows up as A in its bin.
func DFT(in []float64) (re, im []float64) {
	n := len(in) &^ 1
	if n == 0 {
		return nil, nil
	}
	on := n/2 + 1
	re = make([]float64, on)
	im = make([]float64, on)
	norm := 2 / float64(n)
	for k := 0; k < on; k++ {
		var r, i float64
		for j, v := range in[:n] {
			s, c := math.Sincos(2 * math.Pi * float64(k*j) / float64(n))
			r += v * c
			i -= v * s
		}
		re[k] = r * norm
		im[k] = i * norm
	}
	return re, im
}

// InverseDFT reconstructs (k-1)*2 samples from k bins as produced by DFT.
// An even number of bins drops the last one. The DC and Nyquist bins
// count half.
func InverseDFT(re, im []float64) []float64 {
	k := len(re)
	if k%2 == 0 {
		k--
	}
	if k < 1 {
		return nil
	}
	on := (k - 1) * 2
	out := make([]float64, on)
	for b := 0; b < k; b++ {
		rp, ip := re[b], -im[b]
		if b == 0 || b == k-1 {
			rp /= 2
		}
		for i := range out {
			s, c := math.Sincos(2 * math.Pi * float64(b*i) / float64(on))
			out[i] += rp*c + ip*s
		}
	}
	return out
}

// PolarDFT is DFT returning amplitude and phase.
func PolarDFT(in []float64) (amp, phase []float64) {
	amp, phase = DFT(in)
	ComplexToPolar(amp, phase, amp, phase)
	return amp, phase
}

// InversePolarDFT is InverseDFT taking amplitude and phase.
func InversePolarDFT(amp, phase []float64) []float64 {
	re := make([]float64, len(amp))
	im := make([]float64, len(amp))
	PolarToComplex(amp, phase, re, im)
	return InverseDFT(re, im)
}
