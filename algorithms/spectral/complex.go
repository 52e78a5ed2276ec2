package spectral

import "math"

// PolarToComplex converts magnitude and phase into real and imaginary
// parts. Returns the number of values converted.
func PolarToComplex(mag, phase, re, im []float64) int {
	for k, m := range mag {
		s, c := math.Sincos(phase[k])
		re[k] = m * c
		im[k] = m * s
	}
	return len(mag)
}

// ComplexToPolar converts real and imaginary parts into magnitude and a
// phase in (-pi, pi]. The outputs may alias the inputs.
func ComplexToPolar(re, im, mag, phase []float64) int {
	for k, r := range re {
		i := im[k]
		mag[k] = math.Hypot(r, i)
		phase[k] = math.Atan2(i, r)
	}
	return len(re)
}

// MultiplyComplex stores the element wise product of two complex arrays.
// The outputs may alias either input.
func MultiplyComplex(re1, im1, re2, im2, reo, imo []float64) int {
	for f := range re1 {
		r1, i1, r2, i2 := re1[f], im1[f], re2[f], im2[f]
		reo[f] = r1*r2 - i1*i2
		imo[f] = i1*r2 + r1*i2
	}
	return len(re1)
}

// DivideComplex stores the element wise quotient (re1+i*im1)/(re2+i*im2).
// Division by a zero element yields non-finite values. The outputs may
// alias either input.
func DivideComplex(re1, im1, re2, im2, reo, imo []float64) int {
	for f := range re1 {
		r1, i1, r2, i2 := re1[f], im1[f], re2[f], im2[f]
		den := r2*r2 + i2*i2
		reo[f] = (r1*r2 + i1*i2) / den
		imo[f] = (i1*r2 - r1*i2) / den
	}
	return len(re1)
}
