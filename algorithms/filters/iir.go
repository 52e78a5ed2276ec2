package filters

import (
	"math"
)

// Single pole recursive filters with a decay constant d in (0, 1).
//
// The forward filters take an offset, the value that precedes the first
// input channel, and return the carry value that continues the filter on
// the next chunk. Filtering a long trace in pieces while feeding each
// returned carry into the next call is identical to filtering it at once.
// All functions accept out aliasing in.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
//   - Steven W. Smith, "The Scientist and Engineer's Guide to Digital
//     Signal Processing", Chapter 19 (single pole recursive filters)

// Decay returns the decay constant of a single pole filter with cutoff
// frequency f, given in cycles per channel.
func Decay(f float64) float64 {
	return math.Exp(-2 * math.Pi * f)
}

// CutOff returns the cutoff frequency in cycles per channel of decay d.
// It is the inverse of Decay.
func CutOff(d float64) float64 {
	return -math.Log(d) / (2 * math.Pi)
}

// LowPass applies y[i] = (1-d)*x[i] + d*y[i-1] with y[-1] = offset and
// returns the last output.
func LowPass(in, out []float64, d, offset float64) float64 {
	a0 := 1 - d
	last := offset
	for i, x := range in {
		last = a0*x + d*last
		out[i] = last
	}
	return last
}

// InverseLowPass undoes LowPass run with the same d and offset. It returns
// the last input, the offset for the next chunk.
func InverseLowPass(in, out []float64, d, offset float64) float64 {
	gain := d / (1 - d)
	last := offset
	for i, y := range in {
		out[i] = y + gain*(y-last)
		last = y
	}
	return last
}

// MultiLowPass runs LowPass passes times, every pass starting from offset.
// It returns the number of passes run.
func MultiLowPass(in, out []float64, passes int, d, offset float64) int {
	LowPass(in, out, d, offset)
	i := 0
	for ; i < passes-1; i++ {
		LowPass(out, out, d, offset)
	}
	return i + 1
}

// LRLowPass runs LowPass from left to right starting at the first value
// and then from right to left starting at the last value. The result is a
// symmetric, non causal cusp shaped smoothing.
func LRLowPass(in, out []float64, d float64) {
	n := len(in)
	if n == 0 {
		return
	}
	first, lastIn := in[0], in[n-1]
	a0 := 1 - d
	last := first
	for i, x := range in {
		last = a0*x + d*last
		out[i] = last
	}
	last = lastIn
	for i := n - 1; i >= 0; i-- {
		last = a0*out[i] + d*last
		out[i] = last
	}
}

// HighPass applies the DC blocker
//
//	y[i] = (1+d)/2 * (x[i] - x[i-1]) + d*y[i-1]
//
// with x[-1] = offset and y[-1] = 0. The filter has unit gain at the
// Nyquist frequency. The returned carry is the offset that continues the
// filter seamlessly on the next chunk.
func HighPass(in, out []float64, d, offset float64) float64 {
	a0 := (1 + d) / 2
	a1 := -a0
	lastOut := 0.0
	lastIn := offset
	for i, x := range in {
		lastOut = a0*x + a1*lastIn + d*lastOut
		lastIn = x
		out[i] = lastOut
	}
	return (lastIn*a1 + d*lastOut) / a1
}

// InverseHighPass undoes HighPass run with the same d and offset. The
// returned value is the offset for the next chunk of the inverse.
func InverseHighPass(in, out []float64, d, offset float64) float64 {
	gain := d / (1 - d)
	mult := 2 * (1 - d) / (1 + d)
	sum := offset / mult
	for i, y := range in {
		sum += y
		out[i] = (gain*y + sum) * mult
	}
	return sum * mult
}

// MultiHighPass runs HighPass passes times, every pass starting from
// offset. It returns the number of passes run.
func MultiHighPass(in, out []float64, passes int, d, offset float64) int {
	HighPass(in, out, d, offset)
	i := 0
	for ; i < passes-1; i++ {
		HighPass(out, out, d, offset)
	}
	return i + 1
}

// LowPassStream keeps the carry of LowPass between consecutive buffers of
// one trace.
type LowPassStream struct {
	decay float64
	carry float64
}

// NewLowPassStream creates a low-pass stream with decay d whose trace is
// preceded by offset.
func NewLowPassStream(d, offset float64) *LowPassStream {
	return &LowPassStream{decay: d, carry: offset}
}

// NewLowPassStreamWithCutoff creates a low-pass stream from a cutoff
// frequency in cycles per channel.
func NewLowPassStreamWithCutoff(cutoff float64) *LowPassStream {
	return NewLowPassStream(Decay(cutoff), 0)
}

// ProcessBuffer filters the next buffer of the trace.
func (lp *LowPassStream) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	lp.carry = LowPass(input, output, lp.decay, lp.carry)
	return output
}

// Reset starts a new trace preceded by offset.
func (lp *LowPassStream) Reset(offset float64) {
	lp.carry = offset
}

// GetDecay returns the decay constant.
func (lp *LowPassStream) GetDecay() float64 {
	return lp.decay
}

// GetFrequencyResponse returns magnitude and phase of
// H(z) = (1-d) / (1 - d*z^-1) at frequency f in cycles per channel.
func (lp *LowPassStream) GetFrequencyResponse(f float64) (magnitude, phase float64) {
	return response(1-lp.decay, 0, lp.decay, f)
}

// HighPassStream keeps the carry of HighPass between consecutive buffers
// of one trace.
type HighPassStream struct {
	decay float64
	carry float64
}

// NewHighPassStream creates a DC blocking stream with decay d whose trace
// is preceded by offset.
func NewHighPassStream(d, offset float64) *HighPassStream {
	return &HighPassStream{decay: d, carry: offset}
}

// NewHighPassStreamWithCutoff creates a DC blocking stream from a cutoff
// frequency in cycles per channel. A sampling rate fs and a cutoff fc in
// Hz give cutoff = fc/fs.
func NewHighPassStreamWithCutoff(cutoff float64) *HighPassStream {
	return NewHighPassStream(Decay(cutoff), 0)
}

// ProcessBuffer filters the next buffer of the trace.
func (hp *HighPassStream) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	hp.carry = HighPass(input, output, hp.decay, hp.carry)
	return output
}

// Reset starts a new trace preceded by offset.
// Call this when processing discontinuous segments.
func (hp *HighPassStream) Reset(offset float64) {
	hp.carry = offset
}

// GetDecay returns the decay constant (the pole location).
func (hp *HighPassStream) GetDecay() float64 {
	return hp.decay
}

// GetCutoffFrequency returns the cutoff in cycles per channel.
func (hp *HighPassStream) GetCutoffFrequency() float64 {
	return CutOff(hp.decay)
}

// GetFrequencyResponse returns magnitude and phase of
// H(z) = (1+d)/2 * (1 - z^-1) / (1 - d*z^-1) at frequency f in cycles per
// channel.
func (hp *HighPassStream) GetFrequencyResponse(f float64) (magnitude, phase float64) {
	a0 := (1 + hp.decay) / 2
	return response(a0, -a0, hp.decay, f)
}

// response evaluates H(z) = (b0 + b1*z^-1) / (1 - d*z^-1) on the unit
// circle.
func response(b0, b1, d, f float64) (magnitude, phase float64) {
	w := 2.0 * math.Pi * f

	cosW := math.Cos(w)
	sinW := math.Sin(w)

	// Numerator: b0 + b1*e^-jw
	numReal := b0 + b1*cosW
	numImag := -b1 * sinW

	// Denominator: 1 - d*e^-jw
	denReal := 1.0 - d*cosW
	denImag := d * sinW

	denMagSq := denReal*denReal + denImag*denImag

	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	magnitude = math.Sqrt(hReal*hReal + hImag*hImag)
	phase = math.Atan2(hImag, hReal)

	return magnitude, phase
}
