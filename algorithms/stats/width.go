package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/logging"
)

// FWXMResult describes a peak measured at a fraction of its height.
type FWXMResult struct {
	Peak  int     `json:"peak"`  // Channel of the maximum
	Max   float64 `json:"max"`   // Value at the maximum
	Left  float64 `json:"left"`  // Interpolated left crossing
	Right float64 `json:"right"` // Interpolated right crossing
}

// Width returns Right - Left.
func (r FWXMResult) Width() float64 {
	return r.Right - r.Left
}

// crossings finds where in drops below level on either side of peak,
// interpolating linearly between the neighbouring channels. A side that
// never drops below level reports the array edge (0 or n).
func crossings(in []float64, peak int, level float64) (left, right float64) {
	n := len(in)
	right = float64(n)
	for i := peak; i < n; i++ {
		if in[i] < level {
			up, down := in[i-1], in[i]
			right = float64(i-1) + (level-up)/(down-up)
			break
		}
	}
	left = 0
	for i := peak; i >= 0; i-- {
		if in[i] < level {
			up, down := in[i+1], in[i]
			left = float64(i+1) - (level-up)/(down-up)
			break
		}
	}
	return left, right
}

// FWHM returns the full width at half maximum of the peak at channel
// peak. Peaks on the first or last channel and peaks with a negative
// value give 0. A width that comes out negative or NaN is logged and
// reported as 0.
func FWHM(s *common.Session, in []float64, peak int) float64 {
	if peak < 1 || peak > len(in)-2 {
		return 0
	}
	half := in[peak] / 2
	if half < 0 {
		return 0
	}
	left, right := crossings(in, peak, half)
	if width := right - left; !(width >= 0) {
		s.Log("FwhmOfSamples").Error(nil, "peak rejected: negative width", logging.Fields{
			"peak": peak, "left": left, "right": right,
		})
		return 0
	}
	return right - left
}

// FWXM locates the maximum of in[start..stop] and measures its full width
// at fraction of the maximum value. It reports false when the maximum lies
// on the first or last channel, the level is negative or the crossings
// are inconsistent.
func FWXM(s *common.Session, in []float64, start, stop int, fraction float64) (FWXMResult, bool) {
	peak := FindMaximum(in, start, stop)
	if peak < 1 || peak > len(in)-2 {
		return FWXMResult{}, false
	}
	level := in[peak] * fraction
	if level < 0 {
		return FWXMResult{}, false
	}
	left, right := crossings(in, peak, level)
	if right-left < 0 {
		s.Log("FwxmOfSamples").Error(nil, "peak rejected: negative width", logging.Fields{
			"peak": peak, "left": left, "right": right,
		})
		return FWXMResult{}, false
	}
	return FWXMResult{Peak: peak, Max: in[peak], Left: left, Right: right}, true
}

// Range is an interval of fractional channel positions.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// orientation returns the absolute integral of in and the sign that
// turns a negative pulse into a positive one.
func orientation(in []float64) (total, sig float64) {
	total = floats.Sum(in)
	if total < 0 {
		return -total, -1
	}
	return total, 1
}

// crossing interpolates the position where the running integral reaches
// target inside channel kk, given the integral acc accumulated up to the
// end of channel kk-1.
func crossing(kk int, acc, target, step float64) float64 {
	if step == 0 {
		return float64(kk)
	}
	return float64(kk) - 1 + (target-acc)/step
}

// IntegralRange finds the positions where the running integral of in
// reaches the fractions low and high of the total integral. The array is
// treated as the derivative of a rising (or, for a negative total, a
// falling) step, so the result is the rise time between the two levels.
// The high position is found first walking forward, then the low one
// walking back from there. For a negative pulse the two positions swap
// and the returned width is negative.
func IntegralRange(in []float64, low, high float64) (Range, float64) {
	n := len(in)
	if n == 0 {
		return Range{}, 0
	}
	total, sig := orientation(in)
	low = math.Abs(low) * total
	high = math.Abs(high) * total

	acc := 0.0
	kk := 0
	for ; kk < n; kk++ {
		acc += sig * in[kk]
		if acc > high {
			break
		}
	}
	kk = min(kk, n-1)
	acc -= sig * in[kk]
	hl := crossing(kk, acc, high, sig*in[kk])

	acc += sig * in[kk]
	for ; kk >= 0; kk-- {
		acc -= sig * in[kk]
		if acc < low {
			break
		}
	}
	kk = max(kk, 0)
	ll := crossing(kk, acc, low, sig*in[kk])

	if sig < 0 {
		ll, hl = hl, ll
	}
	return Range{Low: ll, High: hl}, hl - ll
}

// LowerBound returns the position where the running integral of in
// reaches the fraction low of the total, searching backwards from the
// channel after limit. Negative pulses are handled by their absolute
// integral. An array integrating to zero gives 0.
func LowerBound(in []float64, low, limit float64) float64 {
	n := len(in)
	imax := min(max(int(limit+1), 1), n)
	total, sig := orientation(in)
	if total == 0 {
		return 0
	}
	low = math.Abs(low) * total

	acc := total
	kk := n - 1
	for ; kk > imax; kk-- {
		acc -= sig * in[kk]
	}
	for ; kk >= 0; kk-- {
		acc -= sig * in[kk]
		if acc < low {
			break
		}
	}
	kk = max(kk, 0)
	return crossing(kk, acc, low, sig*in[kk])
}

// UpperBound returns the position where the running integral of in
// reaches the fraction high of the total, searching forward from channel
// limit. Negative pulses are handled by their absolute integral. An array
// integrating to zero gives len(in).
func UpperBound(in []float64, high, limit float64) float64 {
	n := len(in)
	imin := min(max(int(limit), 0), n-1)
	total, sig := orientation(in)
	if total == 0 {
		return float64(n)
	}
	high = math.Abs(high) * total

	acc := 0.0
	kk := 0
	for ; kk < imin; kk++ {
		acc += sig * in[kk]
	}
	for ; kk < n; kk++ {
		acc += sig * in[kk]
		if acc > high {
			break
		}
	}
	kk = min(kk, n-1)
	acc -= sig * in[kk]
	return crossing(kk, acc, high, sig*in[kk])
}
