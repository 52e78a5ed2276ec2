package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
)

// ErrNoWeight is returned when a range carries no positive weight, so
// that neither a centre of gravity nor a width can be defined.
var ErrNoWeight = errors.New("stats: range has no positive weight")

// MomentResult holds the first three moments of a distribution stored in
// a sample array: its integral, the centre of gravity in channels and the
// RMS width around that centre.
type MomentResult struct {
	Sum float64 `json:"sum"` // Integral of the positive part
	Cog float64 `json:"cog"` // Centre of gravity (channel units)
	RMS float64 `json:"rms"` // Standard deviation around Cog
}

// clampRange limits an inclusive channel range to an array of length n.
func clampRange(n, start, stop int) (int, int) {
	return max(start, 0), min(stop, n-1)
}

// Integrate returns the sum of in[start..stop], both ends included. The
// range is clipped to the array.
func Integrate(in []float64, start, stop int) float64 {
	start, stop = clampRange(len(in), start, stop)
	if stop < start {
		return 0
	}
	return floats.Sum(in[start : stop+1])
}

// CenterOfGravity returns the value weighted mean channel of
// in[start..stop]. The values are expected to be non-negative; this is
// not checked. A range summing to zero returns 0.
func CenterOfGravity(in []float64, start, stop int) float64 {
	start, stop = clampRange(len(in), start, stop)
	isum, sum := 0.0, 0.0
	for i := start; i <= stop; i++ {
		isum += in[i] * float64(i)
		sum += in[i]
	}
	if sum == 0 {
		return 0
	}
	return isum / sum
}

// PositiveCog is CenterOfGravity after subtracting the minimum of the
// range from every value, which makes all weights non-negative.
func PositiveCog(in []float64, start, stop int) float64 {
	if len(in) == 0 {
		return 0
	}
	start = min(max(start, 0), len(in)-1)
	stop = min(stop, len(in)-1)
	if stop < start {
		return 0
	}
	lo := floats.Min(in[start : stop+1])
	isum, sum := 0.0, 0.0
	for i := start; i <= stop; i++ {
		v := in[i] - lo
		isum += v * float64(i)
		sum += v
	}
	if sum == 0 {
		return 0
	}
	return isum / sum
}

// Moments computes sum, centre of gravity and RMS width of
// in[start..stop]. Negative values count as zero. When the range has no
// positive weight ErrNoWeight is returned with a zero result.
func Moments(in []float64, start, stop int) (MomentResult, error) {
	start, stop = clampRange(len(in), start, stop)
	if stop < start {
		return MomentResult{}, ErrNoWeight
	}
	pos := make([]float64, 0, stop-start+1)
	weights := make([]float64, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		pos = append(pos, float64(i))
		weights = append(weights, math.Max(in[i], 0))
	}
	return weighted(pos, weights)
}

// SteadyMoments is Moments for a range with fractional limits. The two
// boundary channels contribute in proportion to how much of them lies
// inside [start, stop], so the result varies continuously with the
// limits. Boundary values are used as they are; interior negative values
// count as zero.
func SteadyMoments(in []float64, start, stop float64) (MomentResult, error) {
	n := len(in)
	if n == 0 {
		return MomentResult{}, ErrNoWeight
	}
	last := float64(n - 1)
	start = common.Clamp(start, 0, last)
	stop = common.Clamp(stop, 0, last)
	if stop < start {
		stop = start
	}

	istart := int(start)
	istop := int(stop)
	fstart := 1 + float64(istart) - start
	fstop := stop - float64(istop)

	pos := []float64{float64(istart), float64(istop)}
	weights := []float64{fstart * in[istart], fstop * in[istop]}
	for i := istart + 1; i < istop; i++ {
		pos = append(pos, float64(i))
		weights = append(weights, math.Max(in[i], 0))
	}
	return weighted(pos, weights)
}

func weighted(pos, weights []float64) (MomentResult, error) {
	sum := floats.Sum(weights)
	if sum <= 0 {
		return MomentResult{}, ErrNoWeight
	}
	cog, variance := stat.PopMeanVariance(pos, weights)
	return MomentResult{Sum: sum, Cog: cog, RMS: math.Sqrt(math.Max(variance, 0))}, nil
}

// MeanAndRMS returns the mean and the population standard deviation of
// the values in[start..stop]. An empty clipped range collapses to the
// channel start.
func MeanAndRMS(in []float64, start, stop int) (mean, rms float64) {
	if len(in) == 0 {
		return 0, 0
	}
	start, stop = clampRange(len(in), start, stop)
	start = min(start, len(in)-1)
	stop = max(stop, start)
	mean, variance := stat.PopMeanVariance(in[start:stop+1], nil)
	return mean, math.Sqrt(math.Max(variance, 0))
}

// RunningStats accumulates mean and RMS of a stream of values one value at
// a time without keeping the values.
type RunningStats struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	RMS  float64 `json:"rms"`
}

// Add includes x and returns the updated count.
func (r *RunningStats) Add(x float64) int {
	r.N++
	if r.N == 1 {
		r.Mean, r.RMS = x, 0
		return r.N
	}
	n := float64(r.N)
	sum := r.Mean * (n - 1)
	sumSq := (r.RMS*r.RMS + r.Mean*r.Mean) * (n - 1)
	sum += x
	sumSq += x * x
	r.Mean = sum / n
	r.RMS = math.Sqrt(math.Max(sumSq/n-r.Mean*r.Mean, 0))
	return r.N
}

// Reset forgets every value added so far.
func (r *RunningStats) Reset() {
	*r = RunningStats{}
}
