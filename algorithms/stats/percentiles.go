package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrBadQuantile is returned for a quantile outside [0, 1].
var ErrBadQuantile = errors.New("stats: quantile must lie in [0, 1]")

// Quantile returns the channel position below which the fraction q of
// the positive content of in lies. Channel i covers [i-0.5, i+0.5) and
// its content is spread evenly over it, so the result is continuous in q.
// Negative values count as zero.
func Quantile(in []float64, q float64) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, fmt.Errorf("%w: %g", ErrBadQuantile, q)
	}
	weights := make([]float64, len(in))
	for i, v := range in {
		weights[i] = math.Max(v, 0)
	}
	cum := floats.CumSum(make([]float64, len(in)), weights)
	if len(cum) == 0 || cum[len(cum)-1] <= 0 {
		return 0, ErrNoWeight
	}

	target := q * cum[len(cum)-1]
	below := 0.0
	for i, c := range cum {
		if weights[i] > 0 && c >= target {
			return float64(i) - 0.5 + (target-below)/weights[i], nil
		}
		below = c
	}
	// rounding in the last channel
	return float64(len(in)) - 0.5, nil
}

// Median is Quantile(in, 0.5).
func Median(in []float64) (float64, error) {
	return Quantile(in, 0.5)
}

// Quantiles evaluates several quantiles of the same array. The results
// follow the order of qs.
func Quantiles(in []float64, qs ...float64) ([]float64, error) {
	out := make([]float64, len(qs))
	for k, q := range qs {
		v, err := Quantile(in, q)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// InterquartileRange returns the distance between the 25 and 75 percent
// quantiles in channels.
func InterquartileRange(in []float64) (float64, error) {
	q, err := Quantiles(in, 0.25, 0.75)
	if err != nil {
		return 0, err
	}
	return q[1] - q[0], nil
}
