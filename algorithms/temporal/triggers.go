// Package temporal finds edges in sampled pulses and converts between a
// signal and its running derivative or integral.
package temporal

// LeadingEdge scans in from start for a value below thr and from there for
// the first value at or above thr. It returns that channel, or false when
// the signal never rises through thr.
func LeadingEdge(in []float64, start int, thr float64) (int, bool) {
	i := max(start, 0)
	for ; i < len(in); i++ {
		if in[i] < thr {
			break
		}
	}
	for ; i < len(in); i++ {
		if in[i] >= thr {
			return i, true
		}
	}
	return 0, false
}

// FallingEdge scans in from start for a value above thr and from there for
// the first value at or below thr.
func FallingEdge(in []float64, start int, thr float64) (int, bool) {
	i := max(start, 0)
	for ; i < len(in); i++ {
		if in[i] > thr {
			break
		}
	}
	for ; i < len(in); i++ {
		if in[i] <= thr {
			return i, true
		}
	}
	return 0, false
}

// MaxLeadingEdge finds the leading edge through thr like LeadingEdge and
// returns the channel of the largest value while the signal stays at or
// above thr. Among equal maxima the last one wins. The pulse must drop
// below thr again before the end of the array, otherwise false is
// returned.
func MaxLeadingEdge(in []float64, start int, thr float64) (int, bool) {
	i, ok := LeadingEdge(in, start, thr)
	if !ok {
		return 0, false
	}
	peak, maxv := i, thr
	for ; i < len(in); i++ {
		if in[i] < thr {
			return peak, true
		}
		if in[i] >= maxv {
			maxv, peak = in[i], i
		}
	}
	return 0, false
}

// LegacyIndex folds a trigger result into a single channel number where 0
// stands for "not found".
func LegacyIndex(i int, ok bool) int {
	if !ok {
		return 0
	}
	return i
}
