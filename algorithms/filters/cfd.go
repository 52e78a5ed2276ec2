package filters

// Constant fraction discrimination of a differentiated and smoothed pulse.
// The shaped signal is c(i) = in[i-d] - f*in[i], a delayed copy of the
// input overlaid with the input scaled by -f. Its zero crossing ahead of
// the absolute maximum is independent of the pulse amplitude and sits
// d/(1-f) channels behind the pulse start (H. Spieler, Semiconductor
// Detector Systems). Choose d < (1-f)*rise time.

func cfdValue(in []float64, d int, f float64, i int) float64 {
	return in[i-d] - f*in[i]
}

// cfdPolarity returns the channel of the absolute maximum of the shaped
// signal and its sign. Ties resolve to the latest channel.
func cfdPolarity(in []float64, d int, f float64) (peak int, sig float64) {
	n := len(in)
	peak, sig = n-1, 1
	mval := 0.0
	for i := n - 1; i >= d; i-- {
		c := cfdValue(in, d, f, i)
		if c > mval {
			mval, peak = c, i
		} else if c < -mval {
			mval, peak = -c, i
		}
	}
	if cfdValue(in, d, f, peak) < 0 {
		sig = -1
	}
	return peak, sig
}

// CFD returns the fractional pulse start time found by constant fraction
// discrimination with delay d and fraction f. Positive and negative pulses
// are handled alike.
//
// A stop >= 0 bounds the search: the crossing has to lie left of stop, or
// just right of it when stop falls before the cross over. A negative stop
// searches from the maximum. ok is false when no crossing exists.
func CFD(in []float64, d int, f float64, stop int) (float64, bool) {
	n := len(in)
	if d < 0 || d >= n || f >= 1 {
		return 0, false
	}
	peak, sig := cfdPolarity(in, d, f)

	if stop >= 0 {
		s := stop + d
		if s < n {
			for s < n-1 && sig*cfdValue(in, d, f, s) < 0 {
				s++
			}
			if s < peak {
				peak = s
			}
		}
	}

	i := peak
	for ; i >= d; i-- {
		if sig*cfdValue(in, d, f, i) < 0 {
			break
		}
	}
	if i < d || i+1 >= n {
		return 0, false
	}
	c0 := cfdValue(in, d, f, i)
	den := cfdValue(in, d, f, i+1) - c0
	if den == 0 {
		return 0, false
	}
	return float64(i) - c0/den - float64(d)/(1-f), true
}

// CFDShaper stores the shaped signal, oriented so that the pulse is
// positive, into out and shifts it left by int(d/(1-f)) channels so that
// its zero crossing lines up with the pulse start. Channels without a
// defined value are zero. out may be in. Returns len(in)-d, or 0 when d
// does not fit into in.
func CFDShaper(in, out []float64, d int, f float64) int {
	n := len(in)
	if d < 0 || d >= n || f >= 1 {
		return 0
	}
	_, sig := cfdPolarity(in, d, f)
	for i := n - 1; i >= d; i-- {
		out[i] = sig * cfdValue(in, d, f, i)
	}
	clear(out[:d])

	offset := min(int(float64(d)/(1-f)), n)
	copy(out, out[offset:n])
	clear(out[n-offset : n])
	return n - d
}
