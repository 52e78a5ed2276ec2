package filters

import (
	"gonum.org/v1/gonum/floats"
)

// CausalAverage applies m passes of a trailing running average of w
// channels: each output is the mean of the current and the w-1 previous
// inputs, so no output depends on later channels. The first w channels,
// which lack a full history, are blended linearly from the mean of the
// first w inputs to the first full average. out may be in. Returns 0 for
// w < 1, otherwise len(in).
func CausalAverage(in, out []float64, m, w int) int {
	n := len(in)
	if w < 1 {
		return 0
	}
	if w >= n {
		return fillMean(in, out)
	}
	src := in
	for ; m > 0; m-- {
		le := floats.Sum(src[:w]) / float64(w)
		sum := floats.Sum(src[n-w:])
		for i := n - 1; i > w-1; i-- {
			v := sum / float64(w)
			sum += src[i-w] - src[i]
			out[i] = v
		}
		for i := 0; i < w; i++ {
			out[i] = (le*float64(w-i) + out[w]*float64(i)) / float64(w)
		}
		src = out
	}
	return n
}

// Average applies m passes of a forward running average: out[i] becomes
// the mean of in[i..i+w-1]. Each pass loses the last w channels, which are
// set to zero. The result is the number of channels still defined,
// len(in) - m*w. out may be in.
func Average(in, out []float64, m, w int) int {
	n := len(in)
	if w < 1 {
		return 0
	}
	src := in
	for ; m > 0; m-- {
		if n < w {
			clear(out[:len(in)])
			return 0
		}
		sum := floats.Sum(src[:w-1])
		i := 0
		for ; i < n-w; i++ {
			first := src[i]
			sum += src[i+w-1]
			out[i] = sum / float64(w)
			sum -= first
		}
		clear(out[i:len(in)])
		n -= w
		src = out
	}
	return n
}

// LRAverage applies m passes of a running average of w channels, first
// from left to right and then from right to left over the result. The
// combined kernel is symmetric, so the centre of gravity of a pulse is
// kept. The w channels at each end are blended linearly towards the mean
// of the w edge inputs. out may be in. Returns 0 for w < 1.
func LRAverage(in, out []float64, m, w int) int {
	return lrAverage(in, out, m, w, false)
}

// LRAverageFlatEdges is LRAverage with the edge channels set to the first
// and last fully averaged values instead of a blend.
func LRAverageFlatEdges(in, out []float64, m, w int) int {
	return lrAverage(in, out, m, w, true)
}

func lrAverage(in, out []float64, m, w int, flat bool) int {
	n := len(in)
	if w < 1 {
		return 0
	}
	if 2*w >= n {
		return fillMean(in, out)
	}
	fw := float64(w)
	src := in
	for ; m > 0; m-- {
		le := floats.Sum(src[:w]) / fw
		re := floats.Sum(src[n-w:]) / fw

		sum := floats.Sum(src[:w])
		i := 0
		for ; i < n-w; i++ {
			v := sum / fw
			sum += src[i+w] - src[i]
			out[i] = v
		}
		ie := i - 1

		sum = floats.Sum(out[ie-w+1 : ie+1])
		for i = ie; i > w-1; i-- {
			v := sum / fw
			sum += out[i-w] - out[i]
			out[i] = v
		}

		if flat {
			for i := 0; i < w; i++ {
				out[i] = out[w]
			}
			for i := ie + 1; i < n; i++ {
				out[i] = out[ie]
			}
		} else {
			for i := 0; i < w; i++ {
				out[i] = (le*float64(w-i) + out[w]*float64(i)) / fw
			}
			for i := 0; i < w; i++ {
				out[n-1-i] = (re*float64(w-i) + out[n-1-w]*float64(i)) / fw
			}
		}
		src = out
	}
	return n
}

// LRSum is LRAverage with running sums instead of means. Channels outside
// the array count as zero, so a pulse near an edge loses the part of the
// kernel that falls outside. out may be in. Returns 0 for w < 1.
func LRSum(in, out []float64, m, w int) int {
	n := len(in)
	if w < 1 {
		return 0
	}
	w = min(w, n)
	src := in
	for ; m > 0; m-- {
		sum := floats.Sum(src[:w])
		i := 0
		for ; i < n-w; i++ {
			v := sum
			sum += src[i+w] - src[i]
			out[i] = v
		}
		for ; i < n; i++ {
			v := sum
			sum -= src[i]
			out[i] = v
		}

		sum = floats.Sum(out[n-w:])
		for i = n - 1; i >= w; i-- {
			v := sum
			sum += out[i-w] - out[i]
			out[i] = v
		}
		for ; i >= 0; i-- {
			v := sum
			sum -= out[i]
			out[i] = v
		}
		src = out
	}
	return n
}

func fillMean(in, out []float64) int {
	if len(in) == 0 {
		return 0
	}
	mean := floats.Sum(in) / float64(len(in))
	for i := range out[:len(in)] {
		out[i] = mean
	}
	return len(in)
}
