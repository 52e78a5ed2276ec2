package stats

import (
	"gonum.org/v1/gonum/floats"
)

// searchRange clips start to a valid channel and stop to the array end.
func searchRange(n, start, stop int) (int, int) {
	start = min(max(start, 0), n-1)
	stop = min(stop, n-1)
	return start, max(stop, start)
}

// FindMaximum returns the channel of the largest value in in[start..stop].
// When the maximum is a plateau of equal values the middle of the plateau
// is returned, rounding down.
func FindMaximum(in []float64, start, stop int) int {
	if len(in) == 0 {
		return 0
	}
	start, stop = searchRange(len(in), start, stop)
	imax := start + floats.MaxIdx(in[start:stop+1])
	end := imax
	for end+1 <= stop && in[end+1] == in[imax] {
		end++
	}
	return (imax + end) / 2
}

// FindMinimum returns the first channel holding the smallest value in
// in[start..stop].
func FindMinimum(in []float64, start, stop int) int {
	if len(in) == 0 {
		return 0
	}
	start, stop = searchRange(len(in), start, stop)
	return start + floats.MinIdx(in[start:stop+1])
}

// localRange limits start and stop to channels that have two neighbours.
func localRange(n, start, stop int) (int, int) {
	hi := n - 2
	start = min(max(start, 1), hi)
	stop = min(max(stop, 1), hi)
	return start, stop
}

// FindLocalMaximum returns the first channel between start and stop that
// is strictly larger than both neighbours. The search runs backwards when
// stop < start. If no such channel exists the result is one channel past
// stop in the search direction.
func FindLocalMaximum(in []float64, start, stop int) int {
	start, stop = localRange(len(in), start, stop)
	if start == stop {
		return stop
	}
	peak := func(i int) bool { return in[i-1] < in[i] && in[i+1] < in[i] }
	if stop > start {
		i := start
		for ; i <= stop; i++ {
			if peak(i) {
				break
			}
		}
		return i
	}
	i := start
	for ; i >= stop; i-- {
		if peak(i) {
			break
		}
	}
	return i
}

// FindLocalMinimum returns the first channel between start and stop that
// is a local minimum. A flat bottom is entered on its first channel in
// the search direction. When nothing is found the result is one channel
// past stop in the search direction.
func FindLocalMinimum(in []float64, start, stop int) int {
	start, stop = localRange(len(in), start, stop)
	if start == stop {
		return stop
	}
	if stop > start {
		i := start
		for ; i <= stop; i++ {
			if in[i-1] >= in[i] && in[i+1] > in[i] {
				break
			}
		}
		return i
	}
	i := start
	for ; i >= stop; i-- {
		if in[i-1] > in[i] && in[i+1] >= in[i] {
			break
		}
	}
	return i
}
