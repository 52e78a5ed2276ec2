package filters

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/interp"
	"github.com/RyanBlaney/sonido-samples/logging"
)

// Smooth applies m passes of a symmetric box average of width w to in and
// stores the result in out, which may be in.
//
// w may be fractional. The box then covers the central 2k+1 channels
// fully and the two next neighbours with the remaining weight split
// evenly, so that the kernel weights always sum to one. Channels closer
// to the edge than half the box are blended linearly from the last full
// average towards an edge value, the width w window average taken at the
// first and last channel. A width larger than the array replaces every
// value with the array mean.
func Smooth(s *common.Session, in, out []float64, m int, w float64) int {
	n := len(in)
	if n == 0 {
		return 0
	}
	if m < 1 {
		copy(out, in)
		return n
	}
	w = math.Max(w, 1)
	iw := int(math.Floor((w - 1) / 2))
	f := (w - float64(2*iw+1)) / 2

	if l := s.Logger(); l.Enabled(logging.DebugLevel) {
		l.Debug("SmoothSamples", logging.Fields{"passes": m, "width": w, "half": iw, "fraction": f})
	}

	if w > float64(n-1) {
		mean := floats.Sum(in) / float64(n)
		for i := range out[:n] {
			out[i] = mean
		}
		return n
	}

	tmp := make([]float64, n)
	src := in
	for ; m > 0; m-- {
		ledge := interp.BoxAverage(src, 0, w)
		redge := interp.BoxAverage(src, float64(n-1), w)

		var start, stop int
		if f > 0 {
			start, stop = iw+1, n-iw-2
			sum := floats.Sum(src[start-iw : start+iw+1])
			for i := start; i <= stop; i++ {
				tmp[i] = (sum + (src[i-iw-1]+src[i+iw+1])*f) / w
				if i < stop {
					sum += src[i+iw+1] - src[i-iw]
				}
			}
		} else {
			start, stop = iw, n-iw-1
			sum := floats.Sum(src[start-iw : start+iw+1])
			for i := start; i <= stop; i++ {
				tmp[i] = sum / w
				if i < stop {
					sum += src[i+iw+1] - src[i-iw]
				}
			}
		}

		for i := 0; i < start; i++ {
			tmp[i] = (ledge*float64(start-i) + tmp[start]*float64(i)) / float64(start)
		}
		for i := stop + 1; i < n; i++ {
			tmp[i] = (tmp[stop]*float64(n-i-1) + redge*float64(i-stop)) / float64(n-stop-1)
		}

		copy(out, tmp)
		src = out
	}
	return n
}

// SmoothSlow is Smooth computed directly from interp.BoxAverage at every
// channel. It is slower but treats the edges exactly like the interior,
// with the missing part of the window taking the edge value.
func SmoothSlow(in, out []float64, m int, w float64) int {
	n := len(in)
	if m < 1 {
		copy(out, in)
		return n
	}
	tmp := make([]float64, n)
	src := in
	for ; m > 0; m-- {
		for i := range tmp {
			tmp[i] = interp.BoxAverage(src, float64(i), w)
		}
		copy(out, tmp)
		src = out
	}
	return n
}

// Smooth2D smooths every row of in with width wx and then every column of
// the result with width wy, m passes each. A zero width leaves that axis
// alone. out may be in.
func Smooth2D(s *common.Session, in, out *common.Grid, m int, wy, wx float64) int {
	if wx != 0 {
		for j := 0; j < in.Rows; j++ {
			Smooth(s, in.Row(j), out.Row(j), m, wx)
		}
	} else if in != out {
		in.CopyTo(out)
	}
	if wy != 0 {
		col := make([]float64, out.Rows)
		for i := 0; i < out.Cols; i++ {
			out.Column(i, col)
			Smooth(s, col, col, m, wy)
			out.SetColumn(i, col)
		}
	}
	return out.Len()
}

// Smooth2DSlow is Smooth2D built on SmoothSlow. Both axes are always
// smoothed.
func Smooth2DSlow(in, out *common.Grid, m int, wy, wx float64) int {
	for j := 0; j < in.Rows; j++ {
		SmoothSlow(in.Row(j), out.Row(j), m, wx)
	}
	col := make([]float64, out.Rows)
	for i := 0; i < out.Cols; i++ {
		out.Column(i, col)
		SmoothSlow(col, col, m, wy)
		out.SetColumn(i, col)
	}
	return out.Len()
}
