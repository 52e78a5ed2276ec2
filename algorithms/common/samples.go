package common

import (
	"gonum.org/v1/gonum/floats"
)

// NewSamples allocates a zeroed array of n samples.
func NewSamples(n int) []float64 {
	return make([]float64, max(n, 0))
}

// Clear sets all samples to zero and returns their number.
func Clear(in []float64) int {
	clear(in)
	return len(in)
}

// Copy copies in to out and returns the number of samples copied.
// Copying an array onto itself is a no-op.
func Copy(in, out []float64) int {
	n := min(len(in), len(out))
	if n > 0 && &in[0] == &out[0] {
		return n
	}
	return copy(out, in[:n])
}

// MultiplyAdd stores m*in+offset into out and returns the number of
// samples written. in and out may be the same array.
func MultiplyAdd(in, out []float64, m, offset float64) int {
	n := min(len(in), len(out))
	floats.ScaleTo(out[:n], m, in[:n])
	if offset != 0 {
		floats.AddConst(offset, out[:n])
	}
	return n
}

// MultiplyAdd2D is MultiplyAdd over the overlapping area of two grids.
func MultiplyAdd2D(in, out *Grid, m, offset float64) int {
	ny := min(in.Rows, out.Rows)
	nx := min(in.Cols, out.Cols)
	for j := 0; j < ny; j++ {
		MultiplyAdd(in.Row(j)[:nx], out.Row(j)[:nx], m, offset)
	}
	return nx * ny
}

// AddTwo stores m1*in1+m2*in2 element by element into out.
func AddTwo(in1, in2, out []float64, m1, m2 float64) int {
	n := min(len(in1), len(in2), len(out))
	for i := 0; i < n; i++ {
		out[i] = m1*in1[i] + m2*in2[i]
	}
	return n
}

// AddTwo2D is AddTwo for grids.
func AddTwo2D(in1, in2, out *Grid, m1, m2 float64) int {
	ny := min(in1.Rows, in2.Rows, out.Rows)
	nx := min(in1.Cols, in2.Cols, out.Cols)
	for j := 0; j < ny; j++ {
		AddTwo(in1.Row(j)[:nx], in2.Row(j)[:nx], out.Row(j)[:nx], m1, m2)
	}
	return nx * ny
}

// Compress stores the sum of every c consecutive samples of in into out
// and returns the number of values written, len(in)/c. out may alias in.
func Compress(in, out []float64, c int) int {
	if c < 1 {
		return 0
	}
	newn := min(len(in)/c, len(out))
	for i := 0; i < newn; i++ {
		out[i] = floats.Sum(in[i*c : (i+1)*c])
	}
	return newn
}

// Shift moves the samples of in by shift positions into out. Positive
// shifts move towards higher indices. Vacated samples are set to zero.
// in and out may be the same array.
func Shift(in, out []float64, shift int) int {
	n := min(len(in), len(out))
	switch {
	case shift <= 0:
		s := -shift
		for i := s; i < n; i++ {
			out[i-s] = in[i]
		}
		for i := max(n-s, 0); i < n; i++ {
			out[i] = 0
		}
	default:
		for i := n - 1 - shift; i >= 0; i-- {
			out[i+shift] = in[i]
		}
		for i := 0; i < shift && i < n; i++ {
			out[i] = 0
		}
	}
	return n
}

// CompressRangedShorts converts raw ADC words into samples. Each word is
// limited to [lo, hi], c words are summed into one output value, and the
// result is scaled by gain and shifted by offset. It returns len(in)/c.
func CompressRangedShorts(in []uint16, out []float64, lo, hi, c int, gain, offset float64) int {
	if c < 1 {
		return 0
	}
	newn := min(len(in)/c, len(out))
	for i := 0; i < newn; i++ {
		sum := 0.0
		for _, w := range in[i*c : (i+1)*c] {
			v := float64(w)
			if v >= float64(hi) {
				v = float64(hi)
			} else if v <= float64(lo) {
				v = float64(lo)
			}
			sum += v
		}
		out[i] = sum*gain + offset
	}
	return newn
}

// FromFloat32 widens single precision values into out.
func FromFloat32(in []float32, out []float64) int {
	n := min(len(in), len(out))
	for i := 0; i < n; i++ {
		out[i] = float64(in[i])
	}
	return n
}
