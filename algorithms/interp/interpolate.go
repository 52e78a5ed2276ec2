// Package interp reads sample arrays at fractional positions and resamples
// them onto other grids.
package interp

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/deposit"
)

// tap is one weighted channel of an interpolation stencil.
type tap struct {
	idx int
	w   float64
}

// linearTaps returns the stencil Interpolate applies along one axis of
// length n. The samples are joined by straight lines between channel
// centres and held at the edge values outside [0, n-1]. Width 0 reads that
// line at pos; a positive width averages it over
// [pos-width/2, pos+width/2], so a vanishing width gives the width 0 value.
func linearTaps(n int, pos, width float64, buf []tap) []tap {
	out := buf[:0]
	if n == 0 {
		return out
	}
	width = math.Abs(width)
	if width == 0 {
		switch {
		case pos <= 0:
			return append(out, tap{0, 1})
		case pos >= float64(n-1):
			return append(out, tap{n - 1, 1})
		}
		c := int(pos)
		f := pos - float64(c)
		return append(out, tap{c, 1 - f}, tap{c + 1, f})
	}

	lo := pos - width/2
	hi := pos + width/2
	// the rounded window, not width, keeps the weights summing to one
	span := hi - lo
	if span <= 0 {
		return linearTaps(n, pos, 0, buf)
	}
	last := float64(n - 1)
	if lo < 0 {
		out = append(out, tap{0, (math.Min(hi, 0) - lo) / span})
		lo = 0
	}
	if hi > last {
		out = append(out, tap{n - 1, (hi - math.Max(lo, last)) / span})
		hi = last
	}
	for i := int(lo); i < n-1 && float64(i) < hi; i++ {
		u := math.Max(lo, float64(i)) - float64(i)
		v := math.Min(hi, float64(i+1)) - float64(i)
		if v <= u {
			continue
		}
		// integral of the segment between channels i and i+1 over [u, v]
		d, c := v-u, (u+v)/2
		out = append(out, tap{i, d * (1 - c) / span}, tap{i + 1, d * c / span})
	}
	return out
}

// boxTaps returns the stencil BoxAverage applies. Cells span
// [i-0.5, i+0.5) and hold their value as a constant; the part of the
// window outside the array takes the edge value. Width 0 falls back to
// linearTaps.
func boxTaps(n int, pos, width float64, buf []tap) []tap {
	width = math.Abs(width)
	if n == 0 || width == 0 {
		return linearTaps(n, pos, 0, buf)
	}
	out := buf[:0]
	start := pos - width/2 + 0.5
	stop := pos + width/2 + 0.5
	fn := float64(n)
	if below := math.Min(stop, 0) - start; below > 0 {
		out = append(out, tap{0, below / width})
		start = 0
	}
	if above := stop - math.Max(start, fn); above > 0 {
		out = append(out, tap{n - 1, above / width})
		stop = fn
	}
	if stop <= start {
		return out
	}

	first := int(start)
	last := int(math.Ceil(stop)) - 1
	if first == last {
		return append(out, tap{first, (stop - start) / width})
	}
	out = append(out, tap{first, (float64(first+1) - start) / width})
	for i := first + 1; i < last; i++ {
		out = append(out, tap{i, 1 / width})
	}
	return append(out, tap{last, (stop - float64(last)) / width})
}

func apply(in []float64, taps []tap) float64 {
	sum := 0.0
	for _, t := range taps {
		sum += in[t.idx] * t.w
	}
	return sum
}

// Interpolate returns the value of in at the fractional position pos.
// With width 0 the two neighbouring samples are interpolated linearly and
// positions outside the array return the edge samples; integer positions
// return the stored value exactly. A positive width returns the average
// of that linear interpolant over a window of that width centred at pos,
// with the edge values held outside the array. The result tends to the
// width 0 value as the width shrinks.
func Interpolate(in []float64, pos, width float64) float64 {
	var buf [8]tap
	return apply(in, linearTaps(len(in), pos, width, buf[:0]))
}

// BoxAverage returns the mean content of in over [pos-width/2,
// pos+width/2] when every channel i is a constant cell over
// [i-0.5, i+0.5). The window includes fractional parts of its two boundary
// cells and takes the edge values beyond the array. This is the kernel of
// the smoothing filters; width 0 is Interpolate.
func BoxAverage(in []float64, pos, width float64) float64 {
	var buf [8]tap
	return apply(in, boxTaps(len(in), pos, width, buf[:0]))
}

// Interpolate2D is Interpolate applied along both axes of g.
func Interpolate2D(g *common.Grid, ypos, xpos, ywidth, xwidth float64) float64 {
	var ybuf, xbuf [8]tap
	xt := linearTaps(g.Cols, xpos, xwidth, xbuf[:0])
	sum := 0.0
	for _, ty := range linearTaps(g.Rows, ypos, ywidth, ybuf[:0]) {
		sum += apply(g.Row(ty.idx), xt) * ty.w
	}
	return sum
}

// Resize deposits channels from..to of in onto out, stretching the range
// over the whole of out. Every source channel is spread with deposit.Fill
// over at least one output channel, so the integral and the centre of
// gravity survive. Values are added to out; clear it first for a plain
// resize. Ratios that are not integers leave aliasing ripples.
func Resize(in, out []float64, from, to float64) int {
	n := len(in)
	if to <= from || n == 0 {
		return len(out)
	}
	step := float64(len(out)) / (to - from)
	width := math.Max(step, 1)
	if to > float64(n) {
		to = float64(n)
	}
	for i := int(from); float64(i) < to; i++ {
		if i < 0 {
			continue
		}
		deposit.Fill(out, (float64(i)-from+0.5)*step-0.5, in[i], width)
	}
	return len(out)
}

// Resize2D is Resize for grids, scaling both axes independently.
func Resize2D(in, out *common.Grid, fromY, toY, fromX, toX float64) int {
	if toY <= fromY || toX <= fromX {
		return out.Len()
	}
	ystep := float64(out.Rows) / (toY - fromY)
	xstep := float64(out.Cols) / (toX - fromX)
	ywidth := math.Max(ystep, 1)
	xwidth := math.Max(xstep, 1)
	toY = math.Min(toY, float64(in.Rows))
	toX = math.Min(toX, float64(in.Cols))

	for yi := int(fromY); float64(yi) < toY; yi++ {
		if yi < 0 {
			continue
		}
		row := in.Row(yi)
		ypos := (float64(yi)-fromY+0.5)*ystep - 0.5
		for xi := int(fromX); float64(xi) < toX; xi++ {
			if xi < 0 {
				continue
			}
			deposit.Fill2D(out, ypos, (float64(xi)-fromX+0.5)*xstep-0.5, row[xi], ywidth, xwidth)
		}
	}
	return out.Len()
}

// LinearFill replaces channels start..stop (inclusive) of out with a
// straight line between in[start] and in[stop]. The range is clipped to
// the array; it reports false when fewer than two channels remain.
func LinearFill(in, out []float64, start, stop int) bool {
	start = max(start, 0)
	stop = min(stop, len(in)-1)
	if stop-start < 1 {
		return false
	}
	l, r := in[start], in[stop]
	w := float64(stop - start)
	for i := start; i <= stop; i++ {
		out[i] = l + (r-l)/w*float64(i-start)
	}
	return true
}

// LinearSlopeAndOffset fits a line through channels start..stop using the
// means of the lower and upper halves of the range. With an odd number of
// channels the middle one belongs to both halves. It reports false when
// the clipped range holds fewer than two channels.
func LinearSlopeAndOffset(in []float64, start, stop int) (slope, offset float64, ok bool) {
	start = max(start, 0)
	stop = min(stop, len(in)-1)
	if stop-start < 1 {
		return 0, 0, false
	}

	mid := (start + stop) / 2
	lo1, hi1 := start, mid
	lo2, hi2 := mid+1, stop
	if (stop-start)%2 == 0 {
		lo2--
	}

	b1 := floats.Sum(in[lo1:hi1+1]) / float64(hi1-lo1+1)
	b2 := floats.Sum(in[lo2:hi2+1]) / float64(hi2-lo2+1)
	g1 := float64(hi1+lo1) / 2
	g2 := float64(hi2+lo2) / 2

	slope = (b1 - b2) / (g1 - g2)
	offset = b1 - slope*g1
	return slope, offset, true
}
