package interp

import (
	"testing"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/internal/testutil"
)

func TestInterpolateAtIntegersIsExact(t *testing.T) {
	data := testutil.DeterministicNoise(7, 5, 33)
	for i, want := range data {
		if got := Interpolate(data, float64(i), 0); got != want {
			t.Fatalf("Interpolate(%d) = %v, want %v", i, got, want)
		}
		if got := BoxAverage(data, float64(i), 1); got != want {
			t.Fatalf("BoxAverage(%d, width 1) = %v, want %v", i, got, want)
		}
	}
}

func TestInterpolateLinearAndClamped(t *testing.T) {
	data := []float64{0, 10, 20, 40}
	for _, tc := range []struct {
		pos, want float64
	}{
		{pos: 0.25, want: 2.5},
		{pos: 2.5, want: 30},
		{pos: -3, want: 0},
		{pos: 3, want: 40},
		{pos: 7.2, want: 40},
	} {
		testutil.RequireNear(t, "interpolate", Interpolate(data, tc.pos, 0), tc.want, 1e-12)
	}
}

func TestInterpolateWindowAverage(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	// A straight line averages to its value at the window centre.
	testutil.RequireNear(t, "line", Interpolate(data, 1.5, 2.5), 2.5, 1e-12)

	// [-1.5, 1.5]: 1.5 of the held edge value 1, then the line up to 2.5.
	got := Interpolate(data, 0, 3)
	testutil.RequireNear(t, "left edge", got, (1.5+2.625)/3, 1e-12)

	// [4, 6]: the line from 5 to 6, then the held edge value 6.
	got = Interpolate(data, 5, 2)
	testutil.RequireNear(t, "right edge", got, (5.5+6)/2, 1e-12)

	testutil.RequireNear(t, "far outside", Interpolate(data, 40, 2), 6, 1e-12)
	testutil.RequireNear(t, "far below", Interpolate(data, -40, 2), 1, 1e-12)
	testutil.RequireNear(t, "constant", Interpolate([]float64{3, 3, 3, 3}, 1.37, 1.9), 3, 1e-12)

	// A triangle between channels 1 and 3 has area 4 under its peak of 4.
	testutil.RequireNear(t, "triangle", Interpolate([]float64{0, 0, 4, 0}, 2, 2), 2, 1e-12)
	testutil.RequireNear(t, "single sample", Interpolate([]float64{7}, 0.3, 5), 7, 1e-12)
}

func TestInterpolateNarrowWindowTendsToLinear(t *testing.T) {
	ramp := []float64{0, 1, 2, 3}
	testutil.RequireNear(t, "ramp", Interpolate(ramp, 1.3, 1e-6), Interpolate(ramp, 1.3, 0), 1e-9)

	square := []float64{0, 1, 4, 9}
	for _, pos := range []float64{0.2, 1.3, 2.75} {
		linear := Interpolate(square, pos, 0)
		for _, w := range []float64{1e-3, 1e-6, 1e-9} {
			testutil.RequireNear(t, "inside a segment", Interpolate(square, pos, w), linear, 1e-9)
		}
	}
	// Across a channel the kink costs at most slope difference times width.
	testutil.RequireNear(t, "at a channel", Interpolate(square, 2, 1e-6), 4, 1e-5)

	g := common.NewGrid(3, 4)
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			g.Set(j, i, float64(10*j*j+i*i))
		}
	}
	bilinear := Interpolate2D(g, 1.3, 2.6, 0, 0)
	testutil.RequireNear(t, "grid", Interpolate2D(g, 1.3, 2.6, 1e-6, 1e-6), bilinear, 1e-9)
	testutil.RequireNear(t, "grid, one axis", Interpolate2D(g, 1.3, 2.6, 0, 1e-6), bilinear, 1e-9)
}

func TestBoxAverage(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	// Channel i spans [i-0.5, i+0.5), so the window [0.25, 2.75] takes a
	// quarter of channels 0 and 3.
	got := BoxAverage(data, 1.5, 2.5)
	testutil.RequireNear(t, "window", got, (0.25*1+2+3+0.25*4)/2.5, 1e-12)

	// Beyond the left edge the first value is repeated.
	got = BoxAverage(data, 0, 3)
	testutil.RequireNear(t, "left edge", got, (2*1.0+2)/3, 1e-12)

	got = BoxAverage(data, 5, 2)
	testutil.RequireNear(t, "right edge", got, (0.5*5+1*6+0.5*6)/2, 1e-12)

	testutil.RequireNear(t, "far outside", BoxAverage(data, 40, 2), 6, 1e-12)
	testutil.RequireNear(t, "width 0", BoxAverage(data, 2.25, 0), 3.25, 1e-12)
}

func TestInterpolate2D(t *testing.T) {
	g := common.NewGrid(3, 4)
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			g.Set(j, i, float64(10*j+i))
		}
	}
	if got := Interpolate2D(g, 2, 1, 0, 0); got != 21 {
		t.Fatalf("grid point = %v, want 21", got)
	}
	// The grid is linear, so bilinear and symmetric window averages
	// reproduce the plane inside the array.
	testutil.RequireNear(t, "bilinear", Interpolate2D(g, 0.5, 1.25, 0, 0), 6.25, 1e-12)
	testutil.RequireNear(t, "window", Interpolate2D(g, 1, 1.5, 1, 2), 11.5, 1e-12)
}

func TestResizeKeepsIntegralAndCog(t *testing.T) {
	in := testutil.Gaussian(32, 13.3, 1.5, 4)
	for _, size := range []int{8, 16, 64, 96} {
		out := make([]float64, size)
		Resize(in, out, 0, 32)
		testutil.RequireNear(t, "integral", testutil.Sum(out), testutil.Sum(in), 1e-9)

		ratio := float64(size) / 32
		wantCog := (testutil.Cog(in)+0.5)*ratio - 0.5
		testutil.RequireNear(t, "cog", testutil.Cog(out), wantCog, 1e-9)
	}
}

func TestResizeSubRange(t *testing.T) {
	in := []float64{9, 1, 2, 3, 4, 9}
	out := make([]float64, 8)
	Resize(in, out, 1, 5)
	testutil.RequireSliceNearlyEqual(t, out, []float64{0.5, 0.5, 1, 1, 1.5, 1.5, 2, 2}, 1e-12)
}

func TestResize2D(t *testing.T) {
	in := common.NewGrid(2, 3)
	for k := range in.Data {
		in.Data[k] = float64(k + 1)
	}
	out := common.NewGrid(4, 6)
	Resize2D(in, out, 0, 2, 0, 3)
	testutil.RequireNear(t, "integral", testutil.Sum(out.Data), testutil.Sum(in.Data), 1e-9)
	for j := 0; j < 4; j++ {
		for i := 0; i < 6; i++ {
			testutil.RequireNear(t, "cell", out.At(j, i), in.At(j/2, i/2)/4, 1e-12)
		}
	}
}

func TestLinearFill(t *testing.T) {
	in := []float64{5, 0, 0, 0, 9, 1}
	out := append([]float64(nil), in...)
	if !LinearFill(in, out, 0, 4) {
		t.Fatal("LinearFill rejected a valid range")
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{5, 6, 7, 8, 9, 1}, 1e-12)

	if LinearFill(in, out, 5, 9) {
		t.Fatal("single channel range accepted")
	}
	// In place.
	LinearFill(in, in, 3, 5)
	testutil.RequireSliceNearlyEqual(t, in[3:], []float64{0, 0.5, 1}, 1e-12)
}

func TestLinearSlopeAndOffset(t *testing.T) {
	line := make([]float64, 21)
	for i := range line {
		line[i] = 3 + 2*float64(i)
	}
	for _, r := range [][2]int{{0, 20}, {4, 11}, {5, 6}, {-3, 30}} {
		slope, offset, ok := LinearSlopeAndOffset(line, r[0], r[1])
		if !ok {
			t.Fatalf("range %v rejected", r)
		}
		testutil.RequireNear(t, "slope", slope, 2, 1e-12)
		testutil.RequireNear(t, "offset", offset, 3, 1e-12)
	}
	if _, _, ok := LinearSlopeAndOffset(line, 7, 7); ok {
		t.Fatal("single channel range accepted")
	}
}
