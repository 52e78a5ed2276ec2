package filters

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/internal/testutil"
)

func TestSmoothKernels(t *testing.T) {
	for _, tc := range []struct {
		width float64
		want  []float64 // channels 9, 10, 11
	}{
		{3, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}},
		{2, []float64{0.25, 0.5, 0.25}},
		{2.5, []float64{0.3, 0.4, 0.3}},
		{1, []float64{0, 1, 0}},
	} {
		in := testutil.Impulse(21, 10)
		out := make([]float64, len(in))
		Smooth(nil, in, out, 1, tc.width)
		testutil.RequireSliceNearlyEqual(t, out[9:12], tc.want, 1e-12)
		testutil.RequireNear(t, "kernel sum", testutil.Sum(out), 1, 1e-12)
		if out[0] != 0 || out[20] != 0 {
			t.Fatalf("width %v leaked to the edges: %v", tc.width, out)
		}
	}
}

func TestSmoothKeepsConstant(t *testing.T) {
	in := make([]float64, 17)
	for i := range in {
		in[i] = 3
	}
	for _, w := range []float64{1, 2, 2.5, 3, 4.2, 7} {
		out := make([]float64, len(in))
		Smooth(nil, in, out, 2, w)
		for _, v := range out {
			testutil.RequireNear(t, "constant", v, 3, 1e-12)
		}
		SmoothSlow(in, out, 2, w)
		testutil.RequireSliceNearlyEqual(t, out, in, 1e-12)
	}
}

func TestSmoothWiderThanInput(t *testing.T) {
	in := []float64{1, 2, 3, 6}
	out := make([]float64, 4)
	Smooth(nil, in, out, 1, 10)
	testutil.RequireSliceNearlyEqual(t, out, []float64{3, 3, 3, 3}, 1e-12)
}

func TestSmoothMatchesSlowInInterior(t *testing.T) {
	in := testutil.DeterministicNoise(3, 1, 40)
	fast := make([]float64, len(in))
	slow := make([]float64, len(in))
	Smooth(nil, in, fast, 1, 2.5)
	SmoothSlow(in, slow, 1, 2.5)
	testutil.RequireSliceNearlyEqual(t, fast[2:38], slow[2:38], 1e-12)
}

func TestSmooth2DMatchesSlowInInterior(t *testing.T) {
	const ny, nx = 20, 24
	in := common.NewGrid(ny, nx)
	copy(in.Data, testutil.DeterministicNoise(5, 1, ny*nx))
	fast := common.NewGrid(ny, nx)
	slow := common.NewGrid(ny, nx)
	Smooth2D(nil, in, fast, 1, 2.5, 3)
	Smooth2DSlow(in, slow, 1, 2.5, 3)
	for y := 2; y < ny-2; y++ {
		testutil.RequireSliceNearlyEqual(t, fast.Row(y)[2:nx-2], slow.Row(y)[2:nx-2], 1e-12)
	}

	// Two passes on both axes keep a constant grid.
	flat := common.NewGrid(6, 7)
	for i := range flat.Data {
		flat.Data[i] = 2
	}
	Smooth2DSlow(flat, flat, 2, 1.5, 2)
	for _, v := range flat.Data {
		testutil.RequireNear(t, "constant", v, 2, 1e-12)
	}
}

func TestSmooth2D(t *testing.T) {
	in := common.NewGrid(9, 11)
	in.Set(4, 5, 9)
	out := common.NewGrid(9, 11)
	Smooth2D(nil, in, out, 1, 3, 3)
	for y := 3; y <= 5; y++ {
		for x := 4; x <= 6; x++ {
			testutil.RequireNear(t, "box", out.At(y, x), 1, 1e-12)
		}
	}
	testutil.RequireNear(t, "total", testutil.Sum(out.Data), 9, 1e-12)

	rowsOnly := common.NewGrid(9, 11)
	Smooth2D(nil, in, rowsOnly, 1, 0, 3)
	testutil.RequireNear(t, "row only", rowsOnly.At(4, 4), 3, 1e-12)
	testutil.RequireNear(t, "row only off axis", rowsOnly.At(3, 5), 0, 1e-12)

	colsOnly := common.NewGrid(9, 11)
	Smooth2D(nil, in, colsOnly, 1, 3, 0)
	testutil.RequireNear(t, "column only", colsOnly.At(3, 5), 3, 1e-12)
	testutil.RequireNear(t, "column only off axis", colsOnly.At(4, 4), 0, 1e-12)
}

func TestAverage(t *testing.T) {
	in := make([]float64, 10)
	for i := range in {
		in[i] = float64(i)
	}
	out := make([]float64, 10)
	if n := Average(in, out, 1, 3); n != 7 {
		t.Fatalf("defined channels = %d, want 7", n)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 2, 3, 4, 5, 6, 7, 0, 0, 0}, 0)

	if n := Average(in, out, 2, 3); n != 4 {
		t.Fatalf("two passes leave %d channels, want 4", n)
	}
	testutil.RequireSliceNearlyEqual(t, out[:4], []float64{2, 3, 4, 5}, 1e-12)

	if n := Average(in, out, 1, 11); n != 0 {
		t.Fatalf("window longer than input leaves %d channels", n)
	}
}

func TestCausalAverage(t *testing.T) {
	in := make([]float64, 10)
	for i := range in {
		in[i] = float64(i)
	}
	out := make([]float64, 10)
	CausalAverage(in, out, 1, 4)
	testutil.RequireSliceNearlyEqual(t, out, []float64{1.5, 1.75, 2, 2.25, 2.5, 3.5, 4.5, 5.5, 6.5, 7.5}, 0)

	CausalAverage(in, out, 1, 20)
	testutil.RequireSliceNearlyEqual(t, out, []float64{4.5, 4.5, 4.5, 4.5, 4.5, 4.5, 4.5, 4.5, 4.5, 4.5}, 1e-12)
}

func TestLRAverageImpulse(t *testing.T) {
	in := testutil.Impulse(21, 10)
	out := make([]float64, len(in))
	LRAverage(in, out, 1, 3)
	testutil.RequireSliceNearlyEqual(t, out[8:13], []float64{1.0 / 9, 2.0 / 9, 3.0 / 9, 2.0 / 9, 1.0 / 9}, 1e-12)
	testutil.RequireNear(t, "cog", testutil.Cog(out), 10, 1e-12)
	testutil.RequireNear(t, "sum", testutil.Sum(out), 1, 1e-12)

	flat := make([]float64, len(in))
	LRAverageFlatEdges(in, flat, 1, 3)
	testutil.RequireSliceNearlyEqual(t, flat, out, 1e-12)
}

func TestLRAverageFlatEdges(t *testing.T) {
	in := []float64{9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	out := make([]float64, len(in))
	LRAverageFlatEdges(in, out, 1, 2)
	for i := 0; i < 2; i++ {
		if out[i] != out[2] {
			t.Fatalf("edge channel %d = %v, want %v", i, out[i], out[2])
		}
	}
	blended := make([]float64, len(in))
	LRAverage(in, blended, 1, 2)
	testutil.RequireNear(t, "left edge mean", blended[0], 4.5, 1e-12)
}

func TestLRSum(t *testing.T) {
	in := testutil.Impulse(21, 10)
	out := make([]float64, len(in))
	LRSum(in, out, 1, 3)
	testutil.RequireSliceNearlyEqual(t, out[8:13], []float64{1, 2, 3, 2, 1}, 0)
	testutil.RequireNear(t, "sum", testutil.Sum(out), 9, 0)

	in = testutil.Impulse(41, 40)
	out = make([]float64, len(in))
	LRSum(in, out, 1, 3)
	testutil.RequireSliceNearlyEqual(t, out[38:], []float64{1, 2, 3}, 0)
}

func TestFiltersAcceptAliasedBuffers(t *testing.T) {
	in := testutil.DeterministicNoise(11, 4, 48)
	for _, tc := range []struct {
		name string
		run  func(in, out []float64)
	}{
		{"smooth", func(in, out []float64) { Smooth(nil, in, out, 2, 2.5) }},
		{"smooth slow", func(in, out []float64) { SmoothSlow(in, out, 2, 3.5) }},
		{"causal average", func(in, out []float64) { CausalAverage(in, out, 2, 4) }},
		{"average", func(in, out []float64) { Average(in, out, 2, 3) }},
		{"lr average", func(in, out []float64) { LRAverage(in, out, 2, 3) }},
		{"lr average flat", func(in, out []float64) { LRAverageFlatEdges(in, out, 2, 3) }},
		{"lr sum", func(in, out []float64) { LRSum(in, out, 2, 3) }},
		{"low pass", func(in, out []float64) { LowPass(in, out, 0.8, 0.5) }},
		{"inverse low pass", func(in, out []float64) { InverseLowPass(in, out, 0.8, 0.5) }},
		{"multi low pass", func(in, out []float64) { MultiLowPass(in, out, 3, 0.8, 0.5) }},
		{"lr low pass", func(in, out []float64) { LRLowPass(in, out, 0.7) }},
		{"high pass", func(in, out []float64) { HighPass(in, out, 0.9, 1) }},
		{"inverse high pass", func(in, out []float64) { InverseHighPass(in, out, 0.9, 1) }},
		{"multi high pass", func(in, out []float64) { MultiHighPass(in, out, 2, 0.9, 1) }},
		{"cfd shaper", func(in, out []float64) { CFDShaper(in, out, 3, 0.4) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			want := make([]float64, len(in))
			tc.run(in, want)
			got := append([]float64(nil), in...)
			tc.run(got, got)
			testutil.RequireSliceNearlyEqual(t, got, want, 0)
		})
	}
}

func TestDecayCutOff(t *testing.T) {
	for _, f := range []float64{0.001, 0.05, 0.2} {
		d := Decay(f)
		if d <= 0 || d >= 1 {
			t.Fatalf("decay %v out of (0,1)", d)
		}
		testutil.RequireNear(t, "cutoff", CutOff(d), f, 1e-12)
	}
}

func TestLowPassInverse(t *testing.T) {
	x := testutil.DeterministicNoise(21, 3, 64)
	y := make([]float64, len(x))
	LowPass(x, y, 0.85, 0.4)
	back := make([]float64, len(x))
	InverseLowPass(y, back, 0.85, 0.4)
	testutil.RequireSliceNearlyEqual(t, back, x, 1e-9)

	// chunked filtering carries the state across the boundary
	chunked := make([]float64, len(x))
	carry := LowPass(x[:23], chunked[:23], 0.85, 0.4)
	LowPass(x[23:], chunked[23:], 0.85, carry)
	testutil.RequireSliceNearlyEqual(t, chunked, y, 1e-12)

	carry = InverseLowPass(y[:40], back[:40], 0.85, 0.4)
	InverseLowPass(y[40:], back[40:], 0.85, carry)
	testutil.RequireSliceNearlyEqual(t, back, x, 1e-9)
}

func TestHighPassInverse(t *testing.T) {
	x := testutil.DeterministicNoise(8, 2, 80)
	for i := range x {
		x[i] += 5
	}
	y := make([]float64, len(x))
	HighPass(x, y, 0.95, 5)
	back := make([]float64, len(x))
	InverseHighPass(y, back, 0.95, 5)
	testutil.RequireSliceNearlyEqual(t, back, x, 1e-9)

	chunked := make([]float64, len(x))
	carry := HighPass(x[:31], chunked[:31], 0.95, 5)
	carry = HighPass(x[31:50], chunked[31:50], 0.95, carry)
	HighPass(x[50:], chunked[50:], 0.95, carry)
	testutil.RequireSliceNearlyEqual(t, chunked, y, 1e-12)

	carry = InverseHighPass(y[:17], back[:17], 0.95, 5)
	InverseHighPass(y[17:], back[17:], 0.95, carry)
	testutil.RequireSliceNearlyEqual(t, back, x, 1e-9)
}

func TestHighPassRemovesDC(t *testing.T) {
	in := make([]float64, 400)
	for i := range in {
		in[i] = 7
	}
	out := make([]float64, len(in))
	HighPass(in, out, 0.9, 0)
	if math.Abs(out[len(out)-1]) > 1e-9 {
		t.Fatalf("constant input not blocked: %v", out[len(out)-1])
	}
	HighPass(in, out, 0.9, 7)
	testutil.RequireSliceNearlyEqual(t, out, make([]float64, len(in)), 0)
}

func TestMultiPassCounts(t *testing.T) {
	in := testutil.Impulse(16, 3)
	out := make([]float64, len(in))
	if got := MultiLowPass(in, out, 3, 0.5, 0); got != 3 {
		t.Fatalf("low-pass passes = %d", got)
	}
	once := make([]float64, len(in))
	LowPass(in, once, 0.5, 0)
	LowPass(once, once, 0.5, 0)
	LowPass(once, once, 0.5, 0)
	testutil.RequireSliceNearlyEqual(t, out, once, 0)

	if got := MultiHighPass(in, out, 2, 0.5, 0); got != 2 {
		t.Fatalf("high-pass passes = %d", got)
	}
}

func TestLRLowPassKeepsConstant(t *testing.T) {
	in := []float64{4, 4, 4, 4, 4, 4}
	out := make([]float64, len(in))
	LRLowPass(in, out, 0.6)
	testutil.RequireSliceNearlyEqual(t, out, in, 1e-12)
}

func TestStreams(t *testing.T) {
	x := testutil.DeterministicNoise(2, 1, 60)
	want := make([]float64, len(x))
	HighPass(x, want, 0.9, 0)

	hp := NewHighPassStream(0.9, 0)
	got := append(hp.ProcessBuffer(x[:25]), hp.ProcessBuffer(x[25:])...)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	hp.Reset(0)
	testutil.RequireSliceNearlyEqual(t, hp.ProcessBuffer(x), want, 0)

	LowPass(x, want, 0.7, 0)
	lp := NewLowPassStream(0.7, 0)
	got = append(lp.ProcessBuffer(x[:9]), lp.ProcessBuffer(x[9:])...)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestFrequencyResponse(t *testing.T) {
	hp := NewHighPassStreamWithCutoff(0.01)
	testutil.RequireNear(t, "cutoff", hp.GetCutoffFrequency(), 0.01, 1e-12)
	if mag, _ := hp.GetFrequencyResponse(0); mag > 1e-12 {
		t.Fatalf("high-pass DC gain %v", mag)
	}
	mag, _ := hp.GetFrequencyResponse(0.5)
	testutil.RequireNear(t, "high-pass nyquist gain", mag, 1, 1e-12)

	lp := NewLowPassStreamWithCutoff(0.01)
	mag, _ = lp.GetFrequencyResponse(0)
	testutil.RequireNear(t, "low-pass DC gain", mag, 1, 1e-12)
	if hi, _ := lp.GetFrequencyResponse(0.5); hi >= mag {
		t.Fatalf("low-pass does not attenuate: %v", hi)
	}
}

// trianglePulse rises from channel 20 to a height of 12 at channel 32 and
// falls back to zero at channel 44.
func trianglePulse(sign float64) []float64 {
	in := make([]float64, 64)
	for i := 20; i <= 44; i++ {
		v := float64(i - 20)
		if i > 32 {
			v = float64(44 - i)
		}
		in[i] = sign * v
	}
	return in
}

func TestCFD(t *testing.T) {
	for _, tc := range []struct {
		name   string
		sign   float64
		stop   int
		want   float64
		wantOK bool
	}{
		{"positive", 1, -1, 20, true},
		{"negative", -1, -1, 20, true},
		{"stop after crossing", 1, 22, 20, true},
		{"stop just before crossing", 1, 20, 20, true},
		{"stop before pulse", 1, 0, 0, false},
		{"stop on baseline", 1, 10, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CFD(trianglePulse(tc.sign), 4, 0.3, tc.stop)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			testutil.RequireNear(t, "start", got, tc.want, 1e-9)
		})
	}
	if _, ok := CFD(make([]float64, 32), 4, 0.3, -1); ok {
		t.Fatal("flat input produced a crossing")
	}
}

func TestCFDShaper(t *testing.T) {
	for _, sign := range []float64{1, -1} {
		in := trianglePulse(sign)
		out := make([]float64, len(in))
		if n := CFDShaper(in, out, 4, 0.3); n != 60 {
			t.Fatalf("defined channels = %d", n)
		}
		// shaped crossing lies between 25 and 26, shifted left by 5
		testutil.RequireNear(t, "before crossing", out[20], -0.5, 1e-12)
		testutil.RequireNear(t, "after crossing", out[21], 0.2, 1e-12)
		testutil.RequireSliceNearlyEqual(t, out[59:], make([]float64, 5), 0)
	}
}
