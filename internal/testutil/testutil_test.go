package testutil

import "testing"

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestImpulseOutOfBounds(t *testing.T) {
	for i, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestStepAndRamp(t *testing.T) {
	s := Step(10, 2, 4, 8)
	RequireSliceNearlyEqual(t, s, []float64{0, 0, 2, 4, 6, 8, 8, 8, 8, 8}, 0)
	r := Ramp(10, 2, 4, 8)
	RequireNear(t, "ramp integral", Sum(r), 8, 1e-12)
	RequireNear(t, "ramp cog", Cog(r), 3.5, 1e-12)
}

func TestGaussianPeak(t *testing.T) {
	g := Gaussian(21, 10, 2, 3)
	RequireNear(t, "peak", g[10], 3, 0)
	RequireNear(t, "symmetry", g[8], g[12], 1e-15)
}
