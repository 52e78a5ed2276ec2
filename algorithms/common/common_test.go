package common

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-samples/internal/testutil"
	"github.com/RyanBlaney/sonido-samples/logging"
)

func TestCalibrationRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		n    int
		cal  Calibration
	}{
		{name: "identity", n: 10, cal: Channels(10)},
		{name: "offset", n: 16, cal: Calibration{Low: -2, High: 6}},
		{name: "reversed", n: 8, cal: Calibration{Low: 4, High: 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < tc.n; i++ {
				x := tc.cal.Value(tc.n, float64(i))
				if got := tc.cal.Index(tc.n, x); got != float64(i) {
					t.Fatalf("channel %d: value %v maps back to %v", i, x, got)
				}
			}
		})
	}
}

func TestCalibrationCentres(t *testing.T) {
	cal := Calibration{Low: 0, High: 10}
	if got := cal.Value(10, 0); got != 0.5 {
		t.Fatalf("centre of channel 0 = %v, want 0.5", got)
	}
	if got := cal.Index(10, 0); got != -0.5 {
		t.Fatalf("low edge index = %v, want -0.5", got)
	}
	if got := cal.ChannelWidth(5); got != 2 {
		t.Fatalf("channel width = %v, want 2", got)
	}
}

func TestGridIsContiguous(t *testing.T) {
	g := NewGrid(3, 4)
	if len(g.Data) != 12 || !g.Contiguous() {
		t.Fatalf("grid not contiguous: len=%d", len(g.Data))
	}
	g.Set(1, 2, 7)
	if g.Data[1*4+2] != 7 {
		t.Fatal("Set does not address row-major storage")
	}
	row := g.Row(2)
	row[3] = 5
	if g.At(2, 3) != 5 {
		t.Fatal("row is not a view into the grid")
	}
	if got := g.Clear(); got != 12 {
		t.Fatalf("Clear returned %d", got)
	}
	for _, v := range g.Data {
		if v != 0 {
			t.Fatal("Clear left non-zero cells")
		}
	}
}

func TestNegativeSizesAreEmpty(t *testing.T) {
	g := NewGrid(-2, 3)
	if g.Len() != 0 || len(g.Data) != 0 || g.Rows != 0 {
		t.Fatalf("grid %dx%d with %d cells", g.Rows, g.Cols, len(g.Data))
	}
	if g := NewGrid(4, -1); g.Len() != 0 || g.Cols != 0 {
		t.Fatalf("grid %dx%d", g.Rows, g.Cols)
	}
	if s := NewSamples(-5); len(s) != 0 {
		t.Fatalf("%d samples", len(s))
	}
}

func TestGridColumnsAndCopy(t *testing.T) {
	g := NewGrid(2, 3)
	copy(g.Data, []float64{1, 2, 3, 4, 5, 6})
	col := g.Column(1, nil)
	if col[0] != 2 || col[1] != 5 {
		t.Fatalf("column = %v", col)
	}
	g.SetColumn(0, []float64{9, 8})
	if g.At(0, 0) != 9 || g.At(1, 0) != 8 {
		t.Fatalf("SetColumn failed: %v", g.Data)
	}
	c := g.Clone()
	c.Set(0, 0, -1)
	if g.At(0, 0) != 9 {
		t.Fatal("Clone shares storage")
	}
	dst := NewGrid(1, 2)
	if n := g.CopyTo(dst); n != 2 || dst.At(0, 1) != 2 {
		t.Fatalf("CopyTo n=%d dst=%v", n, dst.Data)
	}
}

func TestRowAndColumnGridShareStorage(t *testing.T) {
	data := []float64{1, 2, 3}
	RowGrid(data).Set(0, 2, 30)
	ColumnGrid(data).Set(0, 0, 10)
	if data[0] != 10 || data[2] != 30 {
		t.Fatalf("views do not share storage: %v", data)
	}
}

func TestArithmetic(t *testing.T) {
	in := []float64{1, 2, 3, 4}
	out := make([]float64, 4)

	MultiplyAdd(in, out, 2, 1)
	assertSlice(t, "MultiplyAdd", out, []float64{3, 5, 7, 9})

	AddTwo(in, out, out, 1, -1)
	assertSlice(t, "AddTwo", out, []float64{-2, -3, -4, -5})

	n := Compress(in, out, 2)
	if n != 2 {
		t.Fatalf("Compress returned %d", n)
	}
	assertSlice(t, "Compress", out[:2], []float64{3, 7})

	aliased := []float64{1, 2, 3, 4, 5}
	if Compress(aliased, aliased, 2) != 2 {
		t.Fatal("in-place Compress count")
	}
	assertSlice(t, "Compress in place", aliased[:2], []float64{3, 7})
}

func TestShift(t *testing.T) {
	for _, tc := range []struct {
		shift int
		want  []float64
	}{
		{shift: 0, want: []float64{1, 2, 3, 4, 5}},
		{shift: 2, want: []float64{0, 0, 1, 2, 3}},
		{shift: -2, want: []float64{3, 4, 5, 0, 0}},
		{shift: 7, want: []float64{0, 0, 0, 0, 0}},
		{shift: -7, want: []float64{0, 0, 0, 0, 0}},
	} {
		in := []float64{1, 2, 3, 4, 5}
		out := make([]float64, 5)
		Shift(in, out, tc.shift)
		assertSlice(t, "Shift", out, tc.want)

		Shift(in, in, tc.shift)
		assertSlice(t, "Shift in place", in, tc.want)
	}
}

func TestCompressRangedShorts(t *testing.T) {
	in := []uint16{0, 10, 20, 30, 1000, 5}
	out := make([]float64, 3)
	n := CompressRangedShorts(in, out, 5, 100, 2, 0.5, 1)
	if n != 3 {
		t.Fatalf("n = %d", n)
	}
	// (5+10)*0.5+1, (20+30)*0.5+1, (100+5)*0.5+1
	assertSlice(t, "CompressRangedShorts", out, []float64{8.5, 26, 53.5})
}

func TestFromFloat32(t *testing.T) {
	out := make([]float64, 2)
	FromFloat32([]float32{0.5, -1.25}, out)
	assertSlice(t, "FromFloat32", out, []float64{0.5, -1.25})
}

func TestPowerHelpers(t *testing.T) {
	if NextPowerOfTwo(5) != 8 || NextPowerOfTwo(8) != 8 || Log2Ceil(5) != 3 || Log2Ceil(1) != 0 {
		t.Fatal("power of two helpers")
	}
	if !NearlyInteger(2.00000000001, 1e-7) || NearlyInteger(2.4, 1e-7) {
		t.Fatal("NearlyInteger")
	}
}

func TestSessionVerbosityOverride(t *testing.T) {
	var buf bytes.Buffer
	s := NewVerboseSession(&buf, logging.Errors)
	s.Log("Fill").Debug("quiet")
	if buf.Len() != 0 {
		t.Fatalf("debug message printed at verbosity 1: %q", buf.String())
	}
	s.WithVerbosity(logging.Trace).Log("Fill").Debug("loud")
	if !strings.Contains(buf.String(), "[DEBUG] loud fn=Fill") {
		t.Fatalf("override not applied: %q", buf.String())
	}
	buf.Reset()
	s.Log("Fill").Debug("quiet again")
	if buf.Len() != 0 {
		t.Fatal("override leaked into the original session")
	}
}

func TestNilSession(t *testing.T) {
	var s *Session
	s.Log("x").Error(nil, "ignored")
	s.SetLastMode('b')
	defer s.SetLastMode(0)
	if s.LastMode() != 'b' {
		t.Fatal("nil session forgot its mode")
	}
	live := NewSession(nil)
	if live.LastMode() != 0 {
		t.Fatal("new session inherited the process mode")
	}
	live.SetLastMode('m')
	if live.LastMode() != 'm' || s.LastMode() != 'b' {
		t.Fatal("modes not kept apart")
	}
}

func TestNilSessionSharesStdin(t *testing.T) {
	testutil.ReplaceStdin(t, []byte("line one\nline two\n"))
	var s *Session
	first, _ := s.Stdin().ReadString('\n')
	second, _ := s.Stdin().ReadString('\n')
	if first != "line one\n" || second != "line two\n" {
		t.Fatalf("stdin buffer not shared: %q %q", first, second)
	}
}

func assertSlice(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: [%d] = %v, want %v (got %v)", name, i, got[i], want[i], got)
		}
	}
}

func TestSessionStreams(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(nil).WithStreams(strings.NewReader("line one\nline two\n"), &out)
	first, _ := s.Stdin().ReadString('\n')
	second, _ := s.WithVerbosity(logging.Trace).Stdin().ReadString('\n')
	if first != "line one\n" || second != "line two\n" {
		t.Fatalf("stdin buffer not shared: %q %q", first, second)
	}
	fmt.Fprint(s.Stdout(), "x")
	if out.String() != "x" {
		t.Fatalf("stdout = %q", out.String())
	}
	var nilSession *Session
	if nilSession.Stdout() == nil || nilSession.Stdin() == nil {
		t.Fatal("nil session has no process streams")
	}
}
