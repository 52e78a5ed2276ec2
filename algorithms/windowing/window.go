// Package windowing provides the window functions used ahead of spectral
// transforms. Windows are evaluated at channel centres, x = (i+0.5)/n, so
// no coefficient is exactly zero and every window can be removed again.
package windowing

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Type selects a window function. The numeric values are the legacy type
// codes; a negated code stands for removing the window.
type Type int

const (
	None Type = iota
	Sine
	Sine2
	Sine3
	Hamming
	Blackman
)

var typeNames = map[Type]string{
	None:     "none",
	Sine:     "sine",
	Sine2:    "sine2",
	Sine3:    "sine3",
	Hamming:  "hamming",
	Blackman: "blackman",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType maps a window name to its Type. The empty string is None.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None, nil
	}
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return None, fmt.Errorf("unknown window %q", name)
}

// At returns the window value of channel i out of n.
func (t Type) At(i, n int) float64 {
	x := (float64(i) + 0.5) / float64(n)
	switch t {
	case Sine:
		return sineAt(x)
	case Sine2:
		s := sineAt(x)
		return s * s
	case Sine3:
		s := sineAt(x)
		return s * s * s
	case Hamming:
		return hammingAt(x)
	case Blackman:
		return blackmanAt(x)
	default:
		return 1
	}
}

func sineAt(x float64) float64 {
	return math.Sin(x * math.Pi)
}

// Apply multiplies in by window t and stores the result in out. With a
// nil in, out receives the window shape itself. out may be in. Returns
// the number of channels written.
func Apply(t Type, in, out []float64) int {
	if in == nil {
		return copy(out, Shape(t, len(out)))
	}
	n := len(in)
	if t == None {
		return copy(out, in)
	}
	for i, v := range in {
		out[i] = v * t.At(i, n)
	}
	return n
}

// Remove divides in by window t, undoing Apply.
func Remove(t Type, in, out []float64) int {
	n := len(in)
	if t == None {
		return copy(out, in)
	}
	for i, v := range in {
		out[i] = v / t.At(i, n)
	}
	return n
}

// ApplyCode dispatches on a legacy type code: positive codes apply the
// window, negative codes remove it and unknown codes copy.
func ApplyCode(code int, in, out []float64) int {
	if code < 0 {
		return Remove(Type(-code), in, out)
	}
	return Apply(Type(code), in, out)
}

// Shape returns the n coefficients of window t scaled to a peak of one.
func Shape(t Type, n int) []float64 {
	shape := make([]float64, n)
	for i := range shape {
		shape[i] = t.At(i, n)
	}
	if n > 0 {
		if peak := floats.Max(shape); peak > 0 {
			floats.Scale(1/peak, shape)
		}
	}
	return shape
}

// Window holds the coefficients of one window type and size so that
// repeated transforms of the same length do not re-evaluate it.
type Window struct {
	Type         Type      `json:"type"`
	Size         int       `json:"size"`
	Coefficients []float64 `json:"coefficients"`
}

// NewWindow evaluates window t for n channels.
func NewWindow(t Type, n int) (*Window, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	w := &Window{Type: t, Size: n, Coefficients: make([]float64, n)}
	for i := range w.Coefficients {
		w.Coefficients[i] = t.At(i, n)
	}
	return w, nil
}

// Apply applies the window to a signal (creates new array)
func (w *Window) Apply(signal []float64) ([]float64, error) {
	if len(signal) != w.Size {
		return nil, fmt.Errorf("%w: signal %d, window %d", errMismatchedLength, len(signal), w.Size)
	}
	windowed := make([]float64, w.Size)
	floats.MulTo(windowed, signal, w.Coefficients)
	return windowed, nil
}

// ApplyInPlace applies the window to a signal in-place
func (w *Window) ApplyInPlace(signal []float64) error {
	if len(signal) != w.Size {
		return fmt.Errorf("%w: signal %d, window %d", errMismatchedLength, len(signal), w.Size)
	}
	floats.Mul(signal, w.Coefficients)
	return nil
}

// RemoveInPlace divides the window out of a signal.
func (w *Window) RemoveInPlace(signal []float64) error {
	if len(signal) != w.Size {
		return fmt.Errorf("%w: signal %d, window %d", errMismatchedLength, len(signal), w.Size)
	}
	floats.Div(signal, w.Coefficients)
	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (w *Window) GetCoefficients() []float64 {
	coeffs := make([]float64, len(w.Coefficients))
	copy(coeffs, w.Coefficients)
	return coeffs
}

type cacheKey struct {
	t Type
	n int
}

// Generator hands out windows and keeps every generated one. It is safe
// for concurrent use.
type Generator struct {
	mu    sync.Mutex
	cache map[cacheKey]*Window
}

// NewGenerator creates an empty window cache.
func NewGenerator() *Generator {
	return &Generator{cache: make(map[cacheKey]*Window)}
}

// Get returns the cached window t of size n, generating it on first use.
// The returned window must not be modified.
func (g *Generator) Get(t Type, n int) (*Window, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := cacheKey{t, n}
	if w, ok := g.cache[key]; ok {
		return w, nil
	}
	w, err := NewWindow(t, n)
	if err != nil {
		return nil, err
	}
	g.cache[key] = w
	return w, nil
}

// Len returns the number of cached windows.
func (g *Generator) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cache)
}
