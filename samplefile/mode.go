package samplefile

import "strings"

// Mode selects the body encoding of a samples file.
type Mode rune

const (
	// Scatter lists the coordinates and value of every non-zero channel.
	Scatter Mode = 's'
	// Gnuplot lists every channel with its coordinates and separates rows
	// of a 2D array by a blank line.
	Gnuplot Mode = 'g'
	// Matrix writes the bare values, one row per line.
	Matrix Mode = 'm'
	// Binary stores the values as little endian float32, row-major.
	Binary Mode = 'b'
)

var modeTags = map[Mode]string{
	Scatter: "SamplesSctt",
	Gnuplot: "SamplesGnpl",
	Matrix:  "SamplesMtrx",
	Binary:  "SamplesBnry",
}

var modeNames = map[string]Mode{
	"s": Scatter, "scatter": Scatter,
	"g": Gnuplot, "gnuplot": Gnuplot,
	"m": Matrix, "matrix": Matrix,
	"b": Binary, "binary": Binary,
}

// ParseMode accepts a mode letter or name. The empty string selects
// Scatter, the default of the format.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Scatter, nil
	}
	if m, ok := modeNames[s]; ok {
		return m, nil
	}
	return 0, &UnknownModeError{Mode: s}
}

// Tag returns the header tag of the mode, or "" for an unknown mode.
func (m Mode) Tag() string {
	return modeTags[m]
}

// Valid reports whether m is one of the four storage modes.
func (m Mode) Valid() bool {
	_, ok := modeTags[m]
	return ok
}

func (m Mode) String() string {
	switch m {
	case Scatter:
		return "scatter"
	case Gnuplot:
		return "gnuplot"
	case Matrix:
		return "matrix"
	case Binary:
		return "binary"
	}
	return "unknown"
}

func modeFromTag(tag string) (Mode, bool) {
	for m, t := range modeTags {
		if t == tag {
			return m, true
		}
	}
	return 0, false
}
