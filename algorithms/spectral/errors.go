package spectral

import "errors"

var (
	// ErrIllConditioned reports a response whose spectrum has (nearly)
	// vanishing bins, so that it cannot be deconvolved.
	ErrIllConditioned = errors.New("spectral: response spectrum has vanishing bins")
	// ErrBadOrder reports a transform order outside 1..30.
	ErrBadOrder = errors.New("spectral: transform order out of range")
	// ErrShortInput reports an input shorter than the transform needs.
	ErrShortInput = errors.New("spectral: input shorter than transform")
)
