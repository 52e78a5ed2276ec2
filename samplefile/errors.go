package samplefile

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFileName is returned when an empty file name is given.
	ErrNoFileName = errors.New("samplefile: no file name provided")
	// ErrBadHeader is returned for a line that is not a samples header and
	// for a body that is not preceded by one.
	ErrBadHeader = errors.New("samplefile: not a proper header")
	// ErrNilData is returned when there is no array to write or fill.
	ErrNilData = errors.New("samplefile: input array not defined")
)

// UnknownModeError reports a storage mode outside the four known ones.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("samplefile: unknown mode %q", e.Mode)
}
