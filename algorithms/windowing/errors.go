package windowing

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("signal and window must have same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}
