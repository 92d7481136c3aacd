package imaging

import "errors"

var (
	// ErrEmptyInput is returned when a grid, mask or image has no pixels.
	ErrEmptyInput = errors.New("empty input")

	// ErrTooLarge is returned when a requested dimension exceeds MaxDimension.
	ErrTooLarge = errors.New("dimension too large")
)
