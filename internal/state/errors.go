package state

import "errors"

var (
	// ErrInvalidValue indicates a NaN or infinite control value.
	ErrInvalidValue = errors.New("state: invalid value (NaN or Inf)")

	// ErrOutOfRange indicates a control value outside its slider range.
	ErrOutOfRange = errors.New("state: value out of range")
)
