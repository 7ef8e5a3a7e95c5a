package physics

import "errors"

var (
	// ErrNonPositiveMass indicates a body built with mass <= 0.
	ErrNonPositiveMass = errors.New("physics: mass must be positive")

	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("physics: invalid state (NaN or Inf detected)")
)
