package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrShapeMismatch indicates the input grids do not share one shape.
	ErrShapeMismatch = errors.New("sim: grid shape mismatch")

	// ErrZeroMass indicates a dynamic particle with non-positive mass.
	ErrZeroMass = errors.New("sim: dynamic particle with non-positive mass")

	// ErrInvalidState indicates NaN or Inf appeared during integration.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)

// SimError stamps an error with the step and time it occurred at.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
