package physics

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrEmptyInput indicates a point search over an empty set.
	ErrEmptyInput = errors.New("physics: no points provided")

	// ErrUnknownPoint indicates an edge endpoint that is not registered with the engine.
	ErrUnknownPoint = errors.New("physics: point not registered with engine")

	// ErrStiffness indicates a spring stiffness outside (0, 1].
	ErrStiffness = errors.New("physics: spring stiffness out of range (0, 1]")

	// ErrDuplicateID indicates a merged point or edge whose id belongs to a
	// different instance already in the engine.
	ErrDuplicateID = errors.New("physics: id already held by another instance")
)

// LinkError wraps an error raised while linking two points.
type LinkError struct {
	P1, P2  PointID
	Wrapped error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %d-%d: %v", e.P1, e.P2, e.Wrapped)
}

func (e *LinkError) Unwrap() error {
	return e.Wrapped
}
