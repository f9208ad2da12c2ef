package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidArchitecture = errors.New("invalid network architecture")
	ErrShapeMismatch       = errors.New("shape mismatch")
)

// ArchitectureError reports why an architecture cannot produce a Network.
type ArchitectureError struct {
	Architecture []int
	Reason       string
}

// Error implements the error interface.
func (e *ArchitectureError) Error() string {
	return fmt.Sprintf("%s %v: %s", ErrInvalidArchitecture, e.Architecture, e.Reason)
}

// Is reports whether target is ErrInvalidArchitecture.
func (e *ArchitectureError) Is(target error) bool {
	return target == ErrInvalidArchitecture
}

// ShapeError reports a vector whose length does not match a layer size.
type ShapeError struct {
	Layer    string // "input" or "output"
	Expected int
	Got      int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s layer has %d neurons, got %d values",
		ErrShapeMismatch, e.Layer, e.Expected, e.Got)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}
