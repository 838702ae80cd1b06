package proportion

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("fill all fields with non-zero numbers")

// Reasons carried by ValidationError.
const (
	ReasonMissing   = "missing"
	ReasonNotNumber = "not a number"
	ReasonNotFinite = "not a finite number"
	// Zero is rejected like a missing value, even where it would not divide.
	ReasonZero = "zero"
)

// ValidationError reports which operand stopped the calculation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
