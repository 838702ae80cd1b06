// Package proportion implements the rule of three: given A, B and C it finds
// X under direct or inverse proportionality, and explains the steps.
package proportion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Formulas as displayed and stored alongside each calculation.
const (
	DirectFormula  = "X = (C × B) ÷ A"
	InverseFormula = "X = (A × B) ÷ C"
)

// Formula returns the symbolic formula for m.
func Formula(m Mode) string {
	if m == Inverse {
		return InverseFormula
	}
	return DirectFormula
}

// ParseOperand converts a raw input field into a number.
func ParseOperand(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, ReasonMissing)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, invalid(field, ReasonNotFinite)
		}
		return 0, invalid(field, ReasonNotNumber)
	}

	return v, nil
}

// ParseOperands parses the three input fields in order and validates them.
func ParseOperands(rawA, rawB, rawC string) (a, b, c float64, err error) {
	if a, err = ParseOperand("a", rawA); err != nil {
		return 0, 0, 0, err
	}
	if b, err = ParseOperand("b", rawB); err != nil {
		return 0, 0, 0, err
	}
	if c, err = ParseOperand("c", rawC); err != nil {
		return 0, 0, 0, err
	}
	if err = Validate(a, b, c); err != nil {
		return 0, 0, 0, err
	}
	return a, b, c, nil
}

// Validate rejects non-finite and zero operands.
func Validate(a, b, c float64) error {
	for _, op := range []struct {
		field string
		v     float64
	}{{"a", a}, {"b", b}, {"c", c}} {
		switch {
		case math.IsNaN(op.v) || math.IsInf(op.v, 0):
			return invalid(op.field, ReasonNotFinite)
		case op.v == 0:
			return invalid(op.field, ReasonZero)
		}
	}
	return nil
}

// Compute returns the unrounded X for the given mode. A result that does
// not fit a float64 is a ValidationError on field "x".
func Compute(m Mode, a, b, c float64) (float64, error) {
	if err := Validate(a, b, c); err != nil {
		return 0, err
	}

	var x float64
	switch m {
	case Direct:
		x = (c * b) / a
	case Inverse:
		x = (a * b) / c
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}

	// Finite operands can still overflow the product.
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, invalid("x", ReasonNotFinite)
	}
	return x, nil
}
