package convolution

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is wrapped by every *PreconditionError.
	ErrPrecondition = errors.New("rule precondition violated")
	// ErrEmpty is returned by n-ary forms given no operand.
	ErrEmpty = errors.New("empty operand list")
	// ErrMixedFamilies is returned when an n-ary form receives operands of
	// different families.
	ErrMixedFamilies = errors.New("operands of mixed families")
)

// PreconditionError reports an operand whose fixed parameter differs from
// the reference operand.
type PreconditionError struct {
	Rule  string
	Param string
	// Index is the position of the offending operand; the reference is 0.
	Index int
	Want  float64
	Got   float64
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: operand %d has %s = %v, want %v", e.Rule, e.Index, e.Param, e.Got, e.Want)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// Precondition marks the error for dispatch outcome classification.
func (e *PreconditionError) Precondition() bool { return true }

func requireEqual(rule, param string, index int, want, got float64) error {
	if got != want {
		return &PreconditionError{Rule: rule, Param: param, Index: index, Want: want, Got: got}
	}
	return nil
}
