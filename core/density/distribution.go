package density

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is returned by constructors when a parameter lies
	// outside the family's domain.
	ErrInvalidParameter = errors.New("invalid distribution parameter")
	// ErrUndefined is returned for moments that have no finite value.
	ErrUndefined = errors.New("moment undefined")
)

// Distribution is the numeric and structural interface shared by every
// family.
type Distribution interface {
	Family() Family
	// Params returns the parameter values in declaration order.
	Params() []float64
	PDF(x float64) float64
	CDF(x float64) float64
	Mean() (float64, error)
	StdDev() (float64, error)
	Variance() (float64, error)
	Skewness() (float64, error)
	// Hash mixes the family tag and every parameter. Equal values hash
	// equally across runs and platforms.
	Hash() uint64
	Clone() Distribution
	// EqualTol compares same-family values parameter by parameter within an
	// absolute tolerance. Integer parameters must match exactly.
	EqualTol(other Distribution, tol float64) bool
	// EqualULP is EqualTol with the distance counted in units in the last
	// place.
	EqualULP(other Distribution, ulps uint) bool
	String() string
}

// Equal reports structural identity, i.e. equal hashes.
func Equal(a, b Distribution) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Hash() == b.Hash()
}

func invalidParam(f Family, name string, v any, reason string) error {
	return fmt.Errorf("%w: %s %s %s, got %v", ErrInvalidParameter, f, name, reason, v)
}

func undefinedMoment(f Family, moment string) error {
	return fmt.Errorf("%w: %s of %s", ErrUndefined, moment, f)
}

func checkFinite(f Family, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidParam(f, name, v, "must be finite")
	}
	return nil
}

func checkPositive(f Family, name string, v float64) error {
	if err := checkFinite(f, name, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalidParam(f, name, v, "must be positive")
	}
	return nil
}

func checkNonNegative(f Family, name string, v float64) error {
	if err := checkFinite(f, name, v); err != nil {
		return err
	}
	if v < 0 {
		return invalidParam(f, name, v, "must not be negative")
	}
	return nil
}

func checkCount(f Family, name string, k int) error {
	if k < 1 {
		return invalidParam(f, name, k, "must be at least 1")
	}
	return nil
}

func stdDevOf(variance float64, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}
