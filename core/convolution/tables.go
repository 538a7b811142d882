package convolution

import (
	"fmt"
	"sync"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/dispatch"
	"github.com/kilianp07/distalg/core/mixture"
)

// Table names, also used as metric labels.
const (
	SumTableName              = "sum"
	SumOfSquaresTableName     = "sum_of_squares"
	RootSumOfSquaresTableName = "root_sum_of_squares"
)

// lift widens the result of a typed rule to density.Distribution.
func lift[L, R, O density.Distribution](fn func(L, R) (O, error)) func(L, R) (density.Distribution, error) {
	return func(a L, b R) (density.Distribution, error) {
		out, err := fn(a, b)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// NewSumTable returns a table with every pairwise sum rule.
func NewSumTable(opts ...dispatch.Option) (*dispatch.Table, error) {
	t := dispatch.New(SumTableName, opts...)
	regs := []func() error{
		func() error { return dispatch.Add(t, lift(SumStdUniform), true) },
		func() error { return dispatch.Add(t, lift(SumIrwinHallStdUniform), true) },
		func() error { return dispatch.Add(t, lift(SumIrwinHall), true) },
		func() error { return dispatch.Add(t, lift(SumNormal), true) },
		func() error { return dispatch.Add(t, lift(SumCauchy), true) },
		func() error { return dispatch.Add(t, lift(SumGamma), true) },
		func() error { return dispatch.Add(t, lift(SumExponential), true) },
		func() error { return dispatch.Add(t, lift(SumErlang), true) },
		func() error { return dispatch.Add(t, lift(SumErlangExponential), true) },
		func() error { return dispatch.Add(t, lift(SumChiSquare), true) },
		func() error { return dispatch.Add(t, lift(SumNoncentralChiSquare), true) },
		func() error { return dispatch.Add(t, lift(SumChiSquareNoncentral), true) },
		func() error { return registerMixtures(t) },
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewSumOfSquaresTable returns a table combining X and Y into X² + Y².
func NewSumOfSquaresTable(opts ...dispatch.Option) (*dispatch.Table, error) {
	t := dispatch.New(SumOfSquaresTableName, opts...)
	if err := dispatch.Add(t, SumOfSquaresNormal, true); err != nil {
		return nil, err
	}
	if err := registerMixtures(t); err != nil {
		return nil, err
	}
	return t, nil
}

// NewRootSumOfSquaresTable returns a table combining X and Y into
// sqrt(X² + Y²).
func NewRootSumOfSquaresTable(opts ...dispatch.Option) (*dispatch.Table, error) {
	t := dispatch.New(RootSumOfSquaresTableName, opts...)
	if err := dispatch.Add(t, RootSumOfSquaresNormal, true); err != nil {
		return nil, err
	}
	if err := registerMixtures(t); err != nil {
		return nil, err
	}
	return t, nil
}

// registerMixtures makes a mixture operand distribute over its components:
// for independent X, the combination of Σ wᵢ·Cᵢ with X is Σ wᵢ·(Cᵢ ∘ X).
func registerMixtures(t *dispatch.Table) error {
	fn := distribute(t)
	for _, f := range density.Families() {
		if err := t.Register(density.FamilyMixture, f, fn, true); err != nil {
			return err
		}
	}
	return nil
}

func distribute(t *dispatch.Table) dispatch.Func {
	return func(lhs, rhs density.Distribution) (density.Distribution, error) {
		m, ok := lhs.(*mixture.Mixture)
		if !ok {
			return nil, fmt.Errorf("%w: lhs is %T, want *mixture.Mixture", dispatch.ErrOperandType, lhs)
		}
		if m.Len() == 0 {
			return nil, fmt.Errorf("%w: mixture without components", ErrEmpty)
		}
		out := mixture.New()
		for _, e := range m.Entries() {
			d, err := t.Dispatch(e.Dist, rhs)
			if err != nil {
				return nil, err
			}
			if err := insertFlat(out, d, e.Norm); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}

// insertFlat inserts d with weight w, splicing the components of a nested
// mixture into out.
func insertFlat(out *mixture.Mixture, d density.Distribution, w float64) error {
	inner, ok := d.(*mixture.Mixture)
	if !ok {
		return out.Insert(d, w)
	}
	for _, e := range inner.Entries() {
		if err := out.Insert(e.Dist, w*e.Norm); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaults    *Engine
)

func defaultEngine() *Engine {
	defaultOnce.Do(func() {
		e, err := NewEngine()
		if err != nil {
			panic(fmt.Sprintf("convolution: building default tables: %v", err))
		}
		defaults = e
	})
	return defaults
}

// Sum combines a and b through the default sum table.
func Sum(a, b density.Distribution) (density.Distribution, error) {
	return defaultEngine().Combine(OpSum, a, b)
}

// SumOfSquares combines a and b through the default sum-of-squares table.
func SumOfSquares(a, b density.Distribution) (density.Distribution, error) {
	return defaultEngine().Combine(OpSumOfSquares, a, b)
}

// RootSumOfSquares combines a and b through the default root-sum-of-squares
// table.
func RootSumOfSquares(a, b density.Distribution) (density.Distribution, error) {
	return defaultEngine().Combine(OpRootSumOfSquares, a, b)
}
