package convolution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/dispatch"
)

// ErrUnknownOp is returned for an operation name that is not recognized.
var ErrUnknownOp = errors.New("unknown operation")

// Op names a combination of independent variables.
type Op string

const (
	OpSum              Op = "sum"
	OpSumOfSquares     Op = "sumsq"
	OpRootSumOfSquares Op = "rss"
)

func Ops() []Op { return []Op{OpSum, OpSumOfSquares, OpRootSumOfSquares} }

func (o Op) String() string { return string(o) }

var opAliases = map[string]Op{
	"sum":                 OpSum,
	"+":                   OpSum,
	"sumsq":               OpSumOfSquares,
	"sum-of-squares":      OpSumOfSquares,
	"sum_of_squares":      OpSumOfSquares,
	"rss":                 OpRootSumOfSquares,
	"root-sum-of-squares": OpRootSumOfSquares,
	"root_sum_of_squares": OpRootSumOfSquares,
}

// ParseOp resolves an operation name, case-insensitively.
func ParseOp(s string) (Op, error) {
	if op, ok := opAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Engine holds one dispatch table per operation.
type Engine struct {
	tables map[Op]*dispatch.Table
}

// NewEngine builds the three tables, passing opts to each.
func NewEngine(opts ...dispatch.Option) (*Engine, error) {
	sum, err := NewSumTable(opts...)
	if err != nil {
		return nil, err
	}
	sumsq, err := NewSumOfSquaresTable(opts...)
	if err != nil {
		return nil, err
	}
	rss, err := NewRootSumOfSquaresTable(opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{tables: map[Op]*dispatch.Table{
		OpSum:              sum,
		OpSumOfSquares:     sumsq,
		OpRootSumOfSquares: rss,
	}}, nil
}

func (e *Engine) Table(op Op) (*dispatch.Table, error) {
	t, ok := e.tables[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	return t, nil
}

// Combine dispatches a pairwise operation.
func (e *Engine) Combine(op Op, a, b density.Distribution) (density.Distribution, error) {
	t, err := e.Table(op)
	if err != nil {
		return nil, err
	}
	return t.Dispatch(a, b)
}

// CombineAll applies op to a list. Sums use the n-ary rule of a homogeneous
// list when one exists and otherwise fold left through the pairwise table.
// The squared operations cannot be folded, so they fall back to the pairwise
// table only for two operands.
func (e *Engine) CombineAll(op Op, ds []density.Distribution) (density.Distribution, error) {
	var (
		out density.Distribution
		err error
	)
	switch op {
	case OpSum:
		out, err = SumAll(ds)
	case OpSumOfSquares:
		out, err = SumOfSquaresAll(ds)
	case OpRootSumOfSquares:
		out, err = RootSumOfSquaresAll(ds)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	if err == nil || !(errors.Is(err, ErrMixedFamilies) || errors.Is(err, dispatch.ErrNoRule)) {
		return out, err
	}
	if op != OpSum {
		if len(ds) != 2 {
			return nil, err
		}
		return e.Combine(op, ds[0], ds[1])
	}
	acc := ds[0]
	for _, d := range ds[1:] {
		if acc, err = e.Combine(OpSum, acc, d); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
