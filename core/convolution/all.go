package convolution

import (
	"fmt"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/dispatch"
)

// SumAll sums a homogeneous list through the n-ary rule of its family. A
// single operand is returned as a copy.
func SumAll(ds []density.Distribution) (density.Distribution, error) {
	f, err := homogeneous(ds)
	if err != nil {
		return nil, err
	}
	if len(ds) == 1 {
		return ds[0].Clone(), nil
	}
	switch f {
	case density.FamilyStdUniform:
		return apply(ds, SumStdUniforms)
	case density.FamilyIrwinHall:
		return apply(ds, SumIrwinHalls)
	case density.FamilyNormal:
		return apply(ds, SumNormals)
	case density.FamilyCauchy:
		return apply(ds, SumCauchys)
	case density.FamilyGamma:
		return apply(ds, SumGammas)
	case density.FamilyExponential:
		return apply(ds, SumExponentials)
	case density.FamilyErlang:
		return apply(ds, SumErlangs)
	case density.FamilyChiSquare:
		return apply(ds, SumChiSquares)
	case density.FamilyNoncentralChiSquare:
		return apply(ds, SumNoncentralChiSquares)
	}
	return nil, fmt.Errorf("%w: no n-ary sum for %s", dispatch.ErrNoRule, f)
}

// SumOfSquaresAll returns the law of Σ Xᵢ² for a list of normals.
func SumOfSquaresAll(ds []density.Distribution) (density.Distribution, error) {
	f, err := homogeneous(ds)
	if err != nil {
		return nil, err
	}
	if f != density.FamilyNormal {
		return nil, fmt.Errorf("%w: no n-ary sum of squares for %s", dispatch.ErrNoRule, f)
	}
	return apply(ds, SumOfSquaresNormals)
}

// RootSumOfSquaresAll returns the law of sqrt(Σ Xᵢ²) for a list of normals.
func RootSumOfSquaresAll(ds []density.Distribution) (density.Distribution, error) {
	f, err := homogeneous(ds)
	if err != nil {
		return nil, err
	}
	if f != density.FamilyNormal {
		return nil, fmt.Errorf("%w: no n-ary root sum of squares for %s", dispatch.ErrNoRule, f)
	}
	return apply(ds, RootSumOfSquaresNormals)
}

func homogeneous(ds []density.Distribution) (density.Family, error) {
	if len(ds) == 0 {
		return density.FamilyUnknown, ErrEmpty
	}
	for i, d := range ds {
		if d == nil {
			return density.FamilyUnknown, fmt.Errorf("%w: operand %d is nil", dispatch.ErrOperandType, i)
		}
	}
	f := ds[0].Family()
	for i, d := range ds[1:] {
		if d.Family() != f {
			return density.FamilyUnknown, fmt.Errorf("%w: operand %d is %s, operand 0 is %s", ErrMixedFamilies, i+1, d.Family(), f)
		}
	}
	return f, nil
}

func apply[T, O density.Distribution](ds []density.Distribution, fn func([]T) (O, error)) (density.Distribution, error) {
	ts := make([]T, len(ds))
	for i, d := range ds {
		v, ok := d.(T)
		if !ok {
			return nil, fmt.Errorf("%w: operand %d is %T, want %T", dispatch.ErrOperandType, i, d, v)
		}
		ts[i] = v
	}
	out, err := fn(ts)
	if err != nil {
		return nil, err
	}
	return out, nil
}
