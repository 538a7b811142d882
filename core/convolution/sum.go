package convolution

import (
	"fmt"

	"github.com/kilianp07/distalg/core/density"
)

// SumStdUniform returns IrwinHall(2).
func SumStdUniform(_, _ density.StdUniform) (density.IrwinHall, error) {
	return density.NewIrwinHall(2)
}

func SumStdUniforms(ds []density.StdUniform) (density.IrwinHall, error) {
	if len(ds) == 0 {
		return density.IrwinHall{}, fmt.Errorf("%w: sum of StdUniform", ErrEmpty)
	}
	return density.NewIrwinHall(len(ds))
}

// SumIrwinHallStdUniform returns IrwinHall(n+1).
func SumIrwinHallStdUniform(a density.IrwinHall, _ density.StdUniform) (density.IrwinHall, error) {
	return density.NewIrwinHall(a.N() + 1)
}

func SumIrwinHall(a, b density.IrwinHall) (density.IrwinHall, error) {
	return density.NewIrwinHall(a.N() + b.N())
}

func SumIrwinHalls(ds []density.IrwinHall) (density.IrwinHall, error) {
	if len(ds) == 0 {
		return density.IrwinHall{}, fmt.Errorf("%w: sum of IrwinHall", ErrEmpty)
	}
	var n int
	for _, d := range ds {
		n += d.N()
	}
	return density.NewIrwinHall(n)
}

// SumNormal adds means and variances.
func SumNormal(a, b density.Normal) (density.Normal, error) {
	return density.NewNormal(a.Mu()+b.Mu(), a.Var()+b.Var())
}

func SumNormals(ds []density.Normal) (density.Normal, error) {
	if len(ds) == 0 {
		return density.Normal{}, fmt.Errorf("%w: sum of Normal", ErrEmpty)
	}
	var mean, variance float64
	for _, d := range ds {
		mean += d.Mu()
		variance += d.Var()
	}
	return density.NewNormal(mean, variance)
}

// SumCauchy adds locations and scales.
func SumCauchy(a, b density.Cauchy) (density.Cauchy, error) {
	return density.NewCauchy(a.Loc()+b.Loc(), a.Scale()+b.Scale())
}

func SumCauchys(ds []density.Cauchy) (density.Cauchy, error) {
	if len(ds) == 0 {
		return density.Cauchy{}, fmt.Errorf("%w: sum of Cauchy", ErrEmpty)
	}
	var loc, scale float64
	for _, d := range ds {
		loc += d.Loc()
		scale += d.Scale()
	}
	return density.NewCauchy(loc, scale)
}

// SumGamma adds the shapes of two gammas sharing a scale.
func SumGamma(a, b density.Gamma) (density.Gamma, error) {
	if err := requireEqual("sum of Gamma", "scale", 1, a.Scale(), b.Scale()); err != nil {
		return density.Gamma{}, err
	}
	return density.NewGamma(a.Scale(), a.Shape()+b.Shape())
}

func SumGammas(ds []density.Gamma) (density.Gamma, error) {
	if len(ds) == 0 {
		return density.Gamma{}, fmt.Errorf("%w: sum of Gamma", ErrEmpty)
	}
	var shape float64
	for i, d := range ds {
		if err := requireEqual("sum of Gamma", "scale", i, ds[0].Scale(), d.Scale()); err != nil {
			return density.Gamma{}, err
		}
		shape += d.Shape()
	}
	return density.NewGamma(ds[0].Scale(), shape)
}

// SumExponential returns Erlang(2, λ) for two exponentials sharing a rate.
func SumExponential(a, b density.Exponential) (density.Erlang, error) {
	if err := requireEqual("sum of Exponential", "rate", 1, a.Rate(), b.Rate()); err != nil {
		return density.Erlang{}, err
	}
	return density.NewErlang(2, a.Rate())
}

func SumExponentials(ds []density.Exponential) (density.Erlang, error) {
	if len(ds) == 0 {
		return density.Erlang{}, fmt.Errorf("%w: sum of Exponential", ErrEmpty)
	}
	for i, d := range ds {
		if err := requireEqual("sum of Exponential", "rate", i, ds[0].Rate(), d.Rate()); err != nil {
			return density.Erlang{}, err
		}
	}
	return density.NewErlang(len(ds), ds[0].Rate())
}

func SumErlang(a, b density.Erlang) (density.Erlang, error) {
	if err := requireEqual("sum of Erlang", "rate", 1, a.Rate(), b.Rate()); err != nil {
		return density.Erlang{}, err
	}
	return density.NewErlang(a.Shape()+b.Shape(), a.Rate())
}

func SumErlangs(ds []density.Erlang) (density.Erlang, error) {
	if len(ds) == 0 {
		return density.Erlang{}, fmt.Errorf("%w: sum of Erlang", ErrEmpty)
	}
	var k int
	for i, d := range ds {
		if err := requireEqual("sum of Erlang", "rate", i, ds[0].Rate(), d.Rate()); err != nil {
			return density.Erlang{}, err
		}
		k += d.Shape()
	}
	return density.NewErlang(k, ds[0].Rate())
}

// SumErlangExponential returns Erlang(k+1, λ).
func SumErlangExponential(a density.Erlang, b density.Exponential) (density.Erlang, error) {
	if err := requireEqual("sum of Erlang and Exponential", "rate", 1, a.Rate(), b.Rate()); err != nil {
		return density.Erlang{}, err
	}
	return density.NewErlang(a.Shape()+1, a.Rate())
}

func SumChiSquare(a, b density.ChiSquare) (density.ChiSquare, error) {
	return density.NewChiSquare(a.DoF() + b.DoF())
}

func SumChiSquares(ds []density.ChiSquare) (density.ChiSquare, error) {
	if len(ds) == 0 {
		return density.ChiSquare{}, fmt.Errorf("%w: sum of ChiSquare", ErrEmpty)
	}
	var k int
	for _, d := range ds {
		k += d.DoF()
	}
	return density.NewChiSquare(k)
}

// SumNoncentralChiSquare adds degrees of freedom and noncentralities of two
// variables sharing a scale.
func SumNoncentralChiSquare(a, b density.NoncentralChiSquare) (density.NoncentralChiSquare, error) {
	if err := requireEqual("sum of NoncentralChiSquare", "scale", 1, a.Scale(), b.Scale()); err != nil {
		return density.NoncentralChiSquare{}, err
	}
	return density.NewScaledNoncentralChiSquare(a.DoF()+b.DoF(), a.Lambda()+b.Lambda(), a.Scale())
}

func SumNoncentralChiSquares(ds []density.NoncentralChiSquare) (density.NoncentralChiSquare, error) {
	if len(ds) == 0 {
		return density.NoncentralChiSquare{}, fmt.Errorf("%w: sum of NoncentralChiSquare", ErrEmpty)
	}
	var k int
	var lambda float64
	for i, d := range ds {
		if err := requireEqual("sum of NoncentralChiSquare", "scale", i, ds[0].Scale(), d.Scale()); err != nil {
			return density.NoncentralChiSquare{}, err
		}
		k += d.DoF()
		lambda += d.Lambda()
	}
	return density.NewScaledNoncentralChiSquare(k, lambda, ds[0].Scale())
}

// SumChiSquareNoncentral adds a central chi-square to a unit-scale
// noncentral one.
func SumChiSquareNoncentral(a density.ChiSquare, b density.NoncentralChiSquare) (density.NoncentralChiSquare, error) {
	if err := requireEqual("sum of ChiSquare and NoncentralChiSquare", "scale", 1, 1, b.Scale()); err != nil {
		return density.NoncentralChiSquare{}, err
	}
	return density.NewNoncentralChiSquare(a.DoF()+b.DoF(), b.Lambda())
}
