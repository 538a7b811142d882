package convolution

import (
	"fmt"
	"math"

	"github.com/kilianp07/distalg/core/density"
)

// SumOfSquaresNormal returns the law of X² + Y² for unit-variance normals:
// ChiSquare(2) when both means are zero, NoncentralChiSquare(2, μx² + μy²)
// otherwise.
func SumOfSquaresNormal(a, b density.Normal) (density.Distribution, error) {
	return SumOfSquaresNormals([]density.Normal{a, b})
}

func SumOfSquaresNormals(ds []density.Normal) (density.Distribution, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("%w: sum of squares of Normal", ErrEmpty)
	}
	var lambda float64
	for i, d := range ds {
		if err := requireEqual("sum of squares of Normal", "variance", i, 1, d.Var()); err != nil {
			return nil, err
		}
		lambda += d.Mu() * d.Mu()
	}
	if lambda == 0 {
		return density.NewChiSquare(len(ds))
	}
	return density.NewNoncentralChiSquare(len(ds), lambda)
}

// RootSumOfSquaresNormal returns the law of sqrt(X² + Y²) for normals with a
// common variance σ²: Rayleigh(σ) for zero means, Rician(sqrt(μx² + μy²), σ)
// otherwise.
func RootSumOfSquaresNormal(a, b density.Normal) (density.Distribution, error) {
	return RootSumOfSquaresNormals([]density.Normal{a, b})
}

// RootSumOfSquaresNormals generalizes RootSumOfSquaresNormal. Two operands
// give Rayleigh or Rician; any other count gives Chi(n, σ) or
// NoncentralChi(n, sqrt(Σμ²), σ).
func RootSumOfSquaresNormals(ds []density.Normal) (density.Distribution, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("%w: root sum of squares of Normal", ErrEmpty)
	}
	var sq float64
	for i, d := range ds {
		if err := requireEqual("root sum of squares of Normal", "variance", i, ds[0].Var(), d.Var()); err != nil {
			return nil, err
		}
		sq += d.Mu() * d.Mu()
	}
	sigma, dist := ds[0].Sigma(), math.Sqrt(sq)
	switch {
	case len(ds) == 2 && sq == 0:
		return density.NewRayleigh(sigma)
	case len(ds) == 2:
		return density.NewRician(dist, sigma)
	case sq == 0:
		return density.NewChi(len(ds), sigma)
	}
	return density.NewNoncentralChi(len(ds), dist, sigma)
}
