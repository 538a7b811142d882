package special

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// RegLowerGamma returns the regularized lower incomplete gamma function P(s, z).
// Non-positive z yields 0.
func RegLowerGamma(s, z float64) float64 {
	if z <= 0 {
		return 0
	}
	if math.IsInf(z, 1) {
		return 1
	}
	return mathext.GammaIncReg(s, z)
}

// RegUpperGamma returns the regularized upper incomplete gamma function Q(s, z).
func RegUpperGamma(s, z float64) float64 {
	if z <= 0 {
		return 1
	}
	if math.IsInf(z, 1) {
		return 0
	}
	return mathext.GammaIncRegComp(s, z)
}

// LowerGamma returns the lower incomplete gamma function γ(s, z).
func LowerGamma(s, z float64) float64 {
	return RegLowerGamma(s, z) * math.Gamma(s)
}

// UpperGamma returns the upper incomplete gamma function Γ(s, z).
func UpperGamma(s, z float64) float64 {
	return RegUpperGamma(s, z) * math.Gamma(s)
}
