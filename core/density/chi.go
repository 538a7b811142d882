package density

import (
	"math"

	"github.com/kilianp07/distalg/core/special"
	"gonum.org/v1/gonum/stat/distuv"
)

// Chi is the distribution of σ·sqrt(Z1² + ... + Zk²) for independent standard
// normals Zi.
type Chi struct {
	k     int
	scale float64
}

func NewChi(k int, scale float64) (Chi, error) {
	if err := checkCount(FamilyChi, "degrees of freedom", k); err != nil {
		return Chi{}, err
	}
	if err := checkPositive(FamilyChi, "scale", scale); err != nil {
		return Chi{}, err
	}
	return Chi{k: k, scale: scale}, nil
}

func (d Chi) DoF() int       { return d.k }
func (d Chi) Scale() float64 { return d.scale }

func (Chi) Family() Family { return FamilyChi }
func (d Chi) fields() []field {
	return []field{{name: "k", value: float64(d.k), integer: true}, {name: "scale", value: d.scale}}
}
func (d Chi) Params() []float64 { return paramValues(d.fields()) }

func (d Chi) PDF(x float64) float64 { return chiPDF(float64(d.k), x/d.scale) / d.scale }

func (d Chi) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	y := x / d.scale
	return special.RegLowerGamma(float64(d.k)/2, y*y/2)
}

func (d Chi) Mean() (float64, error) { return d.scale * chiMean(float64(d.k)), nil }

func (d Chi) Variance() (float64, error) {
	return d.scale * d.scale * chiVariance(float64(d.k)), nil
}

func (d Chi) StdDev() (float64, error) { return stdDevOf(d.Variance()) }

// Skewness does not depend on the scale.
func (d Chi) Skewness() (float64, error) {
	k := float64(d.k)
	mu, v := chiMean(k), chiVariance(k)
	return mu * (1 - 2*v) / math.Pow(v, 1.5), nil
}

func (d Chi) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Chi) Clone() Distribution { return d }
func (d Chi) String() string      { return render(d.Family(), d.fields()) }

func (d Chi) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Chi) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// chiPDF is the unit-scale chi density.
func chiPDF(k, y float64) float64 {
	switch {
	case y < 0:
		return 0
	case y == 0:
		if k == 1 {
			return math.Sqrt(2 / math.Pi)
		}
		return 0
	}
	lg, _ := math.Lgamma(k / 2)
	return math.Exp((1-k/2)*math.Ln2 + (k-1)*math.Log(y) - y*y/2 - lg)
}

func chiMean(k float64) float64 {
	a, _ := math.Lgamma((k + 1) / 2)
	b, _ := math.Lgamma(k / 2)
	return math.Sqrt2 * math.Exp(a-b)
}

func chiVariance(k float64) float64 {
	mu := chiMean(k)
	return k - mu*mu
}

// ChiSquare is the distribution of the sum of k squared standard normals.
type ChiSquare struct {
	k int
}

func NewChiSquare(k int) (ChiSquare, error) {
	if err := checkCount(FamilyChiSquare, "degrees of freedom", k); err != nil {
		return ChiSquare{}, err
	}
	return ChiSquare{k: k}, nil
}

func (d ChiSquare) DoF() int { return d.k }

func (ChiSquare) Family() Family { return FamilyChiSquare }
func (d ChiSquare) fields() []field {
	return []field{{name: "k", value: float64(d.k), integer: true}}
}
func (d ChiSquare) Params() []float64 { return paramValues(d.fields()) }

func (d ChiSquare) dist() distuv.ChiSquared { return distuv.ChiSquared{K: float64(d.k)} }

func (d ChiSquare) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	return d.dist().Prob(x)
}

func (d ChiSquare) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return d.dist().CDF(x)
}

func (d ChiSquare) Mean() (float64, error)     { return float64(d.k), nil }
func (d ChiSquare) Variance() (float64, error) { return 2 * float64(d.k), nil }
func (d ChiSquare) StdDev() (float64, error)   { return stdDevOf(d.Variance()) }
func (d ChiSquare) Skewness() (float64, error) { return math.Sqrt(8 / float64(d.k)), nil }

func (d ChiSquare) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d ChiSquare) Clone() Distribution { return d }
func (d ChiSquare) String() string      { return render(d.Family(), d.fields()) }

func (d ChiSquare) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d ChiSquare) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Gamma returns the equivalent Gamma(2, k/2).
func (d ChiSquare) Gamma() Gamma { return Gamma{scale: 2, shape: float64(d.k) / 2} }
