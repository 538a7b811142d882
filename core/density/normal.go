package density

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the Gaussian distribution parameterized by mean and variance.
type Normal struct {
	mean, variance float64
}

func NewNormal(mean, variance float64) (Normal, error) {
	if err := checkFinite(FamilyNormal, "mean", mean); err != nil {
		return Normal{}, err
	}
	if err := checkPositive(FamilyNormal, "variance", variance); err != nil {
		return Normal{}, err
	}
	return Normal{mean: mean, variance: variance}, nil
}

func (d Normal) Mu() float64    { return d.mean }
func (d Normal) Var() float64   { return d.variance }
func (d Normal) Sigma() float64 { return math.Sqrt(d.variance) }

func (Normal) Family() Family { return FamilyNormal }
func (d Normal) fields() []field {
	return []field{{name: "mean", value: d.mean}, {name: "variance", value: d.variance}}
}
func (d Normal) Params() []float64 { return paramValues(d.fields()) }

func (d Normal) dist() distuv.Normal { return distuv.Normal{Mu: d.mean, Sigma: d.Sigma()} }

func (d Normal) PDF(x float64) float64 { return d.dist().Prob(x) }
func (d Normal) CDF(x float64) float64 { return d.dist().CDF(x) }

func (d Normal) Mean() (float64, error)     { return d.mean, nil }
func (d Normal) Variance() (float64, error) { return d.variance, nil }
func (d Normal) StdDev() (float64, error)   { return d.Sigma(), nil }
func (Normal) Skewness() (float64, error)   { return 0, nil }

func (d Normal) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Normal) Clone() Distribution { return d }
func (d Normal) String() string      { return render(d.Family(), d.fields()) }

func (d Normal) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Normal) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }
