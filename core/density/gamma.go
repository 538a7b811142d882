package density

import (
	"math"

	"github.com/kilianp07/distalg/core/special"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gamma is the gamma distribution with scale θ and shape α.
type Gamma struct {
	scale, shape float64
}

func NewGamma(scale, shape float64) (Gamma, error) {
	if err := checkPositive(FamilyGamma, "scale", scale); err != nil {
		return Gamma{}, err
	}
	if err := checkPositive(FamilyGamma, "shape", shape); err != nil {
		return Gamma{}, err
	}
	return Gamma{scale: scale, shape: shape}, nil
}

func (d Gamma) Scale() float64 { return d.scale }
func (d Gamma) Shape() float64 { return d.shape }

func (Gamma) Family() Family { return FamilyGamma }
func (d Gamma) fields() []field {
	return []field{{name: "scale", value: d.scale}, {name: "shape", value: d.shape}}
}
func (d Gamma) Params() []float64 { return paramValues(d.fields()) }

func (d Gamma) dist() distuv.Gamma { return distuv.Gamma{Alpha: d.shape, Beta: 1 / d.scale} }

func (d Gamma) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	return d.dist().Prob(x)
}

func (d Gamma) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return d.dist().CDF(x)
}

func (d Gamma) Mean() (float64, error)     { return d.shape * d.scale, nil }
func (d Gamma) Variance() (float64, error) { return d.shape * d.scale * d.scale, nil }
func (d Gamma) StdDev() (float64, error)   { return stdDevOf(d.Variance()) }
func (d Gamma) Skewness() (float64, error) { return 2 / math.Sqrt(d.shape), nil }

func (d Gamma) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Gamma) Clone() Distribution { return d }
func (d Gamma) String() string      { return render(d.Family(), d.fields()) }

func (d Gamma) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Gamma) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Exponential is the exponential distribution with rate λ.
type Exponential struct {
	rate float64
}

func NewExponential(rate float64) (Exponential, error) {
	if err := checkPositive(FamilyExponential, "rate", rate); err != nil {
		return Exponential{}, err
	}
	return Exponential{rate: rate}, nil
}

func (d Exponential) Rate() float64 { return d.rate }

func (Exponential) Family() Family      { return FamilyExponential }
func (d Exponential) fields() []field   { return []field{{name: "rate", value: d.rate}} }
func (d Exponential) Params() []float64 { return paramValues(d.fields()) }

func (d Exponential) dist() distuv.Exponential { return distuv.Exponential{Rate: d.rate} }

func (d Exponential) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	return d.dist().Prob(x)
}
func (d Exponential) CDF(x float64) float64 { return d.dist().CDF(x) }

func (d Exponential) Mean() (float64, error)     { return 1 / d.rate, nil }
func (d Exponential) Variance() (float64, error) { return 1 / (d.rate * d.rate), nil }
func (d Exponential) StdDev() (float64, error)   { return 1 / d.rate, nil }
func (Exponential) Skewness() (float64, error)   { return 2, nil }

func (d Exponential) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Exponential) Clone() Distribution { return d }
func (d Exponential) String() string      { return render(d.Family(), d.fields()) }

func (d Exponential) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Exponential) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Erlang returns the equivalent Erlang(1, λ).
func (d Exponential) Erlang() Erlang { return Erlang{k: 1, rate: d.rate} }

// Erlang is the distribution of the sum of k independent Exponential(λ)
// variables.
type Erlang struct {
	k    int
	rate float64
}

func NewErlang(k int, rate float64) (Erlang, error) {
	if err := checkCount(FamilyErlang, "shape", k); err != nil {
		return Erlang{}, err
	}
	if err := checkPositive(FamilyErlang, "rate", rate); err != nil {
		return Erlang{}, err
	}
	return Erlang{k: k, rate: rate}, nil
}

func (d Erlang) Shape() int    { return d.k }
func (d Erlang) Rate() float64 { return d.rate }

func (Erlang) Family() Family { return FamilyErlang }
func (d Erlang) fields() []field {
	return []field{{name: "shape", value: float64(d.k), integer: true}, {name: "rate", value: d.rate}}
}
func (d Erlang) Params() []float64 { return paramValues(d.fields()) }

func (d Erlang) PDF(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x == 0:
		if d.k == 1 {
			return d.rate
		}
		return 0
	}
	k := float64(d.k)
	lg, _ := math.Lgamma(k)
	return math.Exp(k*math.Log(d.rate) + (k-1)*math.Log(x) - d.rate*x - lg)
}

func (d Erlang) CDF(x float64) float64 { return special.RegLowerGamma(float64(d.k), d.rate*x) }

func (d Erlang) Mean() (float64, error)     { return float64(d.k) / d.rate, nil }
func (d Erlang) Variance() (float64, error) { return float64(d.k) / (d.rate * d.rate), nil }
func (d Erlang) StdDev() (float64, error)   { return stdDevOf(d.Variance()) }
func (d Erlang) Skewness() (float64, error) { return 2 / math.Sqrt(float64(d.k)), nil }

func (d Erlang) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Erlang) Clone() Distribution { return d }
func (d Erlang) String() string      { return render(d.Family(), d.fields()) }

func (d Erlang) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Erlang) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Gamma returns the equivalent Gamma(1/λ, k).
func (d Erlang) Gamma() Gamma { return Gamma{scale: 1 / d.rate, shape: float64(d.k)} }
