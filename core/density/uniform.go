package density

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StdUniform is the uniform distribution on [0, 1].
type StdUniform struct{}

func NewStdUniform() StdUniform { return StdUniform{} }

func (StdUniform) Family() Family      { return FamilyStdUniform }
func (StdUniform) fields() []field     { return nil }
func (d StdUniform) Params() []float64 { return paramValues(d.fields()) }

func (StdUniform) PDF(x float64) float64 { return stdUniform.Prob(x) }
func (StdUniform) CDF(x float64) float64 { return stdUniform.CDF(x) }

func (StdUniform) Mean() (float64, error)     { return 0.5, nil }
func (StdUniform) Variance() (float64, error) { return 1.0 / 12, nil }
func (d StdUniform) StdDev() (float64, error) { return stdDevOf(d.Variance()) }
func (StdUniform) Skewness() (float64, error) { return 0, nil }

func (d StdUniform) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d StdUniform) Clone() Distribution { return d }
func (d StdUniform) String() string      { return render(d.Family(), d.fields()) }

func (d StdUniform) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d StdUniform) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Uniform returns the same law as a general Uniform(0, 1).
func (StdUniform) Uniform() Uniform { return Uniform{lower: 0, upper: 1} }

var stdUniform = distuv.Uniform{Min: 0, Max: 1}

// Uniform is the continuous uniform distribution on [lower, upper].
type Uniform struct {
	lower, upper float64
}

// NewUniform builds a uniform distribution. The bounds may be given in either
// order but must differ.
func NewUniform(lower, upper float64) (Uniform, error) {
	if err := checkFinite(FamilyUniform, "lower", lower); err != nil {
		return Uniform{}, err
	}
	if err := checkFinite(FamilyUniform, "upper", upper); err != nil {
		return Uniform{}, err
	}
	if lower == upper {
		return Uniform{}, invalidParam(FamilyUniform, "upper", upper, "must differ from lower")
	}
	if lower > upper {
		lower, upper = upper, lower
	}
	return Uniform{lower: lower, upper: upper}, nil
}

func (d Uniform) Lower() float64 { return d.lower }
func (d Uniform) Upper() float64 { return d.upper }

func (Uniform) Family() Family { return FamilyUniform }
func (d Uniform) fields() []field {
	return []field{{name: "lower", value: d.lower}, {name: "upper", value: d.upper}}
}
func (d Uniform) Params() []float64 { return paramValues(d.fields()) }

func (d Uniform) dist() distuv.Uniform { return distuv.Uniform{Min: d.lower, Max: d.upper} }

func (d Uniform) PDF(x float64) float64 { return d.dist().Prob(x) }
func (d Uniform) CDF(x float64) float64 { return d.dist().CDF(x) }

func (d Uniform) Mean() (float64, error) { return (d.lower + d.upper) / 2, nil }
func (d Uniform) Variance() (float64, error) {
	w := d.upper - d.lower
	return w * w / 12, nil
}
func (d Uniform) StdDev() (float64, error) { return stdDevOf(d.Variance()) }
func (Uniform) Skewness() (float64, error) { return 0, nil }

func (d Uniform) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Uniform) Clone() Distribution { return d }
func (d Uniform) String() string      { return render(d.Family(), d.fields()) }

func (d Uniform) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Uniform) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Width is upper - lower.
func (d Uniform) Width() float64 { return math.Abs(d.upper - d.lower) }
