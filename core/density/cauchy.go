package density

import "math"

// Cauchy is the Cauchy (Lorentz) distribution. None of its moments exist.
type Cauchy struct {
	loc, scale float64
}

func NewCauchy(loc, scale float64) (Cauchy, error) {
	if err := checkFinite(FamilyCauchy, "location", loc); err != nil {
		return Cauchy{}, err
	}
	if err := checkPositive(FamilyCauchy, "scale", scale); err != nil {
		return Cauchy{}, err
	}
	return Cauchy{loc: loc, scale: scale}, nil
}

func (d Cauchy) Loc() float64   { return d.loc }
func (d Cauchy) Scale() float64 { return d.scale }

func (Cauchy) Family() Family { return FamilyCauchy }
func (d Cauchy) fields() []field {
	return []field{{name: "location", value: d.loc}, {name: "scale", value: d.scale}}
}
func (d Cauchy) Params() []float64 { return paramValues(d.fields()) }

func (d Cauchy) PDF(x float64) float64 {
	z := (x - d.loc) / d.scale
	return 1 / (math.Pi * d.scale * (1 + z*z))
}

func (d Cauchy) CDF(x float64) float64 {
	return 0.5 + math.Atan((x-d.loc)/d.scale)/math.Pi
}

func (d Cauchy) Mean() (float64, error)     { return 0, undefinedMoment(d.Family(), "mean") }
func (d Cauchy) Variance() (float64, error) { return 0, undefinedMoment(d.Family(), "variance") }
func (d Cauchy) StdDev() (float64, error)   { return 0, undefinedMoment(d.Family(), "standard deviation") }
func (d Cauchy) Skewness() (float64, error) { return 0, undefinedMoment(d.Family(), "skewness") }

func (d Cauchy) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Cauchy) Clone() Distribution { return d }
func (d Cauchy) String() string      { return render(d.Family(), d.fields()) }

func (d Cauchy) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Cauchy) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }
