package density

import (
	"math"

	"github.com/kilianp07/distalg/core/special"
)

// Rayleigh is the distribution of the norm of a centered bivariate normal
// with per-axis standard deviation σ.
type Rayleigh struct {
	scale float64
}

func NewRayleigh(scale float64) (Rayleigh, error) {
	if err := checkPositive(FamilyRayleigh, "scale", scale); err != nil {
		return Rayleigh{}, err
	}
	return Rayleigh{scale: scale}, nil
}

func (d Rayleigh) Scale() float64 { return d.scale }

func (Rayleigh) Family() Family      { return FamilyRayleigh }
func (d Rayleigh) fields() []field   { return []field{{name: "scale", value: d.scale}} }
func (d Rayleigh) Params() []float64 { return paramValues(d.fields()) }

func (d Rayleigh) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	s2 := d.scale * d.scale
	return x / s2 * math.Exp(-x*x/(2*s2))
}

func (d Rayleigh) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-x * x / (2 * d.scale * d.scale))
}

func (d Rayleigh) Mean() (float64, error) { return d.scale * math.Sqrt(math.Pi/2), nil }
func (d Rayleigh) Variance() (float64, error) {
	return (4 - math.Pi) / 2 * d.scale * d.scale, nil
}
func (d Rayleigh) StdDev() (float64, error) { return stdDevOf(d.Variance()) }
func (Rayleigh) Skewness() (float64, error) {
	return 2 * math.Sqrt(math.Pi) * (math.Pi - 3) / math.Pow(4-math.Pi, 1.5), nil
}

func (d Rayleigh) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Rayleigh) Clone() Distribution { return d }
func (d Rayleigh) String() string      { return render(d.Family(), d.fields()) }

func (d Rayleigh) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Rayleigh) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// Chi returns the equivalent Chi(2, σ).
func (d Rayleigh) Chi() Chi { return Chi{k: 2, scale: d.scale} }

// Rician is the distribution of the norm of a bivariate normal with per-axis
// standard deviation σ whose mean lies at distance ν from the origin.
type Rician struct {
	distance, scale float64
}

// NewRician builds a Rician distribution. Only |distance| is kept.
func NewRician(distance, scale float64) (Rician, error) {
	if err := checkFinite(FamilyRician, "distance", distance); err != nil {
		return Rician{}, err
	}
	if err := checkPositive(FamilyRician, "scale", scale); err != nil {
		return Rician{}, err
	}
	return Rician{distance: math.Abs(distance), scale: scale}, nil
}

func (d Rician) Distance() float64 { return d.distance }
func (d Rician) Scale() float64    { return d.scale }

func (Rician) Family() Family { return FamilyRician }
func (d Rician) fields() []field {
	return []field{{name: "distance", value: d.distance}, {name: "scale", value: d.scale}}
}
func (d Rician) Params() []float64 { return paramValues(d.fields()) }

func (d Rician) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	s2 := d.scale * d.scale
	r := x - d.distance
	return x / s2 * math.Exp(-r*r/(2*s2)) * special.BesselIe(0, x*d.distance/s2)
}

func (d Rician) CDF(x float64) float64 {
	return special.MarcumP(1, d.distance/d.scale, x/d.scale)
}

func (d Rician) Mean() (float64, error)     { return d.NoncentralChi().Mean() }
func (d Rician) Variance() (float64, error) { return d.NoncentralChi().Variance() }
func (d Rician) StdDev() (float64, error)   { return d.NoncentralChi().StdDev() }
func (d Rician) Skewness() (float64, error) { return d.NoncentralChi().Skewness() }

func (d Rician) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d Rician) Clone() Distribution { return d }
func (d Rician) String() string      { return render(d.Family(), d.fields()) }

func (d Rician) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d Rician) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// NoncentralChi returns the equivalent χ'(2, ν, σ).
func (d Rician) NoncentralChi() NoncentralChi {
	return NoncentralChi{k: 2, distance: d.distance, scale: d.scale}
}
