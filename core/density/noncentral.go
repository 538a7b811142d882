package density

import (
	"math"

	"github.com/kilianp07/distalg/core/special"
)

// NoncentralChi is the distribution of sqrt(X1² + ... + Xk²) where the Xi are
// independent normals with common standard deviation σ and means whose
// Euclidean norm is the distance λ. X/σ follows χ'(k, λ/σ).
type NoncentralChi struct {
	k               int
	distance, scale float64
}

func NewNoncentralChi(k int, distance, scale float64) (NoncentralChi, error) {
	if err := checkCount(FamilyNoncentralChi, "degrees of freedom", k); err != nil {
		return NoncentralChi{}, err
	}
	if err := checkNonNegative(FamilyNoncentralChi, "distance", distance); err != nil {
		return NoncentralChi{}, err
	}
	if err := checkPositive(FamilyNoncentralChi, "scale", scale); err != nil {
		return NoncentralChi{}, err
	}
	return NoncentralChi{k: k, distance: distance, scale: scale}, nil
}

func (d NoncentralChi) DoF() int          { return d.k }
func (d NoncentralChi) Distance() float64 { return d.distance }
func (d NoncentralChi) Scale() float64    { return d.scale }

func (NoncentralChi) Family() Family { return FamilyNoncentralChi }
func (d NoncentralChi) fields() []field {
	return []field{
		{name: "k", value: float64(d.k), integer: true},
		{name: "distance", value: d.distance},
		{name: "scale", value: d.scale},
	}
}
func (d NoncentralChi) Params() []float64 { return paramValues(d.fields()) }

// lambda is the noncentrality at unit scale.
func (d NoncentralChi) lambda() float64 { return d.distance / d.scale }

func (d NoncentralChi) PDF(x float64) float64 {
	k, l, y := float64(d.k), d.lambda(), x/d.scale
	switch {
	case y < 0:
		return 0
	case l == 0:
		return chiPDF(k, y) / d.scale
	case y == 0:
		if d.k == 1 {
			return math.Sqrt(2/math.Pi) * math.Exp(-l*l/2) / d.scale
		}
		return 0
	}
	p := l * math.Pow(y/l, k/2) * math.Exp(-(y-l)*(y-l)/2) * special.BesselIe(k/2-1, l*y)
	return p / d.scale
}

func (d NoncentralChi) CDF(x float64) float64 {
	return special.MarcumP(float64(d.k)/2, d.lambda(), x/d.scale)
}

// rawMoment returns E[Y^m] for the unit-scale variable Y = X/σ.
func (d NoncentralChi) rawMoment(m float64) float64 {
	k, l := float64(d.k), d.lambda()
	a, _ := math.Lgamma((k + m) / 2)
	b, _ := math.Lgamma(k / 2)
	return math.Pow(2, m/2) * math.Exp(a-b) * special.Hyp1F1(-m/2, k/2, -l*l/2)
}

// unitMoments returns the mean, variance and third central moment of Y = X/σ.
// Far from the origin the raw-moment form cancels catastrophically, so the
// central moments come from their large-λ expansion instead.
func (d NoncentralChi) unitMoments() (mean, variance, m3 float64) {
	k, l := float64(d.k), d.lambda()
	if l >= 8 && l*l >= 5*k {
		return farMoments(k, l)
	}
	mean = d.rawMoment(1)
	variance = k + l*l - mean*mean
	m3 = d.rawMoment(3) - 3*mean*variance - mean*mean*mean
	return mean, variance, m3
}

func (d NoncentralChi) Mean() (float64, error) {
	mean, _, _ := d.unitMoments()
	return d.scale * mean, nil
}

func (d NoncentralChi) Variance() (float64, error) {
	_, v, _ := d.unitMoments()
	return d.scale * d.scale * v, nil
}

func (d NoncentralChi) StdDev() (float64, error) { return stdDevOf(d.Variance()) }

func (d NoncentralChi) Skewness() (float64, error) {
	_, v, m3 := d.unitMoments()
	if v <= 0 {
		return 0, undefinedMoment(d.Family(), "skewness")
	}
	return m3 / math.Pow(v, 1.5), nil
}

// farTerms is the truncation order of the large-λ moment series.
const farTerms = 40

// farSeries returns the coefficients of E[Y^m]/λ^m as a power series in
// u = 1/λ²: (-m/2)_n (1-m/2-k/2)_n 2^n / n!.
func farSeries(m, k float64) [farTerms]float64 {
	var c [farTerms]float64
	c[0] = 1
	for n := 1; n < farTerms; n++ {
		j := float64(n - 1)
		c[n] = c[n-1] * (j - m/2) * (j + 1 - m/2 - k/2) * 2 / (j + 1)
	}
	return c
}

func seriesMul(a, b [farTerms]float64) [farTerms]float64 {
	var r [farTerms]float64
	for i := range a {
		if a[i] == 0 {
			continue
		}
		for j := 0; i+j < farTerms; j++ {
			r[i+j] += a[i] * b[j]
		}
	}
	return r
}

// evalAsymptotic evaluates Σ c[n] u^n for n >= from, stopping at the smallest
// term.
func evalAsymptotic(c [farTerms]float64, u float64, from int) float64 {
	var sum, prev float64
	p := math.Pow(u, float64(from))
	for n := from; n < farTerms; n++ {
		t := c[n] * p
		p *= u
		if n > from && math.Abs(t) > math.Abs(prev) {
			break
		}
		sum += t
		prev = t
		if math.Abs(t) <= 1e-17*math.Abs(sum) {
			break
		}
	}
	return sum
}

// farMoments expands the unit-scale moments in 1/λ². The variance and third
// central moment are combined coefficient-wise, so the leading λ² and λ³
// parts cancel exactly before anything is evaluated. The neglected remainder
// is of order exp(-λ²/2).
func farMoments(k, l float64) (mean, variance, m3 float64) {
	u := 1 / (l * l)
	s1 := farSeries(1, k)
	s3 := farSeries(3, k)
	s1sq := seriesMul(s1, s1)
	s1cu := seriesMul(s1sq, s1)

	// Var/λ² = 1 + k·u - S1², m3/λ³ = S3 - 3·S1·(1 + k·u) + 2·S1³.
	var v, c [farTerms]float64
	for n := 1; n < farTerms; n++ {
		v[n-1] = -s1sq[n]
		c[n] = s3[n] - 3*(s1[n]+k*s1[n-1]) + 2*s1cu[n]
	}
	v[0] += k

	mean = l * evalAsymptotic(s1, u, 0)
	variance = evalAsymptotic(v, u, 0)
	m3 = l * l * l * evalAsymptotic(c, u, 3)
	return mean, variance, m3
}

func (d NoncentralChi) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d NoncentralChi) Clone() Distribution { return d }
func (d NoncentralChi) String() string      { return render(d.Family(), d.fields()) }

func (d NoncentralChi) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d NoncentralChi) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }

// NoncentralChiSquare is the distribution of X1² + ... + Xk² for independent
// normals with common standard deviation σ and Σμi² = λ. X/σ² follows
// χ'²(k, λ/σ²).
type NoncentralChiSquare struct {
	k             int
	lambda, scale float64
}

// NewNoncentralChiSquare builds a unit-scale noncentral chi-square.
func NewNoncentralChiSquare(k int, lambda float64) (NoncentralChiSquare, error) {
	return NewScaledNoncentralChiSquare(k, lambda, 1)
}

func NewScaledNoncentralChiSquare(k int, lambda, scale float64) (NoncentralChiSquare, error) {
	if err := checkCount(FamilyNoncentralChiSquare, "degrees of freedom", k); err != nil {
		return NoncentralChiSquare{}, err
	}
	if err := checkNonNegative(FamilyNoncentralChiSquare, "lambda", lambda); err != nil {
		return NoncentralChiSquare{}, err
	}
	if err := checkPositive(FamilyNoncentralChiSquare, "scale", scale); err != nil {
		return NoncentralChiSquare{}, err
	}
	return NoncentralChiSquare{k: k, lambda: lambda, scale: scale}, nil
}

func (d NoncentralChiSquare) DoF() int        { return d.k }
func (d NoncentralChiSquare) Lambda() float64 { return d.lambda }
func (d NoncentralChiSquare) Scale() float64  { return d.scale }

func (NoncentralChiSquare) Family() Family { return FamilyNoncentralChiSquare }
func (d NoncentralChiSquare) fields() []field {
	return []field{
		{name: "k", value: float64(d.k), integer: true},
		{name: "lambda", value: d.lambda},
		{name: "scale", value: d.scale},
	}
}
func (d NoncentralChiSquare) Params() []float64 { return paramValues(d.fields()) }

func (d NoncentralChiSquare) unit() (l, s2 float64) {
	s2 = d.scale * d.scale
	return d.lambda / s2, s2
}

func (d NoncentralChiSquare) PDF(x float64) float64 {
	l, s2 := d.unit()
	k, y := float64(d.k), x/s2
	switch {
	case y < 0:
		return 0
	case l == 0:
		return ChiSquare{k: d.k}.PDF(y) / s2
	case y == 0:
		switch {
		case d.k == 1:
			return math.Inf(1)
		case d.k == 2:
			return 0.5 * math.Exp(-l/2) / s2
		}
		return 0
	}
	r := math.Sqrt(y) - math.Sqrt(l)
	p := 0.5 * math.Exp(-r*r/2) * math.Pow(y/l, k/4-0.5) * special.BesselIe(k/2-1, math.Sqrt(l*y))
	return p / s2
}

func (d NoncentralChiSquare) CDF(x float64) float64 {
	l, s2 := d.unit()
	if x <= 0 {
		return 0
	}
	return special.MarcumP(float64(d.k)/2, math.Sqrt(l), math.Sqrt(x/s2))
}

func (d NoncentralChiSquare) Mean() (float64, error) {
	return d.scale*d.scale*float64(d.k) + d.lambda, nil
}

func (d NoncentralChiSquare) Variance() (float64, error) {
	l, s2 := d.unit()
	return s2 * s2 * 2 * (float64(d.k) + 2*l), nil
}

func (d NoncentralChiSquare) StdDev() (float64, error) { return stdDevOf(d.Variance()) }

func (d NoncentralChiSquare) Skewness() (float64, error) {
	l, _ := d.unit()
	k := float64(d.k)
	return math.Pow(2, 1.5) * (k + 3*l) / math.Pow(k+2*l, 1.5), nil
}

func (d NoncentralChiSquare) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d NoncentralChiSquare) Clone() Distribution { return d }
func (d NoncentralChiSquare) String() string      { return render(d.Family(), d.fields()) }

func (d NoncentralChiSquare) EqualTol(o Distribution, tol float64) bool {
	return equalTol(d, o, tol)
}
func (d NoncentralChiSquare) EqualULP(o Distribution, ulps uint) bool {
	return equalULP(d, o, ulps)
}
