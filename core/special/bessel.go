package special

import "math"

const (
	epsilon = 1e-17
	// maxIter caps each direction of a peak-centered series walk. A walk
	// that has not converged by then yields NaN.
	maxIter = 1000000
)

// BesselIe returns the exponentially scaled modified Bessel function of the
// first kind, exp(-z)·I_nu(z), for z >= 0.
//
// Large arguments use the Hankel asymptotic expansion. Otherwise the power
// series is summed outward from its largest term, so the number of terms
// grows with sqrt(z) rather than z.
func BesselIe(nu, z float64) float64 {
	switch {
	case z < 0 || math.IsNaN(z) || math.IsNaN(nu):
		return math.NaN()
	case z == 0:
		if nu == 0 {
			return 1
		}
		if nu > 0 {
			return 0
		}
		return math.Inf(1)
	case math.IsInf(z, 1):
		return 0
	}
	// I_{-n} = I_n for integer n.
	if nu < 0 && nu == math.Trunc(nu) {
		nu = -nu
	}
	if z >= 100 && z >= 4*nu*nu {
		return besselIeHankel(nu, z)
	}
	return besselIeSeries(nu, z)
}

// besselIeSeries sums Σ (z/2)^(2m+nu) / (m! Γ(m+nu+1)) starting at the
// peak term m0, the root of (m+1)(m+nu+1) = (z/2)². Terms are kept relative
// to the peak and the peak magnitude is applied once at the end.
func besselIeSeries(nu, z float64) float64 {
	half := z / 2
	q := half * half
	m0 := math.Max(0, math.Floor((math.Sqrt(nu*nu+z*z)-nu-2)/2))

	lf, _ := math.Lgamma(m0 + 1)
	lg, sign := math.Lgamma(m0 + nu + 1)
	peak := (2*m0+nu)*math.Log(half) - lf - lg - z

	sum := 1.0
	t := 1.0
	m := m0
	for i := 0; ; i++ {
		if i == maxIter {
			return math.NaN()
		}
		t *= q / ((m + 1) * (m + nu + 1))
		sum += t
		m++
		if math.Abs(t) <= epsilon*math.Abs(sum) {
			break
		}
	}
	t = 1
	for m = m0; m > 0; m-- {
		t *= m * (m + nu) / q
		sum += t
		// Below m = -nu the terms can change sign, so keep going.
		if m+nu > 0 && math.Abs(t) <= epsilon*math.Abs(sum) {
			break
		}
	}
	return float64(sign) * math.Exp(peak) * sum
}

// besselIeHankel evaluates exp(-z)·I_nu(z) ~ (2πz)^(-1/2) Σ (-1)^k a_k(nu)/z^k
// and stops at the smallest term.
func besselIeHankel(nu, z float64) float64 {
	mu := 4 * nu * nu
	sum := 1.0
	t := 1.0
	for k := 1; k < 200; k++ {
		odd := float64(2*k - 1)
		next := -t * (mu - odd*odd) / (float64(k) * 8 * z)
		if math.Abs(next) >= math.Abs(t) {
			break
		}
		t = next
		sum += t
		if math.Abs(t) <= epsilon*math.Abs(sum) {
			break
		}
	}
	return sum / math.Sqrt(2*math.Pi*z)
}

// BesselI returns the modified Bessel function of the first kind I_nu(z) for
// z >= 0.
func BesselI(nu, z float64) float64 {
	return BesselIe(nu, z) * math.Exp(z)
}
