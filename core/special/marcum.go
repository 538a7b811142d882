package special

import "math"

// MarcumQ returns the generalized Marcum Q-function Q_m(a, b) for a, b >= 0
// and m > 0. It is evaluated as a Poisson(a²/2) weighted sum of regularized
// upper incomplete gamma functions, which holds for non-integer m as well.
// NaN is returned when the sum does not converge.
func MarcumQ(m, a, b float64) float64 {
	if b <= 0 {
		return 1
	}
	return clamp01(poissonGammaSum(m, a, b, RegUpperGamma))
}

// MarcumP returns 1 - Q_m(a, b), summed directly so that values near zero keep
// their precision.
func MarcumP(m, a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return clamp01(poissonGammaSum(m, a, b, RegLowerGamma))
}

// poissonGammaSum returns Σ_j Pois(j; a²/2)·g(m+j, b²/2). The walk starts at
// the Poisson mode and moves outward in both directions until the terms are
// decreasing and negligible.
func poissonGammaSum(m, a, b float64, g func(s, z float64) float64) float64 {
	x := b * b / 2
	mu := a * a / 2
	if mu == 0 {
		return g(m, x)
	}
	j0 := math.Floor(mu)
	w0 := math.Exp(logPoisson(j0, mu))
	t0 := w0 * g(m+j0, x)
	sum := t0

	w, prev := w0, t0
	for j, i := j0, 0; ; j, i = j+1, i+1 {
		if i == maxIter {
			return math.NaN()
		}
		w *= mu / (j + 1)
		t := w * g(m+j+1, x)
		sum += t
		if t <= prev && t <= epsilon*sum {
			break
		}
		prev = t
	}
	w, prev = w0, t0
	for j := j0; j > 0; j-- {
		w *= j / mu
		t := w * g(m+j-1, x)
		sum += t
		if t <= prev && t <= epsilon*sum {
			break
		}
		prev = t
	}
	return sum
}

// logPoisson returns log(e^-mu mu^j / j!). Past small j it uses the
// saddle-point form so the result keeps its precision when mu is large.
func logPoisson(j, mu float64) float64 {
	if j <= 15 {
		lf, _ := math.Lgamma(j + 1)
		return -mu + j*math.Log(mu) - lf
	}
	d := mu - j
	return -d + j*math.Log1p(d/j) - 0.5*math.Log(2*math.Pi*j) - stirlingError(j)
}

// stirlingError returns log(n!) - log(sqrt(2πn)(n/e)^n).
func stirlingError(n float64) float64 {
	if n <= 15 {
		lf, _ := math.Lgamma(n + 1)
		return lf - (n+0.5)*math.Log(n) + n - 0.5*math.Log(2*math.Pi)
	}
	n2 := n * n
	return (1.0/12 - (1.0/360-1/(1260*n2))/n2) / n
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
