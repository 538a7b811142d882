package special

import "math"

// Hyp1F1 returns Kummer's confluent hypergeometric function M(a; b; x).
// Negative arguments go through Kummer's transformation
// M(a; b; x) = e^x M(b-a; b; -x) so the summed series has no cancellation.
// NaN is returned when the series does not converge.
func Hyp1F1(a, b, x float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(x) {
		return math.NaN()
	}
	if b <= 0 && b == math.Trunc(b) {
		return math.NaN()
	}
	if x == 0 {
		return 1
	}
	if x < 0 {
		return kummerSeries(b-a, b, -x, x)
	}
	return kummerSeries(a, b, x, 0)
}

// kummerSeries returns exp(offset)·M(c; b; y) for y > 0. When the largest
// term sits away from n = 0 the sum starts there and walks both ways.
func kummerSeries(c, b, y, offset float64) float64 {
	if c <= 0 && c == math.Trunc(c) {
		// Polynomial.
		return kummerForward(c, b, y, offset)
	}
	// The term ratio (c+n)y / ((b+n)(n+1)) crosses 1 at the larger root of
	// n² + (b+1-y)n + b - cy.
	var n0 float64
	if disc := (y-b-1)*(y-b-1) - 4*(b-c*y); disc >= 0 {
		n0 = math.Max(0, math.Floor((y-b-1+math.Sqrt(disc))/2))
	}
	if n0 == 0 {
		return kummerForward(c, b, y, offset)
	}

	lcn, s1 := math.Lgamma(c + n0)
	lc, s2 := math.Lgamma(c)
	lbn, s3 := math.Lgamma(b + n0)
	lb, s4 := math.Lgamma(b)
	lf, _ := math.Lgamma(n0 + 1)
	peak := offset + lcn - lc - lbn + lb + n0*math.Log(y) - lf
	sign := float64(s1 * s2 * s3 * s4)

	sum := 1.0
	t := 1.0
	n := n0
	for i := 0; ; i++ {
		if i == maxIter {
			return math.NaN()
		}
		ratio := (c + n) / (b + n) * y / (n + 1)
		t *= ratio
		sum += t
		n++
		if math.Abs(ratio) < 1 && math.Abs(t) <= epsilon*math.Abs(sum) {
			break
		}
	}
	t = 1
	for n = n0; n > 0; n-- {
		t *= (b + n - 1) * n / ((c + n - 1) * y)
		sum += t
		if c+n-1 > 0 && b+n-1 > 0 && math.Abs(t) <= epsilon*math.Abs(sum) {
			break
		}
	}
	return sign * math.Exp(peak) * sum
}

// kummerForward sums the series from n = 0 with the terms tracked as
// (log magnitude, sign) pairs.
func kummerForward(c, b, y, offset float64) float64 {
	ly := math.Log(y)
	logt := offset
	sign := 1.0
	sum := math.Exp(logt)
	for n := 0; ; n++ {
		if n == maxIter {
			return math.NaN()
		}
		fn := float64(n)
		num := c + fn
		if num == 0 {
			break
		}
		den := b + fn
		logt += math.Log(math.Abs(num)) - math.Log(math.Abs(den)) + ly - math.Log(fn+1)
		if (num < 0) != (den < 0) {
			sign = -sign
		}
		term := sign * math.Exp(logt)
		sum += term
		shrinking := math.Abs(num/den)*y/(fn+1) < 1
		if shrinking && math.Abs(term) <= epsilon*math.Abs(sum) {
			break
		}
	}
	return sum
}
