package density

import "math"

// IrwinHall is the distribution of the sum of n independent StdUniform
// variables.
type IrwinHall struct {
	n int
}

func NewIrwinHall(n int) (IrwinHall, error) {
	if err := checkCount(FamilyIrwinHall, "n", n); err != nil {
		return IrwinHall{}, err
	}
	return IrwinHall{n: n}, nil
}

func (d IrwinHall) N() int { return d.n }

func (IrwinHall) Family() Family { return FamilyIrwinHall }
func (d IrwinHall) fields() []field {
	return []field{{name: "n", value: float64(d.n), integer: true}}
}
func (d IrwinHall) Params() []float64 { return paramValues(d.fields()) }

func (d IrwinHall) PDF(x float64) float64 {
	n := float64(d.n)
	if x < 0 || x > n {
		return 0
	}
	lf, _ := math.Lgamma(n)
	return math.Max(0, alternatingSum(d.n, x, n-1)/math.Exp(lf))
}

func (d IrwinHall) CDF(x float64) float64 {
	n := float64(d.n)
	switch {
	case x <= 0:
		return 0
	case x >= n:
		return 1
	}
	lf, _ := math.Lgamma(n + 1)
	return math.Min(1, math.Max(0, alternatingSum(d.n, x, n)/math.Exp(lf)))
}

// alternatingSum returns Σ_{k=0}^{⌊x⌋} (-1)^k C(n, k) (x-k)^p.
func alternatingSum(n int, x, p float64) float64 {
	var sum float64
	binom := 1.0
	top := int(math.Floor(x))
	if top > n {
		top = n
	}
	for k := 0; k <= top; k++ {
		term := binom * math.Pow(x-float64(k), p)
		if k%2 == 1 {
			term = -term
		}
		sum += term
		binom = binom * float64(n-k) / float64(k+1)
	}
	return sum
}

func (d IrwinHall) Mean() (float64, error)     { return float64(d.n) / 2, nil }
func (d IrwinHall) Variance() (float64, error) { return float64(d.n) / 12, nil }
func (d IrwinHall) StdDev() (float64, error)   { return stdDevOf(d.Variance()) }
func (IrwinHall) Skewness() (float64, error)   { return 0, nil }

func (d IrwinHall) Hash() uint64        { return hashFields(d.Family(), d.fields()) }
func (d IrwinHall) Clone() Distribution { return d }
func (d IrwinHall) String() string      { return render(d.Family(), d.fields()) }

func (d IrwinHall) EqualTol(o Distribution, tol float64) bool { return equalTol(d, o, tol) }
func (d IrwinHall) EqualULP(o Distribution, ulps uint) bool   { return equalULP(d, o, ulps) }
