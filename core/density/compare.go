package density

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// field is one named parameter of a family.
type field struct {
	name    string
	value   float64
	integer bool
}

type fielder interface {
	Family() Family
	fields() []field
}

func equalTol(a fielder, b Distribution, tol float64) bool {
	return equalFields(a, b, func(x, y float64) bool {
		return scalar.EqualWithinAbs(x, y, tol)
	})
}

func equalULP(a fielder, b Distribution, ulps uint) bool {
	return equalFields(a, b, func(x, y float64) bool {
		return scalar.EqualWithinULP(x, y, ulps)
	})
}

func equalFields(a fielder, b Distribution, eq func(x, y float64) bool) bool {
	bf, ok := b.(fielder)
	if !ok || a.Family() != bf.Family() {
		return false
	}
	fa, fb := a.fields(), bf.fields()
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i].integer {
			if fa[i].value != fb[i].value {
				return false
			}
			continue
		}
		if !eq(fa[i].value, fb[i].value) {
			return false
		}
	}
	return true
}

func paramValues(fs []field) []float64 {
	out := make([]float64, len(fs))
	for i, fd := range fs {
		out[i] = fd.value
	}
	return out
}

func render(f Family, fs []field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s distribution", f)
	if len(fs) == 0 {
		return b.String()
	}
	b.WriteString(" --")
	for _, fd := range fs {
		v := strconv.FormatFloat(fd.value, 'g', -1, 64)
		if fd.integer {
			v = strconv.Itoa(int(fd.value))
		}
		fmt.Fprintf(&b, " %s = %s ", fd.name, v)
	}
	return strings.TrimRight(b.String(), " ")
}
