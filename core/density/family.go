package density

import (
	"fmt"
	"strings"
)

// Family identifies a distribution family. The set is closed.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyStdUniform
	FamilyUniform
	FamilyNormal
	FamilyCauchy
	FamilyGamma
	FamilyExponential
	FamilyErlang
	FamilyChi
	FamilyChiSquare
	FamilyNoncentralChi
	FamilyNoncentralChiSquare
	FamilyRayleigh
	FamilyRician
	FamilyIrwinHall
	FamilyMixture
)

var familyNames = [...]string{
	FamilyUnknown:             "Unknown",
	FamilyStdUniform:          "StdUniform",
	FamilyUniform:             "Uniform",
	FamilyNormal:              "Normal",
	FamilyCauchy:              "Cauchy",
	FamilyGamma:               "Gamma",
	FamilyExponential:         "Exponential",
	FamilyErlang:              "Erlang",
	FamilyChi:                 "Chi",
	FamilyChiSquare:           "ChiSquare",
	FamilyNoncentralChi:       "NoncentralChi",
	FamilyNoncentralChiSquare: "NoncentralChiSquare",
	FamilyRayleigh:            "Rayleigh",
	FamilyRician:              "Rician",
	FamilyIrwinHall:           "IrwinHall",
	FamilyMixture:             "Mixture",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Valid reports whether f is one of the enumerated families.
func (f Family) Valid() bool {
	return f > FamilyUnknown && f <= FamilyMixture
}

// Families returns every valid family in tag order.
func Families() []Family {
	out := make([]Family, 0, len(familyNames)-1)
	for f := FamilyStdUniform; f <= FamilyMixture; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFamily resolves a family name. Matching ignores case and the
// separators '-', '_' and ' ', so "noncentral-chi-square" is accepted.
func ParseFamily(s string) (Family, error) {
	key := normalizeName(s)
	for f := FamilyStdUniform; f <= FamilyMixture; f++ {
		if normalizeName(familyNames[f]) == key {
			return f, nil
		}
	}
	if f, ok := familyAliases[key]; ok {
		return f, nil
	}
	return FamilyUnknown, fmt.Errorf("unknown distribution family %q", s)
}

var familyAliases = map[string]Family{
	"gaussian":    FamilyNormal,
	"chisquared":  FamilyChiSquare,
	"chi2":        FamilyChiSquare,
	"rice":        FamilyRician,
	"exp":         FamilyExponential,
	"unit":        FamilyStdUniform,
	"ncchi":       FamilyNoncentralChi,
	"ncchisquare": FamilyNoncentralChiSquare,
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
