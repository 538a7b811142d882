// Package mixture implements a weighted container of distributions. A Mixture
// is itself a density.Distribution whose pdf, cdf and moments aggregate its
// components through the normalized weights.
package mixture

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kilianp07/distalg/core/density"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrInvalidWeight is returned when a weight is not a positive finite number.
var ErrInvalidWeight = errors.New("invalid mixture weight")

// Entry is one component of a mixture.
type Entry struct {
	Dist density.Distribution
	// Weight is the raw weight given on insertion.
	Weight float64
	// Norm is Weight divided by the sum of all raw weights.
	Norm float64
}

// Group lists the entries of one family.
type Group struct {
	Family  density.Family
	Entries []Entry
}

// Mixture is a weighted collection of distributions. It is not safe for
// concurrent mutation.
type Mixture struct {
	entries []Entry
	total   float64
}

var _ density.Distribution = (*Mixture)(nil)

func New() *Mixture { return &Mixture{} }

// Insert adds a copy of d with the given raw weight and rescales all
// normalized weights. Nothing is modified when an argument is rejected.
func (m *Mixture) Insert(d density.Distribution, weight float64) error {
	if d == nil {
		return fmt.Errorf("%w: nil mixture component", density.ErrInvalidParameter)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	m.entries = append(m.entries, Entry{Dist: d.Clone(), Weight: weight})
	m.total += weight
	m.rescale()
	return nil
}

func (m *Mixture) rescale() {
	for i := range m.entries {
		m.entries[i].Norm = m.entries[i].Weight / m.total
	}
}

// Find returns the first entry whose distribution hashes like d.
func (m *Mixture) Find(d density.Distribution) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	h := d.Hash()
	for _, e := range m.entries {
		if e.Dist.Hash() == h {
			e.Dist = e.Dist.Clone()
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the entries in insertion order. Components are
// cloned, so a nested mixture cannot be modified through the result.
func (m *Mixture) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		e.Dist = e.Dist.Clone()
		out[i] = e
	}
	return out
}

func (m *Mixture) Len() int { return len(m.entries) }

func (m *Mixture) Clear() {
	m.entries = nil
	m.total = 0
}

// Catalog groups the entries by family in ascending tag order. Entries of a
// group are ordered by hash, so the catalog does not depend on insertion
// order.
func (m *Mixture) Catalog() []Group {
	byFamily := make(map[density.Family][]Entry)
	for _, e := range m.Entries() {
		f := e.Dist.Family()
		byFamily[f] = append(byFamily[f], e)
	}
	groups := make([]Group, 0, len(byFamily))
	for f, es := range byFamily {
		sort.SliceStable(es, func(i, j int) bool {
			hi, hj := es[i].Dist.Hash(), es[j].Dist.Hash()
			if hi != hj {
				return hi < hj
			}
			return es[i].Weight < es[j].Weight
		})
		groups = append(groups, Group{Family: f, Entries: es})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Family < groups[j].Family })
	return groups
}

func (m *Mixture) Family() density.Family { return density.FamilyMixture }

// Params returns the raw weights in insertion order.
func (m *Mixture) Params() []float64 {
	out := make([]float64, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Weight
	}
	return out
}

func (m *Mixture) PDF(x float64) float64 {
	var p float64
	for _, e := range m.entries {
		p += e.Norm * e.Dist.PDF(x)
	}
	return p
}

func (m *Mixture) CDF(x float64) float64 {
	var c float64
	for _, e := range m.entries {
		c += e.Norm * e.Dist.CDF(x)
	}
	return c
}

type componentMoments struct {
	w, mean, variance float64
}

func (m *Mixture) components() ([]componentMoments, error) {
	if len(m.entries) == 0 {
		return nil, fmt.Errorf("%w: moments of an empty mixture", density.ErrUndefined)
	}
	out := make([]componentMoments, len(m.entries))
	for i, e := range m.entries {
		mean, err := e.Dist.Mean()
		if err != nil {
			return nil, err
		}
		v, err := e.Dist.Variance()
		if err != nil {
			return nil, err
		}
		out[i] = componentMoments{w: e.Norm, mean: mean, variance: v}
	}
	return out, nil
}

// Mean is the weighted mean of the component means.
func (m *Mixture) Mean() (float64, error) {
	cs, err := m.components()
	if err != nil {
		return 0, err
	}
	return mixtureMean(cs), nil
}

func mixtureMean(cs []componentMoments) float64 {
	var mu float64
	for _, c := range cs {
		mu += c.w * c.mean
	}
	return mu
}

// Variance follows the law of total variance.
func (m *Mixture) Variance() (float64, error) {
	cs, err := m.components()
	if err != nil {
		return 0, err
	}
	return mixtureVariance(cs), nil
}

func mixtureVariance(cs []componentMoments) float64 {
	mu := mixtureMean(cs)
	var v float64
	for _, c := range cs {
		d := c.mean - mu
		v += c.w * (c.variance + d*d)
	}
	return v
}

func (m *Mixture) StdDev() (float64, error) {
	v, err := m.Variance()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Skewness decomposes the third central moment over the components:
// Σ w·(γσ³ + 3σ²(μi-μ) + (μi-μ)³).
func (m *Mixture) Skewness() (float64, error) {
	cs, err := m.components()
	if err != nil {
		return 0, err
	}
	mu, v := mixtureMean(cs), mixtureVariance(cs)
	if v <= 0 {
		return 0, fmt.Errorf("%w: skewness of a degenerate mixture", density.ErrUndefined)
	}
	var m3 float64
	for i, c := range cs {
		g, err := m.entries[i].Dist.Skewness()
		if err != nil {
			return 0, err
		}
		d := c.mean - mu
		m3 += c.w * (g*math.Pow(c.variance, 1.5) + 3*c.variance*d + d*d*d)
	}
	return m3 / math.Pow(v, 1.5), nil
}

// Hash mixes the family tag with the sorted (component hash, raw weight)
// pairs.
func (m *Mixture) Hash() uint64 {
	type pair struct {
		h uint64
		w float64
	}
	ps := make([]pair, len(m.entries))
	for i, e := range m.entries {
		ps[i] = pair{h: e.Dist.Hash(), w: e.Weight}
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].h != ps[j].h {
			return ps[i].h < ps[j].h
		}
		return ps[i].w < ps[j].w
	})
	h := density.NewHasher(density.FamilyMixture)
	for _, p := range ps {
		h.WriteUint64(p.h)
		h.WriteFloat64(p.w)
	}
	return h.Sum64()
}

// Clone returns a deep copy.
func (m *Mixture) Clone() density.Distribution {
	c := &Mixture{entries: make([]Entry, len(m.entries)), total: m.total}
	for i, e := range m.entries {
		e.Dist = e.Dist.Clone()
		c.entries[i] = e
	}
	return c
}

// EqualTol compares two mixtures entry by entry after sorting both by family,
// then parameters, then raw weight, rather than in hash order.
func (m *Mixture) EqualTol(other density.Distribution, tol float64) bool {
	return m.equal(other, func(a, b density.Distribution) bool { return a.EqualTol(b, tol) },
		func(a, b float64) bool { return scalar.EqualWithinAbs(a, b, tol) })
}

// EqualULP is EqualTol with a ULP bound, over the same ordering.
func (m *Mixture) EqualULP(other density.Distribution, ulps uint) bool {
	return m.equal(other, func(a, b density.Distribution) bool { return a.EqualULP(b, ulps) },
		func(a, b float64) bool { return scalar.EqualWithinULP(a, b, ulps) })
}

func (m *Mixture) equal(other density.Distribution, dist func(a, b density.Distribution) bool, weight func(a, b float64) bool) bool {
	o, ok := other.(*Mixture)
	if !ok || o == nil || len(o.entries) != len(m.entries) {
		return false
	}
	a, b := m.canonical(), o.canonical()
	for i := range a {
		if !dist(a[i].Dist, b[i].Dist) || !weight(a[i].Weight, b[i].Weight) {
			return false
		}
	}
	return true
}

// canonical orders the entries by family, then parameters, then weight.
func (m *Mixture) canonical() []Entry {
	es := append([]Entry(nil), m.entries...)
	sort.SliceStable(es, func(i, j int) bool {
		fi, fj := es[i].Dist.Family(), es[j].Dist.Family()
		if fi != fj {
			return fi < fj
		}
		if c := compareParams(es[i].Dist.Params(), es[j].Dist.Params()); c != 0 {
			return c < 0
		}
		return es[i].Weight < es[j].Weight
	})
	return es
}

func compareParams(a, b []float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return len(a) - len(b)
}

// String renders the catalog, one line per entry.
func (m *Mixture) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s distribution -- %d components", density.FamilyMixture, len(m.entries))
	for _, g := range m.Catalog() {
		for _, e := range g.Entries {
			line := strings.ReplaceAll(e.Dist.String(), "\n", "\n  ")
			fmt.Fprintf(&b, "\n  w = %s  %s", strconv.FormatFloat(e.Norm, 'g', 6, 64), line)
		}
	}
	return b.String()
}
