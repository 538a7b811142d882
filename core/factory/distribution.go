package factory

import (
	"fmt"
	"math"
	"strings"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/mixture"
)

// Config describes a distribution in configuration files. Components and
// Weight only apply to mixtures and their entries.
type Config struct {
	Family     string         `json:"family" yaml:"family"`
	Params     map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Weight     float64        `json:"weight,omitempty" yaml:"weight,omitempty"`
	Components []Config       `json:"components,omitempty" yaml:"components,omitempty"`
}

var builtins = NewRegistry[density.Distribution]()

// paramNames lists the accepted parameter keys of each family in the order
// returned by Distribution.Params.
var paramNames = map[density.Family][]string{
	density.FamilyStdUniform:          nil,
	density.FamilyUniform:             {"lower", "upper"},
	density.FamilyNormal:              {"mean", "variance"},
	density.FamilyCauchy:              {"location", "scale"},
	density.FamilyGamma:               {"scale", "shape"},
	density.FamilyExponential:         {"rate"},
	density.FamilyErlang:              {"shape", "rate"},
	density.FamilyChi:                 {"k", "scale"},
	density.FamilyChiSquare:           {"k"},
	density.FamilyNoncentralChi:       {"k", "distance", "scale"},
	density.FamilyNoncentralChiSquare: {"k", "lambda", "scale"},
	density.FamilyRayleigh:            {"scale"},
	density.FamilyRician:              {"distance", "scale"},
	density.FamilyIrwinHall:           {"n"},
}

// ParamNames returns the parameter keys accepted for f.
func ParamNames(f density.Family) []string {
	return append([]string(nil), paramNames[f]...)
}

// params is the union of every family's parameters. Scale defaults to 1
// where the family allows it.
type params struct {
	Lower    float64  `json:"lower"`
	Upper    float64  `json:"upper"`
	Mean     float64  `json:"mean"`
	Variance float64  `json:"variance"`
	Location float64  `json:"location"`
	Scale    *float64 `json:"scale"`
	Shape    float64  `json:"shape"`
	Rate     float64  `json:"rate"`
	K        float64  `json:"k"`
	N        float64  `json:"n"`
	Distance float64  `json:"distance"`
	Lambda   float64  `json:"lambda"`
}

func (p params) scale(def float64) float64 {
	if p.Scale == nil {
		return def
	}
	return *p.Scale
}

func count(f density.Family, name string, v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %s must be an integer, got %v", density.ErrInvalidParameter, f, name, v)
	}
	if math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s %s is out of range, got %v", density.ErrInvalidParameter, f, name, v)
	}
	return int(v), nil
}

// builder decodes the parameter map for f, rejecting keys the family does
// not accept, and hands the typed parameters to build.
func builder(f density.Family, build func(p params) (density.Distribution, error)) Factory[density.Distribution] {
	return func(conf map[string]any) (density.Distribution, error) {
		allowed := make(map[string]bool, len(paramNames[f]))
		for _, n := range paramNames[f] {
			allowed[n] = true
		}
		for k := range conf {
			if !allowed[k] {
				return nil, fmt.Errorf("%w: %s has no parameter %q", density.ErrInvalidParameter, f, k)
			}
		}
		var p params
		if err := DecodeStrict(conf, &p); err != nil {
			return nil, fmt.Errorf("decode %s parameters: %w", f, err)
		}
		return build(p)
	}
}

func register(f density.Family, build func(p params) (density.Distribution, error)) {
	if err := builtins.Register(f.String(), builder(f, build)); err != nil {
		panic(err)
	}
}

func init() {
	register(density.FamilyStdUniform, func(params) (density.Distribution, error) {
		return density.NewStdUniform(), nil
	})
	register(density.FamilyUniform, func(p params) (density.Distribution, error) {
		return density.NewUniform(p.Lower, p.Upper)
	})
	register(density.FamilyNormal, func(p params) (density.Distribution, error) {
		return density.NewNormal(p.Mean, p.Variance)
	})
	register(density.FamilyCauchy, func(p params) (density.Distribution, error) {
		return density.NewCauchy(p.Location, p.scale(1))
	})
	register(density.FamilyGamma, func(p params) (density.Distribution, error) {
		return density.NewGamma(p.scale(1), p.Shape)
	})
	register(density.FamilyExponential, func(p params) (density.Distribution, error) {
		return density.NewExponential(p.Rate)
	})
	register(density.FamilyErlang, func(p params) (density.Distribution, error) {
		k, err := count(density.FamilyErlang, "shape", p.Shape)
		if err != nil {
			return nil, err
		}
		return density.NewErlang(k, p.Rate)
	})
	register(density.FamilyChi, func(p params) (density.Distribution, error) {
		k, err := count(density.FamilyChi, "k", p.K)
		if err != nil {
			return nil, err
		}
		return density.NewChi(k, p.scale(1))
	})
	register(density.FamilyChiSquare, func(p params) (density.Distribution, error) {
		k, err := count(density.FamilyChiSquare, "k", p.K)
		if err != nil {
			return nil, err
		}
		return density.NewChiSquare(k)
	})
	register(density.FamilyNoncentralChi, func(p params) (density.Distribution, error) {
		k, err := count(density.FamilyNoncentralChi, "k", p.K)
		if err != nil {
			return nil, err
		}
		return density.NewNoncentralChi(k, p.Distance, p.scale(1))
	})
	register(density.FamilyNoncentralChiSquare, func(p params) (density.Distribution, error) {
		k, err := count(density.FamilyNoncentralChiSquare, "k", p.K)
		if err != nil {
			return nil, err
		}
		return density.NewScaledNoncentralChiSquare(k, p.Lambda, p.scale(1))
	})
	register(density.FamilyRayleigh, func(p params) (density.Distribution, error) {
		return density.NewRayleigh(p.scale(1))
	})
	register(density.FamilyRician, func(p params) (density.Distribution, error) {
		return density.NewRician(p.Distance, p.scale(1))
	})
	register(density.FamilyIrwinHall, func(p params) (density.Distribution, error) {
		n, err := count(density.FamilyIrwinHall, "n", p.N)
		if err != nil {
			return nil, err
		}
		return density.NewIrwinHall(n)
	})
}

// NewDistribution builds the distribution described by cfg. Mixtures are
// built recursively from their components; a component without a weight
// counts as weight 1.
func NewDistribution(cfg Config) (density.Distribution, error) {
	f, err := density.ParseFamily(cfg.Family)
	if err != nil {
		return nil, err
	}
	if f != density.FamilyMixture {
		if len(cfg.Components) > 0 {
			return nil, fmt.Errorf("%w: %s does not take components", density.ErrInvalidParameter, f)
		}
		return builtins.Create(ModuleConfig{Type: f.String(), Conf: cfg.Params})
	}
	if len(cfg.Params) > 0 {
		return nil, fmt.Errorf("%w: mixture parameters are given through components", density.ErrInvalidParameter)
	}
	m := mixture.New()
	for i, c := range cfg.Components {
		d, err := NewDistribution(c)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		w := c.Weight
		if w == 0 {
			w = 1
		}
		if err := m.Insert(d, w); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return m, nil
}

// ConfigOf describes d in the form accepted by NewDistribution.
func ConfigOf(d density.Distribution) Config {
	cfg := Config{Family: d.Family().String()}
	if m, ok := d.(*mixture.Mixture); ok {
		for _, e := range m.Entries() {
			c := ConfigOf(e.Dist)
			c.Weight = e.Weight
			cfg.Components = append(cfg.Components, c)
		}
		return cfg
	}
	names := paramNames[d.Family()]
	values := d.Params()
	if len(names) > 0 {
		cfg.Params = make(map[string]any, len(names))
	}
	for i, n := range names {
		cfg.Params[n] = values[i]
	}
	return cfg
}

// ParseSpec parses the short form "family:key=value,key=value". The family
// alone is enough for parameterless families.
func ParseSpec(spec string) (Config, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(spec), ":")
	if name == "" {
		return Config{}, fmt.Errorf("empty distribution spec %q", spec)
	}
	cfg := Config{Family: name}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return cfg, nil
	}
	cfg.Params = make(map[string]any)
	for _, kv := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(kv, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return Config{}, fmt.Errorf("malformed parameter %q in spec %q", kv, spec)
		}
		if _, dup := cfg.Params[k]; dup {
			return Config{}, fmt.Errorf("duplicate parameter %q in spec %q", k, spec)
		}
		cfg.Params[k] = v
	}
	return cfg, nil
}
