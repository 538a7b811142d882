package metrics

import (
	"strconv"

	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromRecorder exposes rule dispatches and scenario runs as Prometheus
// metrics.
type PromRecorder struct {
	rules           *prometheus.CounterVec
	ruleLatency     *prometheus.HistogramVec
	scenarios       *prometheus.CounterVec
	scenarioLatency *prometheus.HistogramVec
}

// NewPromRecorder registers the collectors on the default Prometheus
// registerer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers the collectors on reg. A nil
// registerer defaults to the global one. Collectors that are already
// registered are reused.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rules, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distalg_rule_dispatch_total",
		Help: "Total number of combination rule dispatches",
	}, []string{"table", "lhs", "rhs", "outcome"}))
	if err != nil {
		return nil, err
	}
	ruleLatency, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "distalg_rule_dispatch_seconds",
		Help:    "Time spent evaluating a combination rule",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
	}, []string{"table", "outcome"}))
	if err != nil {
		return nil, err
	}
	scenarios, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distalg_scenario_runs_total",
		Help: "Total number of evaluated scenarios",
	}, []string{"scenario", "op", "failed"}))
	if err != nil {
		return nil, err
	}
	scenarioLatency, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "distalg_scenario_seconds",
		Help:    "Time spent evaluating a scenario",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"}))
	if err != nil {
		return nil, err
	}
	return &PromRecorder{
		rules:           rules,
		ruleLatency:     ruleLatency,
		scenarios:       scenarios,
		scenarioLatency: scenarioLatency,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *PromRecorder) RecordRule(ev coremetrics.RuleEvent) error {
	r.rules.WithLabelValues(ev.Table, ev.Lhs, ev.Rhs, string(ev.Outcome)).Inc()
	r.ruleLatency.WithLabelValues(ev.Table, string(ev.Outcome)).Observe(ev.Duration.Seconds())
	return nil
}

func (r *PromRecorder) RecordScenario(ev coremetrics.ScenarioEvent) error {
	r.scenarios.WithLabelValues(ev.Scenario, ev.Op, strconv.FormatBool(ev.Err)).Inc()
	r.scenarioLatency.WithLabelValues(ev.Op).Observe(ev.Duration.Seconds())
	return nil
}
