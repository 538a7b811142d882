package metrics

import (
	"github.com/kilianp07/distalg/core/logger"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
)

// LogRecorder writes events to a logger instead of a metrics backend.
type LogRecorder struct {
	log logger.Logger
}

func NewLogRecorder(l logger.Logger) *LogRecorder {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &LogRecorder{log: l}
}

func (r *LogRecorder) RecordRule(ev coremetrics.RuleEvent) error {
	r.log.Debugw("rule event", map[string]any{
		"table":    ev.Table,
		"lhs":      ev.Lhs,
		"rhs":      ev.Rhs,
		"outcome":  string(ev.Outcome),
		"duration": ev.Duration.String(),
	})
	return nil
}

func (r *LogRecorder) RecordScenario(ev coremetrics.ScenarioEvent) error {
	status := "ok"
	if ev.Err {
		status = "failed"
	}
	r.log.Infof("scenario %s %s: %s over %d operands -> %s in %s (run %s)",
		ev.Scenario, status, ev.Op, ev.Operands, ev.Family, ev.Duration, ev.RunID)
	return nil
}
