package metrics

import "time"

// Outcome classifies the result of a rule dispatch.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeNoRule       Outcome = "no_rule"
	OutcomePrecondition Outcome = "precondition"
	OutcomeError        Outcome = "error"
)

// RuleEvent describes one lookup in a dispatch table.
type RuleEvent struct {
	Table    string
	Lhs      string
	Rhs      string
	Outcome  Outcome
	Duration time.Duration
	Time     time.Time
}

// Recorder records rule dispatches.
type Recorder interface {
	RecordRule(ev RuleEvent) error
}

// ScenarioEvent summarizes the evaluation of one configured scenario.
type ScenarioEvent struct {
	RunID    string
	Scenario string
	Op       string
	Family   string
	Operands int
	Err      bool
	Duration time.Duration
	Time     time.Time
}

// ScenarioRecorder is implemented by sinks able to record scenario runs.
type ScenarioRecorder interface {
	RecordScenario(ev ScenarioEvent) error
}

// NopRecorder implements every recorder interface with no-op methods.
type NopRecorder struct{}

func (NopRecorder) RecordRule(RuleEvent) error         { return nil }
func (NopRecorder) RecordScenario(ScenarioEvent) error { return nil }
