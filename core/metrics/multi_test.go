package metrics

import (
	"errors"
	"testing"
)

type countRecorder struct {
	rules, scenarios int
	err              error
}

func (r *countRecorder) RecordRule(RuleEvent) error {
	r.rules++
	return r.err
}

func (r *countRecorder) RecordScenario(ScenarioEvent) error {
	r.scenarios++
	return r.err
}

type ruleOnly struct{ n int }

func (r *ruleOnly) RecordRule(RuleEvent) error {
	r.n++
	return nil
}

// TestMultiRecorder ensures events are forwarded to all recorders.
func TestMultiRecorder(t *testing.T) {
	r1, r2, r3 := &countRecorder{}, &countRecorder{}, &ruleOnly{}
	m := NewMultiRecorder(r1, r2, r3)
	if err := m.RecordRule(RuleEvent{Table: "sum", Outcome: OutcomeOK}); err != nil {
		t.Fatalf("record rule: %v", err)
	}
	if err := m.RecordScenario(ScenarioEvent{Scenario: "s"}); err != nil {
		t.Fatalf("record scenario: %v", err)
	}
	if r1.rules != 1 || r2.rules != 1 || r3.n != 1 {
		t.Fatalf("rule events not forwarded")
	}
	if r1.scenarios != 1 || r2.scenarios != 1 {
		t.Fatalf("scenario events not forwarded")
	}
}

func TestMultiRecorder_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	r1, r2 := &countRecorder{err: boom}, &countRecorder{}
	m := NewMultiRecorder(r1, r2)
	if err := m.RecordRule(RuleEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if r2.rules != 0 {
		t.Fatal("second recorder should not be reached")
	}
}

type closer struct {
	ruleOnly
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestMultiRecorder_Close(t *testing.T) {
	boom := errors.New("boom")
	c1, c2 := &closer{}, &closer{err: boom}
	m := NewMultiRecorder(c1, &ruleOnly{}, c2)
	if err := m.Close(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !c1.closed || !c2.closed {
		t.Fatal("every closer must be closed")
	}
}
