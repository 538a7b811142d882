package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromRecorder_RecordRule(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorderWithRegistry(reg)
	if err != nil {
		t.Fatalf("create recorder: %v", err)
	}
	for _, o := range []coremetrics.Outcome{coremetrics.OutcomeOK, coremetrics.OutcomeOK, coremetrics.OutcomeNoRule} {
		if err := rec.RecordRule(coremetrics.RuleEvent{
			Table:    "sum",
			Lhs:      "Normal",
			Rhs:      "Normal",
			Outcome:  o,
			Duration: 3 * time.Microsecond,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	expected := `
# HELP distalg_rule_dispatch_total Total number of combination rule dispatches
# TYPE distalg_rule_dispatch_total counter
distalg_rule_dispatch_total{lhs="Normal",outcome="no_rule",rhs="Normal",table="sum"} 1
distalg_rule_dispatch_total{lhs="Normal",outcome="ok",rhs="Normal",table="sum"} 2
`
	if err := testutil.CollectAndCompare(rec.rules, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(rec.ruleLatency); c != 2 {
		t.Errorf("expected 2 latency series, got %d", c)
	}
}

func TestPromRecorder_RecordScenario(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorderWithRegistry(reg)
	if err != nil {
		t.Fatalf("create recorder: %v", err)
	}
	_ = rec.RecordScenario(coremetrics.ScenarioEvent{Scenario: "noise", Op: "rss", Duration: time.Millisecond})
	_ = rec.RecordScenario(coremetrics.ScenarioEvent{Scenario: "noise", Op: "rss", Err: true})

	if v := testutil.ToFloat64(rec.scenarios.WithLabelValues("noise", "rss", "false")); v != 1 {
		t.Errorf("expected 1 successful run, got %v", v)
	}
	if v := testutil.ToFloat64(rec.scenarios.WithLabelValues("noise", "rss", "true")); v != 1 {
		t.Errorf("expected 1 failed run, got %v", v)
	}
}

func TestPromRecorder_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromRecorderWithRegistry(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPromRecorderWithRegistry(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.rules != second.rules {
		t.Fatal("expected the registered counter to be reused")
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorderWithRegistry(reg)
	if err != nil {
		t.Fatalf("create recorder: %v", err)
	}
	_ = rec.RecordRule(coremetrics.RuleEvent{Table: "sum", Lhs: "Gamma", Rhs: "Gamma", Outcome: coremetrics.OutcomePrecondition})

	path := filepath.Join(t.TempDir(), "distalg.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `distalg_rule_dispatch_total{lhs="Gamma",outcome="precondition",rhs="Gamma",table="sum"} 1`) {
		t.Fatalf("textfile missing counter:\n%s", data)
	}
}
