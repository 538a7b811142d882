package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/kilianp07/distalg/core/factory"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfluxRecorder_RecordScenario(t *testing.T) {
	var (
		mu    sync.Mutex
		body  string
		query string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		body, query = string(data), r.URL.RawQuery
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rec := NewInfluxRecorder(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "lab", Bucket: "runs"})
	defer func() { _ = rec.Close() }()

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	ev := coremetrics.ScenarioEvent{
		RunID:    "run-1",
		Scenario: "noise",
		Op:       "rss",
		Family:   "Rayleigh",
		Operands: 2,
		Duration: 3 * time.Millisecond,
		Time:     now,
	}
	require.NoError(t, rec.RecordRule(coremetrics.RuleEvent{Table: "sum"}))
	require.NoError(t, rec.RecordScenario(ev))

	p := write.NewPointWithMeasurement("scenario_run").
		AddTag("scenario", "noise").
		AddTag("op", "rss").
		AddTag("family", "Rayleigh").
		AddTag("failed", "false").
		AddField("run_id", "run-1").
		AddField("operands", 2).
		AddField("duration_seconds", 0.003).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, expected, strings.TrimSpace(body))
	assert.Contains(t, query, "bucket=runs")
	assert.Contains(t, query, "org=lab")
}

func TestScenarioPoint_FailedWithoutFamily(t *testing.T) {
	p := scenarioPoint(coremetrics.ScenarioEvent{Scenario: "mismatch", Op: "sum", Err: true})
	line := write.PointToLineProtocol(p, time.Nanosecond)
	assert.Contains(t, line, "family=none")
	assert.Contains(t, line, "failed=true")
}

func TestNewInfluxRecorderWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	rec, err := coremetrics.NewRecorder([]factory.ModuleConfig{{Type: "influx", Conf: map[string]any{
		"url":      srv.URL,
		"org":      "lab",
		"bucket":   "runs",
		"fallback": true,
	}}})
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopRecorder{}, rec)
	assert.True(t, called, "health endpoint not called")
}
