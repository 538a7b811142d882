package app

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/distalg/config"
	"github.com/kilianp07/distalg/core/factory"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/kilianp07/distalg/core/monitoring"
	"github.com/kilianp07/distalg/core/runlog"
	"github.com/kilianp07/distalg/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	rules     int
	scenarios []coremetrics.ScenarioEvent
}

func (c *captureRecorder) RecordRule(coremetrics.RuleEvent) error {
	c.rules++
	return nil
}

func (c *captureRecorder) RecordScenario(ev coremetrics.ScenarioEvent) error {
	c.scenarios = append(c.scenarios, ev)
	return nil
}

type closingRecorder struct {
	coremetrics.NopRecorder
	closed bool
}

func (c *closingRecorder) Close() error {
	c.closed = true
	return errors.New("broker gone")
}

type captureMonitor struct {
	monitoring.NopMonitor
	errs []error
	tags []map[string]string
}

func (c *captureMonitor) CaptureException(err error, tags map[string]string) {
	c.errs = append(c.errs, err)
	c.tags = append(c.tags, tags)
}

func operand(family string, params map[string]any) factory.Config {
	return factory.Config{Family: family, Params: params}
}

func scenarios() []config.Scenario {
	return []config.Scenario{
		{Name: "gamma", Op: "sum", Operands: []factory.Config{
			operand("gamma", map[string]any{"scale": 1.0, "shape": 2.0}),
			operand("gamma", map[string]any{"scale": 1.0, "shape": 1.0}),
		}},
		{Name: "lorentz", Op: "sum", Operands: []factory.Config{
			operand("cauchy", map[string]any{"location": 1.0, "scale": 2.0}),
		}},
		{Name: "mismatch", Op: "sum", Operands: []factory.Config{
			operand("gamma", map[string]any{"scale": 1.0, "shape": 2.0}),
			operand("gamma", map[string]any{"scale": 2.0, "shape": 2.0}),
		}},
		{Name: "noise", Op: "rss", Points: []float64{1}, Operands: []factory.Config{
			operand("normal", map[string]any{"mean": 0.0, "variance": 4.0}),
			operand("normal", map[string]any{"mean": 0.0, "variance": 4.0}),
		}},
		{Name: "blend", Op: "sum", Operands: []factory.Config{{
			Family: "mixture",
			Components: []factory.Config{
				operand("uniform", map[string]any{"lower": 0.0, "upper": 1.0}),
				{Family: "uniform", Params: map[string]any{"lower": 0.5, "upper": 3.5}, Weight: 2},
			},
		}}},
	}
}

func newService(t *testing.T, opts ...Option) (*Service, *captureRecorder) {
	t.Helper()
	rec := &captureRecorder{}
	store, err := runlog.NewJSONLStore(filepath.Join(t.TempDir(), "runs.jsonl"))
	require.NoError(t, err)
	base := []Option{WithLogger(logger.NopLogger{}), WithRecorder(rec), WithStore(store)}
	svc, err := New(&config.Config{}, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, rec
}

func TestService_Run(t *testing.T) {
	svc, rec := newService(t)
	results, err := svc.Run(context.Background(), scenarios())
	require.NoError(t, err)
	require.Len(t, results, 5)

	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Scenario] = r
		assert.Equal(t, results[0].RunID, r.RunID)
	}

	gamma := byName["gamma"]
	assert.False(t, gamma.Failed())
	assert.Equal(t, "Gamma", gamma.Family)
	assert.Equal(t, []float64{1, 3}, gamma.Params)
	require.NotNil(t, gamma.Mean)
	assert.InDelta(t, 3, *gamma.Mean, 1e-12)
	assert.Len(t, gamma.Operands, 2)

	lorentz := byName["lorentz"]
	assert.Equal(t, "Cauchy", lorentz.Family)
	assert.Nil(t, lorentz.Mean)
	assert.Nil(t, lorentz.Variance)
	assert.Nil(t, lorentz.Skewness)

	mismatch := byName["mismatch"]
	assert.True(t, mismatch.Failed())
	assert.Contains(t, mismatch.Error, "scale")
	assert.Empty(t, mismatch.Family)

	noise := byName["noise"]
	assert.Equal(t, "Rayleigh", noise.Family)
	assert.Equal(t, []float64{2}, noise.Params)
	require.Len(t, noise.Points, 1)
	require.NotNil(t, noise.Points[0].CDF)
	assert.InDelta(t, 0.1175030974154046, *noise.Points[0].CDF, 1e-12)

	blend := byName["blend"]
	assert.Equal(t, "Mixture", blend.Family)
	require.NotNil(t, blend.Mean)
	assert.InDelta(t, 1.5, *blend.Mean, 1e-12)
	assert.InDelta(t, 37.0/36, *blend.Variance, 1e-12)

	require.Len(t, rec.scenarios, 5)
	assert.True(t, rec.scenarios[2].Err)
	assert.Equal(t, 2, rec.scenarios[0].Operands)
}

func TestService_History(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	results, err := svc.Run(ctx, scenarios())
	require.NoError(t, err)

	recs, err := svc.History(ctx, runlog.Query{RunID: results[0].RunID})
	require.NoError(t, err)
	assert.Len(t, recs, 5)

	failed, err := svc.History(ctx, runlog.Query{Failed: true})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "mismatch", failed[0].Scenario)

	byFamily, err := svc.History(ctx, runlog.Query{Family: "Rayleigh"})
	require.NoError(t, err)
	require.Len(t, byFamily, 1)
	assert.Equal(t, "noise", byFamily[0].Scenario)
}

func TestService_NoHistory(t *testing.T) {
	svc, err := New(&config.Config{}, WithLogger(logger.NopLogger{}), WithRecorder(coremetrics.NopRecorder{}))
	require.NoError(t, err)
	_, err = svc.History(context.Background(), runlog.Query{})
	assert.ErrorIs(t, err, ErrNoHistory)
	assert.NoError(t, svc.Close())
}

func TestService_CanceledContext(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := svc.Run(ctx, scenarios())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestService_Evaluate_Errors(t *testing.T) {
	svc, _ := newService(t)
	res := svc.Evaluate("run", config.Scenario{Name: "bad op", Op: "product", Operands: []factory.Config{operand("normal", nil)}})
	assert.Contains(t, res.Error, "unknown operation")

	res = svc.Evaluate("run", config.Scenario{Name: "bad family", Op: "sum", Operands: []factory.Config{operand("weibull", nil)}})
	assert.Contains(t, res.Error, "operand 0")

	res = svc.Evaluate("run", config.Scenario{Name: "empty", Op: "sum"})
	assert.True(t, res.Failed())
}

func TestResult_JSON(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	svc, _ := newService(t, WithClock(func() time.Time { return fixed }))
	res := svc.Evaluate("run", scenarios()[1])

	data, err := json.Marshal(res)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "mean")
	assert.Nil(t, m["mean"])
	assert.Equal(t, "Cauchy", m["family"])
	assert.Equal(t, "2024-05-06T07:08:09Z", m["time"])
	assert.NotContains(t, m, "error")

	r := res.Record()
	assert.Equal(t, fixed, r.Timestamp)
	assert.Equal(t, "lorentz", r.Scenario)
}

func TestService_ReportsFailures(t *testing.T) {
	mon := &captureMonitor{}
	monitoring.Init(mon)
	defer monitoring.Init(nil)

	svc, _ := newService(t)
	res := svc.Evaluate("run-1", scenarios()[2])
	require.True(t, res.Failed())
	svc.Evaluate("run-1", scenarios()[0])

	require.Len(t, mon.errs, 1)
	assert.Equal(t, map[string]string{
		"run_id":   "run-1",
		"scenario": "mismatch",
		"op":       "sum",
		"outcome":  "precondition",
	}, mon.tags[0])
}

func TestService_CloseRecorder(t *testing.T) {
	rec := &closingRecorder{}
	svc, err := New(&config.Config{}, WithLogger(logger.NopLogger{}), WithRecorder(rec))
	require.NoError(t, err)
	err = svc.Close()
	assert.ErrorContains(t, err, "broker gone")
	assert.True(t, rec.closed)
}
