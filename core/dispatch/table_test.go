package dispatch

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/logger"
	"github.com/kilianp07/distalg/core/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	mu     sync.Mutex
	events []metrics.RuleEvent
}

func (c *captureRecorder) RecordRule(ev metrics.RuleEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

type captureLogger struct {
	logger.NopLogger
	mu    sync.Mutex
	debug []map[string]any
}

func (c *captureLogger) Debugw(_ string, fields map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debug = append(c.debug, fields)
}

type preconditionErr struct{}

func (preconditionErr) Error() string      { return "scale mismatch" }
func (preconditionErr) Precondition() bool { return true }

func normal(t *testing.T, mean, variance float64) density.Normal {
	t.Helper()
	n, err := density.NewNormal(mean, variance)
	require.NoError(t, err)
	return n
}

func cauchy(t *testing.T, loc, scale float64) density.Cauchy {
	t.Helper()
	c, err := density.NewCauchy(loc, scale)
	require.NoError(t, err)
	return c
}

func sumNormals(a, b density.Normal) (density.Distribution, error) {
	return density.NewNormal(a.Mu()+b.Mu(), a.Var()+b.Var())
}

func TestDispatch_Typed(t *testing.T) {
	tbl := New("sum")
	require.NoError(t, Add(tbl, sumNormals, true))
	assert.Equal(t, 1, tbl.Len(), "same-family rule has no mirror")

	out, err := tbl.Dispatch(normal(t, 1, 2), normal(t, 3, 4))
	require.NoError(t, err)
	assert.True(t, density.Equal(normal(t, 4, 6), out))
}

func TestDispatch_SymmetricTrampoline(t *testing.T) {
	tbl := New("pair")
	var gotL, gotR density.Family
	err := Add(tbl, func(n density.Normal, c density.Cauchy) (density.Distribution, error) {
		gotL, gotR = n.Family(), c.Family()
		return n, nil
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	out, err := tbl.Dispatch(cauchy(t, 0, 1), normal(t, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, density.FamilyNormal, gotL)
	assert.Equal(t, density.FamilyCauchy, gotR)
	assert.True(t, density.Equal(normal(t, 5, 1), out))
}

func TestDispatch_AsymmetricHasNoMirror(t *testing.T) {
	tbl := New("pair")
	require.NoError(t, Add(tbl, func(n density.Normal, _ density.Cauchy) (density.Distribution, error) {
		return n, nil
	}, false))
	_, err := tbl.Dispatch(cauchy(t, 0, 1), normal(t, 0, 1))
	if !errors.Is(err, ErrNoRule) {
		t.Fatalf("expected ErrNoRule, got %v", err)
	}
	for _, fam := range []string{"pair", "Cauchy", "Normal"} {
		assert.Contains(t, err.Error(), fam)
	}
}

func TestRegister_Errors(t *testing.T) {
	tbl := New("sum")
	id := func(l, _ density.Distribution) (density.Distribution, error) { return l, nil }
	require.NoError(t, tbl.Register(density.FamilyNormal, density.FamilyCauchy, id, false))

	if err := tbl.Register(density.FamilyNormal, density.FamilyCauchy, id, false); err == nil {
		t.Fatal("expected duplicate error")
	}
	// the mirror key (Cauchy, Normal) is free but (Normal, Cauchy) is taken
	if err := tbl.Register(density.FamilyCauchy, density.FamilyNormal, id, true); err == nil {
		t.Fatal("expected conflict on mirrored key")
	}
	_, ok := tbl.Lookup(density.FamilyCauchy, density.FamilyNormal)
	assert.False(t, ok, "failed registration must not mutate the table")

	if err := tbl.Register(density.FamilyGamma, density.FamilyGamma, nil, false); err == nil {
		t.Fatal("expected nil function error")
	}
	assert.Equal(t, 1, tbl.Len())
}

func TestDispatch_OperandErrors(t *testing.T) {
	tbl := New("sum")
	require.NoError(t, Add(tbl, sumNormals, true))

	if _, err := tbl.Dispatch(nil, normal(t, 0, 1)); !errors.Is(err, ErrOperandType) {
		t.Fatalf("expected ErrOperandType for nil operand, got %v", err)
	}
	fn, ok := tbl.Lookup(density.FamilyNormal, density.FamilyNormal)
	require.True(t, ok)
	if _, err := fn(normal(t, 0, 1), cauchy(t, 0, 1)); !errors.Is(err, ErrOperandType) {
		t.Fatalf("expected ErrOperandType, got %v", err)
	}
}

func TestPairs_Sorted(t *testing.T) {
	tbl := New("sum")
	id := func(l, _ density.Distribution) (density.Distribution, error) { return l, nil }
	require.NoError(t, tbl.Register(density.FamilyRician, density.FamilyNormal, id, true))
	require.NoError(t, tbl.Register(density.FamilyGamma, density.FamilyGamma, id, true))
	assert.Equal(t, []Key{
		{density.FamilyNormal, density.FamilyRician},
		{density.FamilyGamma, density.FamilyGamma},
		{density.FamilyRician, density.FamilyNormal},
	}, tbl.Pairs())
	assert.Equal(t, "sum", tbl.Name())
}

func TestDispatch_RecordsOutcomes(t *testing.T) {
	rec := &captureRecorder{}
	log := &captureLogger{}
	tbl := New("sum", WithRecorder(rec), WithLogger(log))
	require.NoError(t, Add(tbl, sumNormals, true))
	require.NoError(t, Add(tbl, func(density.Cauchy, density.Cauchy) (density.Distribution, error) {
		return nil, preconditionErr{}
	}, true))
	require.NoError(t, Add(tbl, func(density.Gamma, density.Gamma) (density.Distribution, error) {
		return nil, errors.New("boom")
	}, true))
	g, _ := density.NewGamma(1, 1)

	_, _ = tbl.Dispatch(normal(t, 0, 1), normal(t, 0, 1))
	_, _ = tbl.Dispatch(normal(t, 0, 1), cauchy(t, 0, 1))
	_, err := tbl.Dispatch(cauchy(t, 0, 1), cauchy(t, 0, 1))
	assert.ErrorIs(t, err, preconditionErr{})
	_, _ = tbl.Dispatch(g, g)

	require.Len(t, rec.events, 4)
	want := []metrics.Outcome{metrics.OutcomeOK, metrics.OutcomeNoRule, metrics.OutcomePrecondition, metrics.OutcomeError}
	for i, ev := range rec.events {
		assert.Equal(t, want[i], ev.Outcome)
		assert.Equal(t, "sum", ev.Table)
	}
	assert.Equal(t, "Cauchy", rec.events[1].Rhs)

	require.Len(t, log.debug, 4)
	assert.Equal(t, "no_rule", log.debug[1]["outcome"])
	assert.True(t, strings.Contains(log.debug[3]["error"].(string), "boom"))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, metrics.OutcomeOK, Classify(nil))
	assert.Equal(t, metrics.OutcomeNoRule, Classify(ErrNoRule))
	assert.Equal(t, metrics.OutcomePrecondition, Classify(preconditionErr{}))
	assert.Equal(t, metrics.OutcomeError, Classify(errors.New("x")))
}

func TestDispatch_Concurrent(t *testing.T) {
	tbl := New("sum")
	require.NoError(t, Add(tbl, sumNormals, true))
	a, b := normal(t, 1, 1), normal(t, 2, 2)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tbl.Dispatch(a, b)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}
}
