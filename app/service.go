package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kilianp07/distalg/app/plugins"
	"github.com/kilianp07/distalg/config"
	"github.com/kilianp07/distalg/core/convolution"
	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/dispatch"
	"github.com/kilianp07/distalg/core/factory"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/kilianp07/distalg/core/monitoring"
	"github.com/kilianp07/distalg/core/runlog"
	"github.com/kilianp07/distalg/infra/logger"
	_ "github.com/kilianp07/distalg/infra/metrics"
	_ "github.com/kilianp07/distalg/infra/mqtt"
)

// ErrNoHistory is returned by History when no run store is configured.
var ErrNoHistory = errors.New("run history is not configured")

// Service evaluates scenarios with the combination engine and records the
// results.
type Service struct {
	engine *convolution.Engine
	rec    coremetrics.Recorder
	store  runlog.Store
	log    logger.Logger
	now    func() time.Time
}

// Option overrides a dependency normally built from the configuration.
type Option func(*Service)

func WithLogger(l logger.Logger) Option          { return func(s *Service) { s.log = l } }
func WithRecorder(r coremetrics.Recorder) Option { return func(s *Service) { s.rec = r } }
func WithStore(st runlog.Store) Option           { return func(s *Service) { s.store = st } }
func WithClock(now func() time.Time) Option      { return func(s *Service) { s.now = now } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, o := range opts {
		o(svc)
	}
	if svc.log == nil {
		svc.log = logger.New("service")
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.rec == nil {
		rec, err := coremetrics.NewRecorder(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics recorder: %w", err)
		}
		svc.rec = rec
	}
	if svc.store == nil {
		store, err := plugins.NewRunStore(cfg.History)
		if err != nil {
			return nil, fmt.Errorf("run store: %w", err)
		}
		svc.store = store
	}
	engine, err := convolution.NewEngine(
		dispatch.WithLogger(logger.New("dispatch")),
		dispatch.WithRecorder(svc.rec),
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	svc.engine = engine
	return svc, nil
}

// Engine exposes the combination engine.
func (s *Service) Engine() *convolution.Engine { return s.engine }

// Run evaluates every scenario under one run ID. A scenario that cannot be
// evaluated is reported through Result.Error and does not stop the run.
func (s *Service) Run(ctx context.Context, scenarios []config.Scenario) ([]Result, error) {
	runID := uuid.NewString()
	s.log.Infof("run %s: evaluating %d scenarios", runID, len(scenarios))
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := s.Evaluate(runID, sc)
		if err := s.persist(ctx, res); err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Evaluate builds the operands of sc and combines them. One operand is only
// described.
func (s *Service) Evaluate(runID string, sc config.Scenario) Result {
	start := s.now()
	res := Result{RunID: runID, Scenario: sc.Name, Op: sc.Op, Time: start}

	d, err := s.evaluate(sc, &res)
	if err != nil {
		res.Error = err.Error()
		s.log.Warnf("scenario %s: %v", sc.Name, err)
		monitoring.CaptureException(err, map[string]string{
			"run_id":   runID,
			"scenario": sc.Name,
			"op":       res.Op,
			"outcome":  string(dispatch.Classify(err)),
		})
	} else {
		res.describe(d, sc.Points)
		s.log.Debugw("scenario evaluated", map[string]any{
			"run":      runID,
			"scenario": sc.Name,
			"op":       sc.Op,
			"family":   res.Family,
		})
	}

	if r, ok := s.rec.(coremetrics.ScenarioRecorder); ok {
		ev := coremetrics.ScenarioEvent{
			RunID:    runID,
			Scenario: sc.Name,
			Op:       sc.Op,
			Family:   res.Family,
			Operands: len(sc.Operands),
			Err:      err != nil,
			Duration: s.now().Sub(start),
			Time:     start,
		}
		if rerr := r.RecordScenario(ev); rerr != nil {
			s.log.Errorf("record scenario %s: %v", sc.Name, rerr)
		}
	}
	return res
}

func (s *Service) evaluate(sc config.Scenario, res *Result) (density.Distribution, error) {
	op, err := convolution.ParseOp(sc.Op)
	if err != nil {
		return nil, err
	}
	res.Op = op.String()
	if len(sc.Operands) == 0 {
		return nil, convolution.ErrEmpty
	}
	ds := make([]density.Distribution, len(sc.Operands))
	for i, oc := range sc.Operands {
		d, err := factory.NewDistribution(oc)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i, err)
		}
		ds[i] = d
		res.Operands = append(res.Operands, d.String())
	}
	if len(ds) == 1 {
		return ds[0], nil
	}
	return s.engine.CombineAll(op, ds)
}

func (s *Service) persist(ctx context.Context, res Result) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Append(ctx, res.Record()); err != nil {
		return fmt.Errorf("append run record: %w", err)
	}
	return nil
}

// History queries the run store.
func (s *Service) History(ctx context.Context, q runlog.Query) ([]runlog.Record, error) {
	if s.store == nil {
		return nil, ErrNoHistory
	}
	return s.store.Query(ctx, q)
}

// Close releases the run store and any recorder holding connections.
func (s *Service) Close() error {
	var errs []error
	if c, ok := s.rec.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close recorder: %w", err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close run store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// finite returns a pointer to v, or nil when v is NaN or infinite so that
// JSON output stays valid.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
