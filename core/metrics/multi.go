package metrics

import (
	"errors"
	"io"
)

// MultiRecorder fans events out to several recorders.
type MultiRecorder struct {
	Recorders []Recorder
}

func NewMultiRecorder(recs ...Recorder) *MultiRecorder {
	return &MultiRecorder{Recorders: recs}
}

// RecordRule forwards the event to all recorders, returning the first error
// encountered.
func (m *MultiRecorder) RecordRule(ev RuleEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordRule(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordScenario forwards scenario events to the recorders that support them.
func (m *MultiRecorder) RecordScenario(ev ScenarioEvent) error {
	for _, r := range m.Recorders {
		if rec, ok := r.(ScenarioRecorder); ok {
			if err := rec.RecordScenario(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every recorder implementing io.Closer and joins their errors.
func (m *MultiRecorder) Close() error {
	var errs []error
	for _, r := range m.Recorders {
		if c, ok := r.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
