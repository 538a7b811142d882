package dispatch

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/logger"
	"github.com/kilianp07/distalg/core/metrics"
)

var (
	// ErrNoRule is returned when no function is registered for a pair of
	// families.
	ErrNoRule = errors.New("no combination rule")
	// ErrOperandType is returned when an operand is nil or does not have the
	// concrete type a typed rule was registered with.
	ErrOperandType = errors.New("operand type mismatch")
)

// Func combines two distributions.
type Func func(lhs, rhs density.Distribution) (density.Distribution, error)

// Key is the ordered pair of families a rule is registered under.
type Key struct {
	Lhs, Rhs density.Family
}

func (k Key) String() string { return fmt.Sprintf("(%s, %s)", k.Lhs, k.Rhs) }

// Table is a named multimethod dispatch table.
type Table struct {
	name string
	log  logger.Logger
	rec  metrics.Recorder

	mu    sync.RWMutex
	rules map[Key]Func
}

// Option configures a Table.
type Option func(*Table)

func WithLogger(l logger.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(t *Table) {
		if r != nil {
			t.rec = r
		}
	}
}

func New(name string, opts ...Option) *Table {
	t := &Table{
		name:  name,
		log:   logger.NopLogger{},
		rec:   metrics.NopRecorder{},
		rules: make(map[Key]Func),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Table) Name() string { return t.name }

// Register installs fn under (a, b). With symmetric set and a != b, a
// trampoline calling fn with swapped operands is installed under (b, a).
// Occupied keys are an error and leave the table unchanged.
func (t *Table) Register(a, b density.Family, fn Func, symmetric bool) error {
	if fn == nil {
		return fmt.Errorf("dispatch %s: nil function for (%s, %s)", t.name, a, b)
	}
	key, swapped := Key{a, b}, Key{b, a}
	mirror := symmetric && a != b

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rules[key]; ok {
		return fmt.Errorf("dispatch %s: rule %s already registered", t.name, key)
	}
	if mirror {
		if _, ok := t.rules[swapped]; ok {
			return fmt.Errorf("dispatch %s: rule %s already registered", t.name, swapped)
		}
	}
	t.rules[key] = fn
	if mirror {
		t.rules[swapped] = func(lhs, rhs density.Distribution) (density.Distribution, error) {
			return fn(rhs, lhs)
		}
	}
	return nil
}

// Add registers a typed rule. The families are read from the zero values of
// L and R and the operands are restored with a checked type assertion.
func Add[L, R density.Distribution](t *Table, fn func(L, R) (density.Distribution, error), symmetric bool) error {
	if fn == nil {
		return fmt.Errorf("dispatch %s: nil function", t.name)
	}
	var l L
	var r R
	return t.Register(l.Family(), r.Family(), func(lhs, rhs density.Distribution) (density.Distribution, error) {
		a, ok := lhs.(L)
		if !ok {
			return nil, fmt.Errorf("%w: lhs is %T, want %T", ErrOperandType, lhs, l)
		}
		b, ok := rhs.(R)
		if !ok {
			return nil, fmt.Errorf("%w: rhs is %T, want %T", ErrOperandType, rhs, r)
		}
		return fn(a, b)
	}, symmetric)
}

// Lookup returns the function registered under (a, b).
func (t *Table) Lookup(a, b density.Family) (Func, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.rules[Key{a, b}]
	return fn, ok
}

// Pairs lists the registered keys ordered by lhs, then rhs.
func (t *Table) Pairs() []Key {
	t.mu.RLock()
	keys := make([]Key, 0, len(t.rules))
	for k := range t.rules {
		keys = append(keys, k)
	}
	t.mu.RUnlock()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Lhs != keys[j].Lhs {
			return keys[i].Lhs < keys[j].Lhs
		}
		return keys[i].Rhs < keys[j].Rhs
	})
	return keys
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rules)
}

// Dispatch selects the rule registered for the concrete families of lhs and
// rhs and applies it.
func (t *Table) Dispatch(lhs, rhs density.Distribution) (density.Distribution, error) {
	if lhs == nil || rhs == nil {
		return nil, fmt.Errorf("%w: nil operand in %s", ErrOperandType, t.name)
	}
	start := time.Now()
	key := Key{lhs.Family(), rhs.Family()}
	fn, ok := t.Lookup(key.Lhs, key.Rhs)
	if !ok {
		err := fmt.Errorf("%w: %s has no rule for %s", ErrNoRule, t.name, key)
		t.observe(key, metrics.OutcomeNoRule, start, err)
		return nil, err
	}
	out, err := fn(lhs, rhs)
	t.observe(key, Classify(err), start, err)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", t.name, key, err)
	}
	return out, nil
}

// Classify maps a rule error to a metrics outcome. Errors exposing
// Precondition() bool report the precondition outcome.
func Classify(err error) metrics.Outcome {
	if err == nil {
		return metrics.OutcomeOK
	}
	if errors.Is(err, ErrNoRule) {
		return metrics.OutcomeNoRule
	}
	var p interface{ Precondition() bool }
	if errors.As(err, &p) && p.Precondition() {
		return metrics.OutcomePrecondition
	}
	return metrics.OutcomeError
}

func (t *Table) observe(key Key, outcome metrics.Outcome, start time.Time, err error) {
	ev := metrics.RuleEvent{
		Table:    t.name,
		Lhs:      key.Lhs.String(),
		Rhs:      key.Rhs.String(),
		Outcome:  outcome,
		Duration: time.Since(start),
		Time:     start,
	}
	if rerr := t.rec.RecordRule(ev); rerr != nil {
		t.log.Warnf("record rule event: %v", rerr)
	}
	fields := map[string]any{
		"table":   t.name,
		"lhs":     ev.Lhs,
		"rhs":     ev.Rhs,
		"outcome": string(outcome),
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.log.Debugw("rule dispatch", fields)
}
