package runlog

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"time"
)

// Record captures the outcome of one evaluated scenario.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Scenario  string    `json:"scenario"`
	Op        string    `json:"op"`
	Operands  []string  `json:"operands"`
	Family    string    `json:"family,omitempty"`
	Hash      uint64    `json:"hash,omitempty"`
	Params    []float64 `json:"params,omitempty"`
	Mean      *float64  `json:"mean,omitempty"`
	Variance  *float64  `json:"variance,omitempty"`
	Skewness  *float64  `json:"skewness,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Failed reports whether the scenario could not be evaluated.
func (r Record) Failed() bool { return r.Error != "" }

// Query defines filters for retrieving records. Zero fields match anything.
type Query struct {
	Start    time.Time
	End      time.Time
	RunID    string
	Scenario string
	Family   string
	Failed   bool
}

// Match reports whether r passes every filter of q.
func (q Query) Match(r Record) bool {
	switch {
	case !q.Start.IsZero() && r.Timestamp.Before(q.Start):
		return false
	case !q.End.IsZero() && r.Timestamp.After(q.End):
		return false
	case q.RunID != "" && r.RunID != q.RunID:
		return false
	case q.Scenario != "" && r.Scenario != q.Scenario:
		return false
	case q.Family != "" && r.Family != q.Family:
		return false
	case q.Failed && !r.Failed():
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// scanJSONL appends the matching records of a JSONL stream to res.
// Malformed lines are skipped.
func scanJSONL(r io.Reader, q Query, res []Record) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if q.Match(rec) {
			res = append(res, rec)
		}
	}
	return res, scanner.Err()
}
