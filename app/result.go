package app

import (
	"time"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/runlog"
)

// Point holds the density and distribution function at X.
type Point struct {
	X   float64  `json:"x"`
	PDF *float64 `json:"pdf"`
	CDF *float64 `json:"cdf"`
}

// Result is the outcome of one scenario. Moments without a closed form are
// left nil.
type Result struct {
	RunID       string    `json:"run_id"`
	Scenario    string    `json:"scenario"`
	Op          string    `json:"op"`
	Time        time.Time `json:"time"`
	Operands    []string  `json:"operands"`
	Family      string    `json:"family,omitempty"`
	Hash        uint64    `json:"hash,omitempty"`
	Params      []float64 `json:"params,omitempty"`
	Description string    `json:"description,omitempty"`
	Mean        *float64  `json:"mean"`
	Variance    *float64  `json:"variance"`
	StdDev      *float64  `json:"stddev"`
	Skewness    *float64  `json:"skewness"`
	Points      []Point   `json:"points,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func (r *Result) describe(d density.Distribution, xs []float64) {
	r.Family = d.Family().String()
	r.Hash = d.Hash()
	r.Params = d.Params()
	r.Description = d.String()
	r.Mean = moment(d.Mean())
	r.Variance = moment(d.Variance())
	r.StdDev = moment(d.StdDev())
	r.Skewness = moment(d.Skewness())
	for _, x := range xs {
		r.Points = append(r.Points, Point{X: x, PDF: finite(d.PDF(x)), CDF: finite(d.CDF(x))})
	}
}

// moment leaves undefined moments unset.
func moment(v float64, err error) *float64 {
	if err != nil {
		return nil
	}
	return finite(v)
}

// Record converts r for the run store.
func (r Result) Record() runlog.Record {
	return runlog.Record{
		Timestamp: r.Time,
		RunID:     r.RunID,
		Scenario:  r.Scenario,
		Op:        r.Op,
		Operands:  r.Operands,
		Family:    r.Family,
		Hash:      r.Hash,
		Params:    r.Params,
		Mean:      r.Mean,
		Variance:  r.Variance,
		Skewness:  r.Skewness,
		Error:     r.Error,
	}
}

func (r Result) Failed() bool { return r.Error != "" }
