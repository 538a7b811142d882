package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/distalg/app"
	"github.com/kilianp07/distalg/core/runlog"
)

var resultHeader = []string{"run_id", "scenario", "op", "family", "params", "mean", "variance", "stddev", "skewness", "error"}

var recordHeader = []string{"timestamp", "run_id", "scenario", "op", "family", "params", "mean", "variance", "skewness", "error"}

// WriteJSON writes the scenario results to w as an indented JSON array.
func WriteJSON(w io.Writer, results []app.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// WriteCSV writes one row per scenario result. Undefined moments are left
// empty.
func WriteCSV(w io.Writer, results []app.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			r.RunID,
			r.Scenario,
			r.Op,
			r.Family,
			formatList(r.Params),
			formatOpt(r.Mean),
			formatOpt(r.Variance),
			formatOpt(r.StdDev),
			formatOpt(r.Skewness),
			r.Error,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecordsJSON writes run-history records as JSON lines.
func WriteRecordsJSON(w io.Writer, recs []runlog.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecordsCSV writes run-history records in CSV format.
func WriteRecordsCSV(w io.Writer, recs []runlog.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, r := range recs {
		rec := []string{
			r.Timestamp.Format(time.RFC3339),
			r.RunID,
			r.Scenario,
			r.Op,
			r.Family,
			formatList(r.Params),
			formatOpt(r.Mean),
			formatOpt(r.Variance),
			formatOpt(r.Skewness),
			r.Error,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatList(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ";")
}
