package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kilianp07/distalg/app"
	"github.com/kilianp07/distalg/core/runlog"
)

func ptr(v float64) *float64 { return &v }

func results() []app.Result {
	return []app.Result{
		{RunID: "r1", Scenario: "gamma", Op: "sum", Family: "Gamma", Params: []float64{1, 3}, Mean: ptr(3), Variance: ptr(3), StdDev: ptr(1.7320508075688772), Skewness: ptr(1.1547005383792517)},
		{RunID: "r1", Scenario: "lorentz", Op: "sum", Family: "Cauchy", Params: []float64{1, 2}},
		{RunID: "r1", Scenario: "mismatch", Op: "sum", Error: "sum of Gamma: operand 1 has scale = 2, want 1"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "run_id,scenario,op,family,params,mean,variance,stddev,skewness,error" {
		t.Errorf("unexpected header %q", got)
	}
	if rows[1][4] != "1;3" || rows[1][5] != "3" {
		t.Errorf("unexpected gamma row %v", rows[1])
	}
	if rows[2][5] != "" || rows[2][8] != "" {
		t.Errorf("undefined moments should be empty: %v", rows[2])
	}
	if rows[3][9] == "" {
		t.Errorf("missing error column: %v", rows[3])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, results()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if v, ok := out[1]["mean"]; !ok || v != nil {
		t.Errorf("expected null mean for Cauchy, got %v", v)
	}
}

func TestWriteRecords(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	recs := []runlog.Record{
		{Timestamp: ts, RunID: "r1", Scenario: "noise", Op: "rss", Family: "Rayleigh", Params: []float64{2}, Mean: ptr(2.5066282746310002)},
		{Timestamp: ts, RunID: "r1", Scenario: "mismatch", Op: "sum", Error: "precondition"},
	}

	var buf bytes.Buffer
	if err := WriteRecordsCSV(&buf, recs); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "2024-01-02T03:04:05Z" || rows[2][9] != "precondition" {
		t.Fatalf("unexpected rows %v", rows)
	}

	buf.Reset()
	if err := WriteRecordsJSON(&buf, recs); err != nil {
		t.Fatalf("write json: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 json lines, got %d", len(lines))
	}
	var r runlog.Record
	if err := json.Unmarshal([]byte(lines[0]), &r); err != nil || r.Family != "Rayleigh" {
		t.Fatalf("decode line: %v %+v", err, r)
	}
}
