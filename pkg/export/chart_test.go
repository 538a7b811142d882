package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kilianp07/distalg/app"
)

func TestWriteHTML(t *testing.T) {
	rs := append(results(), app.Result{
		RunID:       "r1",
		Scenario:    "noise",
		Op:          "rss",
		Family:      "Rayleigh",
		Description: "Rayleigh(σ=2)",
		Points: []app.Point{
			{X: 0, PDF: ptr(0), CDF: ptr(0)},
			{X: 1, PDF: ptr(0.2206), CDF: ptr(0.1175)},
			{X: 2},
		},
	})
	var buf bytes.Buffer
	if err := WriteHTML(&buf, rs); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<html", "noise", "pdf", "cdf", "0.1175"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "lorentz") {
		t.Error("results without points must not be charted")
	}
}

func TestWriteHTML_NothingToPlot(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTML(&buf, results())
	if !errors.Is(err, ErrNothingToPlot) {
		t.Fatalf("expected ErrNothingToPlot, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %d bytes", buf.Len())
	}
}
