package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/distalg/app"
	"github.com/kilianp07/distalg/pkg/export"
)

func writeResults(w io.Writer, format string, results []app.Result) error {
	switch format {
	case "json":
		return export.WriteJSON(w, results)
	case "csv":
		return export.WriteCSV(w, results)
	case "html":
		return export.WriteHTML(w, results)
	case "text", "":
		return writeText(w, results)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeText(w io.Writer, results []app.Result) error {
	for _, r := range results {
		if r.Failed() {
			if _, err := fmt.Fprintf(w, "%s: error: %s\n", r.Scenario, r.Error); err != nil {
				return err
			}
			continue
		}
		lines := []string{
			r.Description,
			"mean     = " + optional(r.Mean),
			"variance = " + optional(r.Variance),
			"stddev   = " + optional(r.StdDev),
			"skewness = " + optional(r.Skewness),
		}
		for _, p := range r.Points {
			lines = append(lines, fmt.Sprintf("x = %g  pdf = %s  cdf = %s", p.X, optional(p.PDF), optional(p.CDF)))
		}
		for _, l := range lines {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
	}
	return nil
}

func optional(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
