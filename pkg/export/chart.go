package export

import (
	"errors"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/kilianp07/distalg/app"
)

// ErrNothingToPlot is returned by WriteHTML when no result carries
// evaluation points.
var ErrNothingToPlot = errors.New("no evaluation points to plot")

// WriteHTML renders one line chart per successful result that has evaluation
// points. The density and the distribution function share the chart.
func WriteHTML(w io.Writer, results []app.Result) error {
	page := components.NewPage()
	page.SetPageTitle("distalg")
	n := 0
	for _, r := range results {
		if r.Failed() || len(r.Points) == 0 {
			continue
		}
		page.AddCharts(resultChart(r))
		n++
	}
	if n == 0 {
		return ErrNothingToPlot
	}
	return page.Render(w)
}

func resultChart(r app.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: r.Scenario, Subtitle: r.Description}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "probability"}),
	)

	xs := make([]string, len(r.Points))
	pdf := make([]opts.LineData, len(r.Points))
	cdf := make([]opts.LineData, len(r.Points))
	for i, p := range r.Points {
		xs[i] = strconv.FormatFloat(p.X, 'g', -1, 64)
		pdf[i] = lineValue(p.PDF)
		cdf[i] = lineValue(p.CDF)
	}
	line.SetXAxis(xs).
		AddSeries("pdf", pdf).
		AddSeries("cdf", cdf)
	return line
}

// lineValue maps an undefined value to the gap marker understood by the
// chart library.
func lineValue(v *float64) opts.LineData {
	if v == nil {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: *v}
}
