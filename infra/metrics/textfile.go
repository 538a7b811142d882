package metrics

import "github.com/prometheus/client_golang/prometheus"

// WriteTextfile dumps g in the text exposition format to path, for pick-up by
// a node exporter textfile collector. A nil gatherer selects the default one.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return prometheus.WriteToTextfile(path, g)
}
