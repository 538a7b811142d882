package metrics

import "github.com/kilianp07/distalg/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Textfile, when set, receives the Prometheus registry in text
	// exposition format at the end of a run.
	Textfile string `json:"textfile"`
}
