package config

import "fmt"

// MonitoringConfig defines settings for Sentry error monitoring. An empty DSN
// disables reporting.
type MonitoringConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Release          string  `json:"release"`
}

func (m MonitoringConfig) Validate() error {
	if m.TracesSampleRate < 0 || m.TracesSampleRate > 1 {
		return fmt.Errorf("traces_sample_rate must be within [0, 1], got %g", m.TracesSampleRate)
	}
	return nil
}
