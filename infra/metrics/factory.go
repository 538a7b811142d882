package metrics

import (
	"github.com/kilianp07/distalg/core/factory"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/kilianp07/distalg/infra/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// init registers built-in recorders.
func init() {
	_ = coremetrics.RegisterRecorder("nop", func(map[string]any) (coremetrics.Recorder, error) {
		return coremetrics.NopRecorder{}, nil
	})

	_ = coremetrics.RegisterRecorder("prometheus", func(conf map[string]any) (coremetrics.Recorder, error) {
		var c struct{}
		if err := factory.DecodeStrict(conf, &c); err != nil {
			return nil, err
		}
		return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterRecorder("log", func(conf map[string]any) (coremetrics.Recorder, error) {
		c := struct {
			Component string `json:"component"`
		}{Component: "metrics"}
		if err := factory.DecodeStrict(conf, &c); err != nil {
			return nil, err
		}
		return NewLogRecorder(logger.New(c.Component)), nil
	})

	_ = coremetrics.RegisterRecorder("influx", func(conf map[string]any) (coremetrics.Recorder, error) {
		var c InfluxConfig
		if err := factory.DecodeStrict(conf, &c); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.Fallback {
			return NewInfluxRecorderWithFallback(c), nil
		}
		return NewInfluxRecorder(c), nil
	})
}
