package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/kilianp07/distalg/core/logger"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
	infralogger "github.com/kilianp07/distalg/infra/logger"
)

// InfluxConfig selects the InfluxDB bucket receiving scenario runs.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
	// Fallback replaces the sink with a no-op recorder when the health check
	// fails instead of failing the run.
	Fallback bool `json:"fallback"`
}

func (c InfluxConfig) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("influx url is required"))
	}
	if c.Org == "" {
		errs = append(errs, errors.New("influx org is required"))
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("influx bucket is required"))
	}
	return errors.Join(errs...)
}

// InfluxRecorder writes scenario runs to an InfluxDB instance using the
// official client. Rule dispatches are too frequent for per-event writes and
// are left to the Prometheus recorder.
type InfluxRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxRecorder creates a recorder configured for the given endpoint.
func NewInfluxRecorder(cfg InfluxConfig) *InfluxRecorder {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      infralogger.New("influx-recorder"),
	}
}

// NewInfluxRecorderWithFallback pings the InfluxDB instance and returns a
// NopRecorder if the health check fails.
func NewInfluxRecorderWithFallback(cfg InfluxConfig) coremetrics.Recorder {
	rec := NewInfluxRecorder(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := rec.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			rec.log.Errorf("influx health check error: %v", err)
		} else {
			rec.log.Errorf("influx health status: %s", health.Status)
		}
		rec.client.Close()
		return coremetrics.NopRecorder{}
	}
	return rec
}

func (r *InfluxRecorder) RecordRule(coremetrics.RuleEvent) error { return nil }

// RecordScenario writes the event as one scenario_run point.
func (r *InfluxRecorder) RecordScenario(ev coremetrics.ScenarioEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.writeAPI.WritePoint(ctx, scenarioPoint(ev))
}

// Close releases the HTTP resources of the client.
func (r *InfluxRecorder) Close() error {
	r.client.Close()
	return nil
}

func scenarioPoint(ev coremetrics.ScenarioEvent) *write.Point {
	family := ev.Family
	if family == "" {
		family = "none"
	}
	return write.NewPointWithMeasurement("scenario_run").
		AddTag("scenario", ev.Scenario).
		AddTag("op", ev.Op).
		AddTag("family", family).
		AddTag("failed", strconv.FormatBool(ev.Err)).
		AddField("run_id", ev.RunID).
		AddField("operands", ev.Operands).
		AddField("duration_seconds", ev.Duration.Seconds()).
		SetTime(ev.Time)
}
