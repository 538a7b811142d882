package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kilianp07/distalg/app"
	"github.com/kilianp07/distalg/infra/logger"
	"github.com/kilianp07/distalg/infra/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newRunCmd(o *options) *cobra.Command {
	var format, metricsFile string
	c := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the scenarios of the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(o.cfg.Scenarios) == 0 {
				return errors.New("no scenarios configured")
			}
			if metricsFile != "" {
				o.cfg.Metrics.Textfile = metricsFile
			}
			ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := app.New(o.cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					logger.New("main").Errorf("service close: %v", err)
				}
			}()

			results, err := svc.Run(ctx, o.cfg.Scenarios)
			if err != nil {
				return err
			}
			if err := writeResults(cmd.OutOrStdout(), format, results); err != nil {
				return err
			}
			if path := o.cfg.Metrics.Textfile; path != "" {
				if err := metrics.WriteTextfile(path, prometheus.DefaultGatherer); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			return failures(results)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv, text or html")
	c.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	return c
}

// failures reports how many scenarios could not be evaluated.
func failures(results []app.Result) error {
	var n int
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d of %d scenarios failed", n, len(results))
	}
	return nil
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
