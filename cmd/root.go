package cmd

import (
	"fmt"
	"time"

	"github.com/kilianp07/distalg/config"
	"github.com/kilianp07/distalg/core/monitoring"
	"github.com/kilianp07/distalg/infra/logger"
	inframon "github.com/kilianp07/distalg/infra/monitoring"
	"github.com/spf13/cobra"
)

// options holds the persistent flags and the configuration they select.
type options struct {
	cfgPath  string
	logLevel string
	cfg      *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "distalg",
		Short:        "Closed-form algebra of independent random variables",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}
	root.PersistentFlags().StringVarP(&o.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newRunCmd(o),
		newCombineCmd(o),
		newDescribeCmd(o),
		newFamiliesCmd(),
		newHistoryCmd(o),
	)
	return root
}

// Execute runs the CLI. Panics are reported to the configured monitor
// before they propagate.
func Execute() error {
	defer func() {
		if r := recover(); r != nil {
			monitoring.CapturePanic(r)
			panic(r)
		}
	}()
	defer monitoring.Flush(2 * time.Second)
	return NewRootCmd().Execute()
}

func (o *options) load() error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	mon, err := inframon.NewSentryMonitor(cfg.Monitoring)
	if err != nil {
		return fmt.Errorf("monitoring: %w", err)
	}
	monitoring.Init(mon)
	o.cfg = cfg
	return nil
}
