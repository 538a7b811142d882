package cmd

import (
	"time"

	"github.com/kilianp07/distalg/app"
	"github.com/kilianp07/distalg/core/runlog"
	"github.com/kilianp07/distalg/pkg/export"
	"github.com/spf13/cobra"
)

func newHistoryCmd(o *options) *cobra.Command {
	var (
		q      runlog.Query
		since  time.Duration
		format string
	)
	c := &cobra.Command{
		Use:   "history",
		Short: "Query the recorded scenario runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.New(o.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			if since > 0 {
				q.Start = time.Now().Add(-since)
			}
			recs, err := svc.History(background(cmd), q)
			if err != nil {
				return err
			}
			if format == "csv" {
				return export.WriteRecordsCSV(cmd.OutOrStdout(), recs)
			}
			return export.WriteRecordsJSON(cmd.OutOrStdout(), recs)
		},
	}
	c.Flags().StringVar(&q.RunID, "run", "", "only records of this run ID")
	c.Flags().StringVar(&q.Scenario, "scenario", "", "only records of this scenario")
	c.Flags().StringVar(&q.Family, "family", "", "only results of this family")
	c.Flags().BoolVar(&q.Failed, "failed", false, "only failed scenarios")
	c.Flags().DurationVar(&since, "since", 0, "only records newer than this duration")
	c.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	return c
}
