package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kilianp07/distalg/core/density"
	"github.com/kilianp07/distalg/core/factory"
	"github.com/spf13/cobra"
)

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the distribution families and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FAMILY\tPARAMETERS")
			for _, f := range density.Families() {
				params := "-"
				switch {
				case f == density.FamilyMixture:
					params = "components (weighted)"
				case len(factory.ParamNames(f)) > 0:
					params = strings.Join(factory.ParamNames(f), ", ")
				}
				fmt.Fprintf(tw, "%s\t%s\n", f, params)
			}
			return tw.Flush()
		},
	}
}
