package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/cashflow"
)

func newCashFlowCommand() *cobra.Command {
	var months int
	var opening bool

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Print the monthly cash-basis balance trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBooks(cmd)
			if err != nil {
				return err
			}

			opts := cashflow.Options{
				Months:         b.cfg.Reports.CashFlowMonths,
				IncludeOpening: b.cfg.Reports.CashFlowOpening,
			}
			if cmd.Flags().Changed("months") {
				opts.Months = months
			}
			if cmd.Flags().Changed("opening") {
				opts.IncludeOpening = opening
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tBALANCE")
			for _, p := range cashflow.Project(b.txs, opts) {
				fmt.Fprintf(w, "%s\t%s\n", p.Month, p.Balance.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&months, "months", cashflow.DefaultMonths, "number of months to project")
	cmd.Flags().BoolVar(&opening, "opening", false, "seed the balance from pre-window history")

	return cmd
}
