package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/ledger"
)

func newTrialBalanceCommand() *cobra.Command {
	var asOfStr string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the as-of-date trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBooks(cmd)
			if err != nil {
				return err
			}

			asOf := time.Now()
			if asOfStr != "" {
				asOf, err = time.Parse(time.DateOnly, asOfStr)
				if err != nil {
					return fmt.Errorf("parsing --as-of: %w", err)
				}
			}

			report, err := ledger.TrialBalance(b.accounts, b.txs, asOf)
			if err != nil {
				return err
			}
			warnProblems(report.Problems)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tACCOUNT\tDEBIT\tCREDIT")
			for _, row := range report.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					row.Code, row.Name, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
			}
			fmt.Fprintf(w, "\tTOTAL\t%s\t%s\n",
				report.TotalDebit.StringFixed(2), report.TotalCredit.StringFixed(2))
			w.Flush()

			if !report.Balanced() {
				return fmt.Errorf("trial balance out of balance: debits %s != credits %s",
					report.TotalDebit.StringFixed(2), report.TotalCredit.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", "", "report date (YYYY-MM-DD), default today")

	return cmd
}
