package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/ledger"
)

func newLedgerCommand() *cobra.Command {
	var startStr, endStr, account string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print per-account activity totals and closing balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBooks(cmd)
			if err != nil {
				return err
			}

			window, err := parseWindow(startStr, endStr)
			if err != nil {
				return err
			}

			report, err := ledger.Build(b.accounts, b.txs, window)
			if err != nil {
				return err
			}
			warnProblems(report.Problems)

			if account != "" {
				return printAccountLedger(cmd, report, account)
			}
			printSummaries(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&account, "account", "", "print the full ledger for one account code")

	return cmd
}

func parseWindow(startStr, endStr string) (*ledger.Window, error) {
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, fmt.Errorf("--start and --end must be given together")
	}

	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing --start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return nil, fmt.Errorf("parsing --end: %w", err)
	}
	return &ledger.Window{Start: start, End: end}, nil
}

// Display rounds to two decimals; the underlying report keeps full precision.
func printSummaries(cmd *cobra.Command, report *ledger.Report) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tACCOUNT\tTYPE\tDEBITS\tCREDITS\tCLOSING")
	for _, s := range report.Summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Code, s.Name, s.Type,
			s.TotalDebits.StringFixed(2), s.TotalCredits.StringFixed(2), s.ClosingBalance.StringFixed(2))
	}
	w.Flush()
}

func printAccountLedger(cmd *cobra.Command, report *ledger.Report, account string) error {
	lines, ok := report.Lines[account]
	if !ok {
		return fmt.Errorf("no activity for account %s", account)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tREFERENCE\tDEBIT\tCREDIT\tBALANCE")
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Date.Format(time.DateOnly), l.Description, l.Reference,
			l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Balance.StringFixed(2))
	}
	return w.Flush()
}
