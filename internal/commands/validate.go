package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/journal"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every transaction against the accounting identity and the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBooks(cmd)
			if err != nil {
				return err
			}

			problems := journal.CheckAll(b.txs, b.accounts)
			warnProblems(problems)
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) in %d transaction(s)", len(problems), len(b.txs))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d transactions, all balanced and mapped\n", len(b.txs))
			return nil
		},
	}
}
