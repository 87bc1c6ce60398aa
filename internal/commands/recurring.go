package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/journal"
	"github.com/tallybooks/tally/internal/model"
	"github.com/tallybooks/tally/internal/recurring"
)

func newRecurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transaction templates",
	}

	cmd.AddCommand(newRecurringRunCommand())

	return cmd
}

func newRecurringRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Post all due occurrences of recurring templates",
		Long: "Materializes every due, not-yet-posted occurrence of the templates in\n" +
			"recurring.yaml into the journal. Occurrence IDs are deterministic, so\n" +
			"running twice never posts a duplicate.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBooks(cmd)
			if err != nil {
				return err
			}

			tpls, err := recurring.LoadTemplates(filepath.Join(b.root, "recurring.yaml"))
			if err != nil {
				return err
			}

			existing := make([]string, 0, len(b.txs))
			for _, tx := range b.txs {
				existing = append(existing, tx.ID)
			}

			due, err := recurring.NewRunner(existing, nil).DueAll(tpls)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing due")
				return nil
			}

			svc := journal.NewService(b.root)
			for year, txs := range byYear(due) {
				if err := svc.Append(fmt.Sprintf("%d.csv", year), txs); err != nil {
					return err
				}
			}

			logger.Info().Int("posted", len(due)).Int("templates", len(tpls)).Msg("recurring run complete")
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %d transaction(s)\n", len(due))
			return nil
		},
	}
}

func byYear(txs []model.Transaction) map[int][]model.Transaction {
	grouped := make(map[int][]model.Transaction)
	for _, tx := range txs {
		grouped[tx.Date.Year()] = append(grouped[tx.Date.Year()], tx)
	}
	return grouped
}
