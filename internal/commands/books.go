package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/accounts"
	"github.com/tallybooks/tally/internal/config"
	"github.com/tallybooks/tally/internal/journal"
	"github.com/tallybooks/tally/internal/model"
)

// books is one consistent snapshot of a books directory: configuration,
// chart of accounts and all posted transactions.
type books struct {
	root     string
	cfg      *config.Config
	accounts *accounts.Service
	txs      []model.Transaction
}

func booksRoot(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("books")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving books path: %w", err)
	}
	return abs, nil
}

func loadBooks(cmd *cobra.Command) (*books, error) {
	root, err := booksRoot(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(root, "tally.yaml"))
	if err != nil {
		return nil, err
	}

	reg, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	txs, err := journal.NewService(root).ReadAll()
	if err != nil {
		return nil, err
	}

	return &books{root: root, cfg: cfg, accounts: reg, txs: txs}, nil
}

func warnProblems(problems []journal.Problem) {
	for _, p := range problems {
		logger.Warn().
			Str("kind", string(p.Kind)).
			Str("transaction", p.TransactionID).
			Msg(p.String())
	}
}
