package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tallybooks/tally/internal/httpapi"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve ledger, trial-balance and cash-flow reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBooks(cmd)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = b.cfg.Server.Addr
			}

			handler := httpapi.NewHandler(b.accounts, b.txs, b.cfg.Reports, logger)
			logger.Info().Str("addr", addr).Int("transactions", len(b.txs)).Msg("serving reports")
			return http.ListenAndServe(addr, httpapi.New(handler, logger))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from tally.yaml)")

	return cmd
}
