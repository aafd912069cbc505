package cmd

import (
	"time"

	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewLedgerCmd(a *app.App) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect unconfirmed payment operations",
		Long: `Every charge and refund is sent with an idempotency key. A key is kept until
the server gives a definite answer, so a retry after a dropped connection
can not charge twice. These commands show and prune the kept keys.`,
	}

	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "List operations whose outcome is unknown",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.Ledger.Pending()
			if err != nil {
				return err
			}
			return views.RenderPendingOperations(entries)
		},
	})

	var olderThan time.Duration
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Forget keys of operations not retried for a while",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.Ledger.Prune(time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			pterm.Success.Printf("Removed %d idempotency keys\n", removed)
			return nil
		},
	}
	pruneCmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "only drop keys last used before this long ago")
	ledgerCmd.AddCommand(pruneCmd)

	return ledgerCmd
}
