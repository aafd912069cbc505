package admin

import (
	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewAdminCmd(a *app.App) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:         "admin",
		Short:       "Administrator views",
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
	}

	adminCmd.AddCommand(newTransactionsCmd(a))

	return adminCmd
}

func newTransactionsCmd(a *app.App) *cobra.Command {
	q := api.TransactionQuery{}

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions across both gateways",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.Service.Admin.Transactions(cmd.Context(), q)
			if err != nil {
				return err
			}
			return views.RenderAdminTransactions(page)
		},
	}
	cmd.Flags().IntVarP(&q.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", 0, "rows per page (default from config)")
	cmd.Flags().StringVarP(&q.Status, "status", "s", "", "only this charge status")
	cmd.Flags().StringVarP(&q.Gateway, "gateway", "g", "", "paypal or stripe")
	cmd.Flags().StringVarP(&q.UploadID, "upload", "u", "", "only rows from this upload")
	cmd.Flags().StringVar(&q.Search, "search", "", "match on guest, reservation and ids")

	return cmd
}
