package rows

import (
	"fmt"

	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/ui"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/hance08/payops/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewRefundCmd(a *app.App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "refund <row-id>",
		Short: "Refund a charged row",
		Long:  `Refund a single charged row through its gateway. This action cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rows := a.Service.Rows

			row, err := rows.GetRow(ctx, args[0])
			if err != nil {
				return err
			}
			if !service.ResolveActions(row.Status).CanRefund {
				return service.ErrNotRefundable
			}

			if !yes {
				pterm.Warning.Printf("About to refund %s to %s via %s\n",
					utils.FormatMoney(row.Amount, row.Currency), row.GuestName, row.Gateway.Label())
				pterm.Warning.Println("This action cannot be undone!")
				confirmed, err := ui.Confirm(fmt.Sprintf("Refund row %s?", row.ID))
				if err != nil {
					return err
				}
				if !confirmed {
					pterm.Info.Println("Refund cancelled")
					return nil
				}
			}

			result, msg, err := rows.Refund(ctx, *row)
			if err != nil {
				return err
			}
			views.RenderRefund(result, msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	return cmd
}
