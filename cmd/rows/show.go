package rows

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <row-id>",
		Short: "Show one row",
		Long:  `Display a row with the fields of its own gateway and the action its status allows.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := a.Service.Rows.GetRow(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return views.RenderRowDetail(*row)
		},
	}
}
