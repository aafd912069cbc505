package rows

import (
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/constants"
	"github.com/spf13/cobra"
)

func NewRowsCmd(a *app.App) *cobra.Command {
	rowsCmd := &cobra.Command{
		Use:         "rows",
		Short:       "Browse reservation rows, select them and charge or refund one",
		Long:        `Browse reservation rows page by page, keep a selection for bulk actions and charge or refund single rows.`,
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
	}

	rowsCmd.AddCommand(NewListCmd(a))
	rowsCmd.AddCommand(NewShowCmd(a))
	rowsCmd.AddCommand(NewSelectCmd(a))
	rowsCmd.AddCommand(NewUnselectCmd(a))
	rowsCmd.AddCommand(NewClearCmd(a))
	rowsCmd.AddCommand(NewChargeCmd(a))
	rowsCmd.AddCommand(NewRefundCmd(a))
	rowsCmd.AddCommand(NewEditCmd(a))

	return rowsCmd
}
