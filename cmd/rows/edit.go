package rows

import (
	"fmt"
	"strings"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// editableColumns are the row columns the API accepts in an update.
var editableColumns = []string{
	"Name",
	"Amount to charge",
	"Currency",
	"Card Number",
	"Card Expire",
	"Card CVV",
	"Soft Descriptor",
}

func NewEditCmd(a *app.App) *cobra.Command {
	var set map[string]string

	cmd := &cobra.Command{
		Use:   "edit <row-id>",
		Short: "Edit a row's guest, amount or card",
		Long: fmt.Sprintf(`Edit the editable columns of a row: %s.

Without --set the columns are asked one by one; leave a value empty to keep it.

Example:
  payops rows edit r1 --set "Amount to charge=99.00" --set "Card Expire=08/2028"`, strings.Join(editableColumns, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rows := a.Service.Rows

			row, err := rows.GetRow(ctx, args[0])
			if err != nil {
				return err
			}

			update := api.RowUpdate(set)
			if len(update) == 0 {
				update, err = promptUpdate(current(row.GuestName, row.Amount.String(), row.Currency, row.Card.Number, row.Card.Expire, row.Card.CVV, row.SoftDescriptor))
				if err != nil {
					return err
				}
			}
			if len(update) == 0 {
				pterm.Info.Println("Nothing changed")
				return nil
			}

			updated, err := rows.EditRow(ctx, *row, update)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Row %s updated\n", updated.ID)
			return views.RenderRowDetail(*updated)
		},
	}
	cmd.Flags().StringToStringVar(&set, "set", nil, "column=value to change, repeatable")

	return cmd
}

func current(values ...string) map[string]string {
	out := make(map[string]string, len(editableColumns))
	for i, col := range editableColumns {
		out[col] = values[i]
	}
	return out
}

func promptUpdate(existing map[string]string) (api.RowUpdate, error) {
	update := api.RowUpdate{}
	for _, col := range editableColumns {
		v, err := prompts.PromptInput(col+":", existing[col], nil)
		if err != nil {
			return nil, err
		}
		if v != existing[col] {
			update[col] = v
		}
	}
	return update, nil
}
