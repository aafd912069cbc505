package views

import (
	"fmt"

	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/ui"
	"github.com/hance08/payops/internal/utils"
	"github.com/pterm/pterm"
)

const (
	markSelected   = "[x]"
	markUnselected = "[ ]"
)

// RowTableData builds the row table for page, one line per visible row.
func RowTableData(page *service.Page) pterm.TableData {
	tableData := pterm.TableData{
		{"", "ID", "Guest", "Reservation", "Amount", "Status", "Gateway", "Action"},
	}

	for _, row := range page.Rows {
		mark := markUnselected
		if page.Selection.Contains(row.ID) {
			mark = markSelected
		}

		actions := service.ResolveActions(row.Status)
		action := actions.Label
		if actions.CanCharge || actions.CanRefund {
			action = pterm.Bold.Sprint(action)
		} else {
			action = pterm.Gray(action)
		}

		tableData = append(tableData, []string{
			mark,
			row.ID,
			row.GuestName,
			ui.OrDash(row.ReservationID),
			utils.FormatMoney(row.Amount, row.Currency),
			ui.Badge(row.Status),
			ui.Gateway(row.Gateway),
			action,
		})
	}
	return tableData
}

func RenderRowList(page *service.Page) error {
	if len(page.Rows) == 0 {
		pterm.Warning.Println("No rows found")
		return nil
	}

	p := page.Pagination
	pterm.DefaultSection.Printf("Rows (page %d of %d)", p.Page, max(p.TotalPages, 1))

	if err := pterm.DefaultTable.WithHasHeader().WithData(RowTableData(page)).Render(); err != nil {
		return err
	}

	if page.Filter != "" {
		pterm.Info.Printf("Filter %q matched %d of the rows on this page\n", page.Filter, len(page.Rows))
	}
	pterm.Info.Printf("Total: %d rows\n", p.Total)
	if n := len(page.Selection.RowIDs); n > 0 {
		pterm.Info.Println(fmt.Sprintf("%d selected", n))
	}
	return nil
}
