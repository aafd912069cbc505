package views

import (
	"fmt"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// RenderBulkPlan lists the rows a bulk run is about to send.
func RenderBulkPlan(kind service.BulkKind, gateway model.Gateway, rows []model.Row, ids []string) error {
	send := make(map[string]bool, len(ids))
	for _, id := range ids {
		send[id] = true
	}

	tableData := pterm.TableData{{"ID", "Guest", "Amount", "Status"}}
	totals := map[string]decimal.Decimal{}
	for _, r := range rows {
		if !send[r.ID] {
			continue
		}
		tableData = append(tableData, []string{r.ID, r.GuestName, utils.FormatMoney(r.Amount, r.Currency), r.Status.String()})
		totals[r.Currency] = totals[r.Currency].Add(r.Amount)
	}

	pterm.DefaultSection.Printf("Bulk %s via %s: %d rows", kind, gateway.Label(), len(ids))
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	for code, total := range totals {
		pterm.Info.Printf("Total %s: %s\n", code, utils.FormatMoney(total, code))
	}
	return nil
}

func RenderBulkOutcome(o *service.BulkOutcome) error {
	if o.Skipped {
		pterm.Info.Println("Nothing selected")
		return nil
	}

	msg := o.Message
	if msg == "" {
		msg = fmt.Sprintf("Bulk %s processed %d rows", o.Kind, len(o.Requested))
	}

	if o.Atomic() {
		pterm.Success.Println(msg)
		return nil
	}

	if len(o.Failed) == 0 {
		pterm.Success.Println(msg)
	} else {
		pterm.Warning.Printf("%s (%d succeeded, %d failed)\n", msg, len(o.Succeeded), len(o.Failed))
	}

	tableData := pterm.TableData{{"ID", "Outcome", "Message"}}
	for _, id := range o.Succeeded {
		tableData = append(tableData, []string{id, pterm.Green("succeeded"), "-"})
	}
	for _, item := range o.Failed {
		tableData = append(tableData, []string{item.ID, pterm.Red("failed"), item.Message})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	if n := len(o.Remaining.RowIDs); n > 0 {
		pterm.Info.Printf("%d rows are still selected\n", n)
	}
	return nil
}
