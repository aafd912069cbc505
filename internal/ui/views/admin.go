package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/ui"
	"github.com/hance08/payops/internal/utils"
	"github.com/pterm/pterm"
)

func RenderAdminTransactions(page *model.AdminTransactionPage) error {
	p := page.Pagination
	pterm.DefaultSection.Printf("Transactions (page %d of %d)", p.Page, max(p.TotalPages, 1))

	if len(page.Items) == 0 {
		pterm.Warning.Println("No transactions found")
	} else {
		tableData := pterm.TableData{{"ID", "Guest", "Upload", "Amount", "Status", "Gateway", "Updated"}}
		for _, r := range page.Items {
			updated := "-"
			if !r.UpdatedAt.IsZero() {
				updated = r.UpdatedAt.Local().Format("2006-01-02 15:04")
			}
			tableData = append(tableData, []string{
				r.ID, r.GuestName, ui.OrDash(r.UploadID), utils.FormatMoney(r.Amount, r.Currency),
				ui.Badge(r.Status), ui.Gateway(r.Gateway), updated,
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
			return err
		}
	}

	if len(page.Summary) > 0 {
		statuses := make([]string, 0, len(page.Summary))
		for s := range page.Summary {
			statuses = append(statuses, s)
		}
		sort.Strings(statuses)

		parts := make([]string, len(statuses))
		for i, s := range statuses {
			parts[i] = fmt.Sprintf("%s: %d", ui.Badge(model.ParseChargeStatus(s)), page.Summary[s])
		}
		pterm.Info.Println(strings.Join(parts, "  "))
	}

	if f := page.Filters; len(f.Statuses)+len(f.Gateways)+len(f.Uploads) > 0 {
		pterm.Info.Printf("Filters available: status [%s] gateway [%s] upload [%d]\n",
			strings.Join(f.Statuses, ", "), strings.Join(f.Gateways, ", "), len(f.Uploads))
	}
	pterm.Info.Printf("Total: %d transactions\n", p.Total)
	return nil
}
