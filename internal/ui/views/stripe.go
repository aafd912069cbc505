package views

import (
	"fmt"
	"strings"

	"github.com/hance08/payops/internal/model"
	"github.com/pterm/pterm"
)

func enabled(b bool) string {
	if b {
		return pterm.Green("yes")
	}
	return pterm.Red("no")
}

func RenderStripeAccounts(accounts []model.StripeAccount) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No connected accounts found")
		return nil
	}

	pterm.DefaultSection.Println("Stripe Connected Accounts")

	tableData := pterm.TableData{{"Account", "Email", "Country", "Charges", "Payouts", "Bank"}}
	for _, a := range accounts {
		bank := "-"
		if len(a.ExternalAccounts.Data) > 0 {
			ext := a.ExternalAccounts.Data[0]
			bank = strings.TrimSpace(fmt.Sprintf("%s ••%s %s", ext.BankName, ext.Last4, strings.ToUpper(ext.Currency)))
		}
		tableData = append(tableData, []string{
			a.ID, a.Email, a.Country, enabled(a.ChargesEnabled), enabled(a.PayoutsEnabled), bank,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	for _, a := range accounts {
		if len(a.Requirements.PastDue) > 0 {
			pterm.Error.Printf("%s has past due requirements: %s\n", a.ID, strings.Join(a.Requirements.PastDue, ", "))
		}
		if len(a.Requirements.CurrentlyDue) > 0 {
			pterm.Warning.Printf("%s has requirements due: %s\n", a.ID, strings.Join(a.Requirements.CurrentlyDue, ", "))
		}
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}

func RenderStripeSettings(s *model.StripeSettings) error {
	data := pterm.TableData{
		{"Mode", s.Mode},
		{"Publishable Key", s.PublishableKey},
		{"Default Currency", strings.ToUpper(s.DefaultCurrency)},
		{"Platform Fee", fmt.Sprintf("%.2f%%", float64(s.PlatformFeeBps)/100)},
		{"Webhook", enabled(s.WebhookConfigured)},
	}
	pterm.DefaultSection.Println("Stripe Settings")
	return pterm.DefaultTable.WithData(data).Render()
}
