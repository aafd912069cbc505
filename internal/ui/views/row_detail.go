package views

import (
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/ui"
	"github.com/hance08/payops/internal/utils"
	"github.com/pterm/pterm"
)

// RowDetailData lists the reservation fields followed by the fields of the
// row's own gateway only.
func RowDetailData(row model.Row) pterm.TableData {
	data := pterm.TableData{
		{"Field", "Value"},
		{"ID", row.ID},
		{"Guest", row.GuestName},
		{"Expedia ID", ui.OrDash(row.ExpediaID)},
		{"Reservation ID", ui.OrDash(row.ReservationID)},
		{"Hotel Confirmation", ui.OrDash(row.HotelConfirmationCode)},
		{"Batch", ui.OrDash(row.Batch)},
		{"Stay", row.CheckIn + " → " + row.CheckOut},
		{"Amount", utils.FormatMoney(row.Amount, row.Currency)},
		{"Card", row.Card.Masked()},
		{"Card Expiry", ui.OrDash(row.Card.Expire)},
		{"Status", ui.Badge(row.Status)},
		{"Gateway", ui.Gateway(row.Gateway)},
	}

	switch row.Gateway {
	case model.GatewayStripe:
		if s := row.Stripe; s != nil {
			data = append(data,
				[]string{"Connected Account", s.ConnectedAccount},
				[]string{"Payment Intent", ui.OrDash(s.PaymentIntentID)},
				[]string{"Refund", ui.OrDash(s.RefundID)},
			)
		}
	case model.GatewayPayPal:
		if p := row.PayPal; p != nil {
			data = append(data,
				[]string{"PayPal Order", ui.OrDash(p.OrderID)},
				[]string{"PayPal Capture", ui.OrDash(p.CaptureID)},
				[]string{"Refund", ui.OrDash(p.RefundID)},
			)
		}
	}

	if row.SoftDescriptor != "" {
		data = append(data, []string{"Soft Descriptor", row.SoftDescriptor})
	}
	if row.DeclineReason != "" {
		data = append(data, []string{"Decline Reason", pterm.Red(row.DeclineReason)})
	}
	if !row.UpdatedAt.IsZero() {
		data = append(data, []string{"Updated", row.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	return data
}

func RenderRowDetail(row model.Row) error {
	pterm.Println()
	ui.PrintL2Title("Row %s", row.ID)
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(RowDetailData(row)).
		Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Available action: %s\n", service.ResolveActions(row.Status).Label)
	return nil
}
