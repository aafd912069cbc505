package views

import (
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/ui"
	"github.com/pterm/pterm"
)

// RenderPaymentDetails shows the gateway confirmation of a single charge.
func RenderPaymentDetails(details *model.PaymentDetails, message string) error {
	if message != "" {
		pterm.Success.Println(message)
	}

	data := pterm.TableData{
		{"Reference", details.Reference()},
		{"Status", details.Status},
		{"Amount", details.Amount + " " + details.Currency},
	}
	if details.OrderID != "" {
		data = append(data, []string{"Order ID", details.OrderID})
	}
	if details.CaptureID != "" {
		data = append(data, []string{"Capture ID", details.CaptureID})
	}
	if details.PaymentIntentID != "" {
		data = append(data, []string{"Payment Intent", details.PaymentIntentID})
	}

	ui.PrintL2Title("Payment Details")
	return pterm.DefaultTable.WithData(data).WithBoxed().Render()
}

func RenderRefund(result *model.ChargeResult, message string) {
	if message == "" {
		message = "Refund processed"
	}
	pterm.Success.Println(message)
	if result != nil && result.PaymentDetails != nil {
		pterm.Info.Printf("Reference: %s\n", result.PaymentDetails.Reference())
	}
}
