package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/validation"
)

// PromptCheckout lets the operator review and edit the charge for row. The
// form starts from form's values, so a failed attempt can be re-opened with
// what was typed before.
func PromptCheckout(row model.Row, form validation.CheckoutForm) (validation.CheckoutForm, error) {
	out := form

	summary := fmt.Sprintf("%s · %s · %s", row.GuestName, row.ReservationID, row.Gateway.Label())
	if row.Stripe != nil {
		summary += " · " + row.Stripe.ConnectedAccount
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Checkout").
				Description(summary),
			huh.NewInput().
				Title("Amount:").
				Value(&out.Amount).
				Validate(validation.ValidateAmount),
			huh.NewInput().
				Title("Currency:").
				Value(&out.Currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("currency is required")
					}
					return validation.ValidateCurrency(s)
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Card number:").
				Value(&out.CardNumber),
			huh.NewInput().
				Title("Expiry (MM/YYYY or YYYY-MM):").
				Value(&out.Expiry).
				Validate(validation.ValidateExpiry),
			huh.NewInput().
				Title("CVV:").
				EchoMode(huh.EchoModePassword).
				Value(&out.CVV),
			huh.NewInput().
				Title("Cardholder name:").
				Value(&out.HolderName),
			huh.NewInput().
				Title("Billing email (optional):").
				Value(&out.BillingEmail),
		),
	).Run()
	if err != nil {
		return form, err
	}

	return out, nil
}
