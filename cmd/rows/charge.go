package rows

import (
	"errors"

	"github.com/hance08/payops/internal/app"
	"github.com/hance08/payops/internal/errhandler"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/ui/prompts"
	"github.com/hance08/payops/internal/ui/views"
	"github.com/hance08/payops/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type chargeFlags struct {
	Amount   string
	Currency string
	Card     string
	Expiry   string
	CVV      string
	Name     string
	Email    string
	Yes      bool
}

type chargeRunner struct {
	app   *app.App
	flags *chargeFlags
	cmd   *cobra.Command
}

func NewChargeCmd(a *app.App) *cobra.Command {
	flags := &chargeFlags{}

	cmd := &cobra.Command{
		Use:   "charge <row-id>",
		Short: "Charge a single row",
		Long: `Charge one row through its gateway. The checkout form starts from the row's
stored card and amount; flags override single fields.

Without --yes the form is shown and re-opened with the previous values after
a decline. Stripe rows are charged in cents on the row's connected account.

Examples:
  payops rows charge r1
  payops rows charge r1 --amount 120.50 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &chargeRunner{
				app:   a,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "amount to charge (default: the row's amount)")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&flags.Card, "card", "", "card number")
	cmd.Flags().StringVar(&flags.Expiry, "expiry", "", "card expiry, MM/YYYY or YYYY-MM")
	cmd.Flags().StringVar(&flags.CVV, "cvv", "", "card security code")
	cmd.Flags().StringVar(&flags.Name, "name", "", "cardholder name")
	cmd.Flags().StringVar(&flags.Email, "email", "", "billing email")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "submit without showing the form")

	return cmd
}

func (r *chargeRunner) form(row model.Row) validation.CheckoutForm {
	form := service.FormFor(row)
	if form.Currency == "" {
		form.Currency = r.app.Config.Defaults.Currency
	}

	overrides := []struct {
		value string
		field *string
	}{
		{r.flags.Amount, &form.Amount},
		{r.flags.Currency, &form.Currency},
		{r.flags.Card, &form.CardNumber},
		{r.flags.Expiry, &form.Expiry},
		{r.flags.CVV, &form.CVV},
		{r.flags.Name, &form.HolderName},
		{r.flags.Email, &form.BillingEmail},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.field = o.value
		}
	}
	return form
}

func (r *chargeRunner) Run(rowID string) error {
	ctx := r.cmd.Context()
	svc := r.app.Service

	row, err := svc.Rows.GetRow(ctx, rowID)
	if err != nil {
		return err
	}
	if !service.ResolveActions(row.Status).CanCharge {
		return service.ErrNotChargeable
	}

	form := r.form(*row)
	if r.flags.Yes {
		return r.finish(svc.Checkout.Submit(ctx, *row, form))
	}

	for {
		form, err = prompts.PromptCheckout(*row, form)
		if err != nil {
			return err
		}

		outcome, err := svc.Checkout.Submit(ctx, *row, form)
		if err == nil {
			return r.finish(outcome, nil)
		}
		if !retryable(err) {
			return err
		}

		_, msg := errhandler.Describe(err)
		pterm.Error.Println(msg)
		again, perr := prompts.PromptConfirm("Edit the details and try again?", true)
		if perr != nil {
			return perr
		}
		if !again {
			return nil
		}
	}
}

// retryable reports whether the operator can fix err by editing the form.
func retryable(err error) bool {
	var (
		formErr   *validation.FormError
		chargeErr *service.ChargeError
	)
	return errors.As(err, &formErr) || errors.As(err, &chargeErr) || errors.Is(err, validation.ErrInvalidExpiry)
}

// finish shows the outcome. With payment details the cache is refreshed
// only once the operator has dismissed them.
func (r *chargeRunner) finish(outcome *service.CheckoutOutcome, err error) error {
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	if outcome.Details == nil {
		msg := outcome.Message
		if msg == "" {
			msg = "Payment processed"
		}
		pterm.Success.Println(msg)
		return nil
	}

	if err := views.RenderPaymentDetails(outcome.Details, outcome.Message); err != nil {
		return err
	}
	if !r.flags.Yes {
		if _, err := prompts.PromptConfirm("Close payment details?", true); err != nil {
			return errors.Join(err, outcome.Dismiss(ctx))
		}
	}
	return outcome.Dismiss(ctx)
}
