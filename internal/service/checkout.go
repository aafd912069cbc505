package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/ledger"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/utils"
	"github.com/hance08/payops/internal/validation"
)

// ChargeFailedMessage is shown when a charge fails without a decline reason.
const ChargeFailedMessage = "Payment failed. Please check the card details and try again."

// CheckoutOutcome is a successful single charge. When Details is set the
// caller shows them and calls Dismiss before tables are refreshed.
type CheckoutOutcome struct {
	Details *model.PaymentDetails
	Message string
	Row     *model.Row
	Dismiss func(context.Context) error
}

// ChargeError is a charge the server rejected. Form values stay with the
// caller so the operator can correct and resubmit.
type ChargeError struct {
	Reason string
	Err    error
}

func (e *ChargeError) Error() string {
	return e.Reason
}

func (e *ChargeError) Unwrap() error {
	return e.Err
}

// Submitter sends single charges. Only one submit runs at a time.
type Submitter struct {
	client   *api.Client
	cache    *query.Cache
	keys     *idempotency
	inFlight atomic.Bool
}

func NewSubmitter(client *api.Client, cache *query.Cache, keys *idempotency) *Submitter {
	return &Submitter{client: client, cache: cache, keys: keys}
}

// InFlight reports whether a submit is running.
func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

// FormFor pre-fills the checkout form from the row's stored values.
func FormFor(row model.Row) validation.CheckoutForm {
	form := validation.CheckoutForm{
		Amount:     row.Amount.Truncate(2).StringFixed(2),
		Currency:   row.Currency,
		CardNumber: row.Card.Number,
		CVV:        row.Card.CVV,
		HolderName: row.GuestName,
	}
	if expiry, err := validation.NormalizeExpiry(row.Card.Expire); err == nil {
		form.Expiry = expiry
	} else {
		form.Expiry = row.Card.Expire
	}
	return form
}

// Submit validates form and charges row through its gateway.
func (s *Submitter) Submit(ctx context.Context, row model.Row, form validation.CheckoutForm) (*CheckoutOutcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if !ResolveActions(row.Status).CanCharge {
		return nil, ErrNotChargeable
	}
	if err := validation.ValidateCheckout(&form); err != nil {
		return nil, err
	}
	expiry, err := validation.NormalizeExpiry(form.Expiry)
	if err != nil {
		return nil, err
	}

	card := api.CardInput{
		Number:     form.CardNumber,
		Expiry:     expiry,
		CVV:        form.CVV,
		HolderName: form.HolderName,
	}
	var billing *api.BillingInput
	if form.BillingEmail != "" {
		billing = &api.BillingInput{Email: form.BillingEmail}
	}

	var send func(context.Context) (*model.ChargeResult, string, error)
	switch row.Gateway {
	case model.GatewayStripe:
		if row.Stripe == nil || row.Stripe.ConnectedAccount == "" {
			return nil, ErrMissingConnectedAccount
		}
		cents, err := utils.ParseToCents(form.Amount)
		if err != nil {
			return nil, err
		}
		payment := api.StripePayment{
			RowID:            row.ID,
			AmountCents:      cents,
			Currency:         form.Currency,
			ConnectedAccount: row.Stripe.ConnectedAccount,
			Card:             card,
			Billing:          billing,
			SoftDescriptor:   row.SoftDescriptor,
		}
		send = func(ctx context.Context) (*model.ChargeResult, string, error) {
			return s.client.StripeCreatePayment(ctx, payment)
		}
	default:
		payment := api.PayPalPayment{
			RowID:          row.ID,
			Amount:         form.Amount,
			Currency:       form.Currency,
			Card:           card,
			Billing:        billing,
			SoftDescriptor: row.SoftDescriptor,
		}
		send = func(ctx context.Context) (*model.ChargeResult, string, error) {
			return s.client.PayPalProcessPayment(ctx, payment)
		}
	}

	var (
		result *model.ChargeResult
		msg    string
	)
	op := ledger.OperationKey(string(query.MutationCharge), string(row.Gateway), row.ID)
	err = s.keys.run(ctx, op, func(ctx context.Context) error {
		var err error
		result, msg, err = send(ctx)
		return err
	})
	if err != nil {
		return nil, chargeFailure(err)
	}

	outcome := &CheckoutOutcome{Message: msg, Dismiss: s.refresh}
	if result != nil {
		outcome.Details = result.PaymentDetails
		outcome.Row = result.Row
	}
	if outcome.Details == nil {
		if err := s.refresh(ctx); err != nil {
			return nil, err
		}
		outcome.Dismiss = func(context.Context) error { return nil }
	}
	return outcome, nil
}

func (s *Submitter) refresh(ctx context.Context) error {
	return s.cache.Invalidate(ctx, query.MutationCharge)
}

// chargeFailure keeps session expiry and transport errors as they are and
// turns server rejections into a ChargeError with the decline reason.
func chargeFailure(err error) error {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	reason := apiErr.DeclineReason
	if reason == "" {
		reason = ChargeFailedMessage
	}
	return &ChargeError{Reason: reason, Err: err}
}
