package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one reservation/payment record. The gateway tag decides which of
// Stripe or PayPal is populated; exactly one of them is non-nil.
type Row struct {
	ID                    string
	UploadID              string
	ExpediaID             string
	Batch                 string
	ReservationID         string
	HotelConfirmationCode string
	GuestName             string
	CheckIn               string
	CheckOut              string
	Amount                decimal.Decimal
	Currency              string
	Card                  Card
	SoftDescriptor        string
	Status                ChargeStatus
	DeclineReason         string
	UpdatedAt             time.Time

	Gateway Gateway
	Stripe  *StripeFields
	PayPal  *PayPalFields
}

type Card struct {
	Number string
	Expire string
	CVV    string
}

// Masked returns the card number with everything but the last four digits hidden.
func (c Card) Masked() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Number)
	if len(digits) <= 4 {
		return c.Number
	}
	return "•••• " + digits[len(digits)-4:]
}

type StripeFields struct {
	ConnectedAccount string
	PaymentIntentID  string
	RefundID         string
}

type PayPalFields struct {
	OrderID   string
	CaptureID string
	RefundID  string
}

// rowWire mirrors the API's spreadsheet-derived JSON keys.
type rowWire struct {
	ID                    string          `json:"_id"`
	UploadID              string          `json:"uploadId,omitempty"`
	ExpediaID             string          `json:"Expedia ID"`
	Batch                 string          `json:"Batch"`
	ReservationID         string          `json:"Reservation ID"`
	HotelConfirmationCode string          `json:"Hotel Confirmation Code"`
	Name                  string          `json:"Name"`
	CheckIn               string          `json:"Check In"`
	CheckOut              string          `json:"Check Out"`
	Amount                json.RawMessage `json:"Amount to charge"`
	Currency              string          `json:"Currency"`
	CardNumber            string          `json:"Card Number"`
	CardExpire            string          `json:"Card Expire"`
	CardCVV               string          `json:"Card CVV"`
	SoftDescriptor        string          `json:"Soft Descriptor,omitempty"`
	ConnectedAccount      string          `json:"Connected Account,omitempty"`
	Status                string          `json:"Charge status"`
	DeclineReason         string          `json:"declineReason,omitempty"`
	PayPalOrderID         string          `json:"paypalOrderId,omitempty"`
	PayPalCaptureID       string          `json:"paypalCaptureId,omitempty"`
	PayPalRefundID        string          `json:"paypalRefundId,omitempty"`
	StripeIntentID        string          `json:"stripePaymentIntentId,omitempty"`
	StripeRefundID        string          `json:"stripeRefundId,omitempty"`
	UpdatedAt             *time.Time      `json:"updatedAt,omitempty"`
}

func (r *Row) UnmarshalJSON(data []byte) error {
	var w rowWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	amount, err := parseAmount(w.Amount)
	if err != nil {
		return fmt.Errorf("row %s: %w", w.ID, err)
	}

	*r = Row{
		ID:                    w.ID,
		UploadID:              w.UploadID,
		ExpediaID:             w.ExpediaID,
		Batch:                 w.Batch,
		ReservationID:         w.ReservationID,
		HotelConfirmationCode: w.HotelConfirmationCode,
		GuestName:             w.Name,
		CheckIn:               w.CheckIn,
		CheckOut:              w.CheckOut,
		Amount:                amount,
		Currency:              strings.ToUpper(strings.TrimSpace(w.Currency)),
		Card:                  Card{Number: w.CardNumber, Expire: w.CardExpire, CVV: w.CardCVV},
		SoftDescriptor:        w.SoftDescriptor,
		Status:                ParseChargeStatus(w.Status),
		DeclineReason:         w.DeclineReason,
	}
	if w.UpdatedAt != nil {
		r.UpdatedAt = *w.UpdatedAt
	}

	if strings.TrimSpace(w.ConnectedAccount) != "" {
		r.Gateway = GatewayStripe
		r.Stripe = &StripeFields{
			ConnectedAccount: strings.TrimSpace(w.ConnectedAccount),
			PaymentIntentID:  w.StripeIntentID,
			RefundID:         w.StripeRefundID,
		}
	} else {
		r.Gateway = GatewayPayPal
		r.PayPal = &PayPalFields{
			OrderID:   w.PayPalOrderID,
			CaptureID: w.PayPalCaptureID,
			RefundID:  w.PayPalRefundID,
		}
	}

	return nil
}

func (r Row) MarshalJSON() ([]byte, error) {
	// The exact stored amount is kept; cents conversion truncates later.
	amount, err := json.Marshal(r.Amount.String())
	if err != nil {
		return nil, err
	}

	w := rowWire{
		ID:                    r.ID,
		UploadID:              r.UploadID,
		ExpediaID:             r.ExpediaID,
		Batch:                 r.Batch,
		ReservationID:         r.ReservationID,
		HotelConfirmationCode: r.HotelConfirmationCode,
		Name:                  r.GuestName,
		CheckIn:               r.CheckIn,
		CheckOut:              r.CheckOut,
		Amount:                amount,
		Currency:              r.Currency,
		CardNumber:            r.Card.Number,
		CardExpire:            r.Card.Expire,
		CardCVV:               r.Card.CVV,
		SoftDescriptor:        r.SoftDescriptor,
		Status:                string(r.Status),
		DeclineReason:         r.DeclineReason,
	}
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		w.UpdatedAt = &t
	}

	switch {
	case r.Stripe != nil:
		w.ConnectedAccount = r.Stripe.ConnectedAccount
		w.StripeIntentID = r.Stripe.PaymentIntentID
		w.StripeRefundID = r.Stripe.RefundID
	case r.PayPal != nil:
		w.PayPalOrderID = r.PayPal.OrderID
		w.PayPalCaptureID = r.PayPal.CaptureID
		w.PayPalRefundID = r.PayPal.RefundID
	}

	return json.Marshal(w)
}

// parseAmount accepts a JSON number, a quoted number, an empty string or null.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" || string(trimmed) == `""` {
		return decimal.Zero, nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %s: %w", trimmed, err)
	}
	return d, nil
}
