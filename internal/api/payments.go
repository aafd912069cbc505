package api

import (
	"context"

	"github.com/hance08/payops/internal/model"
)

// CardInput is the card block of a single charge.
type CardInput struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holderName,omitempty"`
}

type BillingInput struct {
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PayPalPayment sends the amount as a decimal string.
type PayPalPayment struct {
	RowID          string        `json:"rowId"`
	Amount         string        `json:"amount"`
	Currency       string        `json:"currency"`
	Card           CardInput     `json:"card"`
	Billing        *BillingInput `json:"billing,omitempty"`
	SoftDescriptor string        `json:"softDescriptor,omitempty"`
}

// StripePayment sends integer minor units and the connected account to charge on.
type StripePayment struct {
	RowID            string        `json:"rowId"`
	AmountCents      int64         `json:"amount"`
	Currency         string        `json:"currency"`
	ConnectedAccount string        `json:"connectedAccount"`
	Card             CardInput     `json:"card"`
	Billing          *BillingInput `json:"billing,omitempty"`
	SoftDescriptor   string        `json:"statementDescriptor,omitempty"`
}

type refundRequest struct {
	RowID string `json:"rowId"`
}

type bulkRequest struct {
	RowIDs []string `json:"rowIds"`
}

func (c *Client) PayPalProcessPayment(ctx context.Context, p PayPalPayment) (*model.ChargeResult, string, error) {
	var result model.ChargeResult
	msg, err := c.postJSON(ctx, "/paypal/process-payment", p, &result)
	if err != nil {
		return nil, "", err
	}
	return &result, msg, nil
}

func (c *Client) PayPalProcessRefund(ctx context.Context, rowID string) (*model.ChargeResult, string, error) {
	var result model.ChargeResult
	msg, err := c.postJSON(ctx, "/paypal/process-refund", refundRequest{RowID: rowID}, &result)
	if err != nil {
		return nil, "", err
	}
	return &result, msg, nil
}

func (c *Client) StripeCreatePayment(ctx context.Context, p StripePayment) (*model.ChargeResult, string, error) {
	var result model.ChargeResult
	msg, err := c.postJSON(ctx, "/stripe/create-payment", p, &result)
	if err != nil {
		return nil, "", err
	}
	return &result, msg, nil
}

func (c *Client) StripeCreateRefund(ctx context.Context, rowID string) (*model.ChargeResult, string, error) {
	var result model.ChargeResult
	msg, err := c.postJSON(ctx, "/stripe/create-refund", refundRequest{RowID: rowID}, &result)
	if err != nil {
		return nil, "", err
	}
	return &result, msg, nil
}

// BulkPayments charges every id in one request on the gateway's bulk endpoint.
func (c *Client) BulkPayments(ctx context.Context, gateway model.Gateway, rowIDs []string) (*model.BulkResult, string, error) {
	return c.bulk(ctx, "/"+string(gateway)+"/process-bulk-payments", rowIDs)
}

func (c *Client) BulkRefunds(ctx context.Context, gateway model.Gateway, rowIDs []string) (*model.BulkResult, string, error) {
	return c.bulk(ctx, "/"+string(gateway)+"/process-bulk-refunds", rowIDs)
}

func (c *Client) bulk(ctx context.Context, path string, rowIDs []string) (*model.BulkResult, string, error) {
	var result model.BulkResult
	msg, err := c.postJSON(ctx, path, bulkRequest{RowIDs: rowIDs}, &result)
	if err != nil {
		return nil, "", err
	}
	return &result, msg, nil
}
