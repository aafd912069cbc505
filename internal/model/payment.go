package model

// PaymentDetails is returned by the gateways after a successful single charge.
// PayPal fills OrderID/CaptureID, Stripe fills PaymentIntentID.
type PaymentDetails struct {
	OrderID         string `json:"orderId,omitempty"`
	CaptureID       string `json:"captureId,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	Status          string `json:"status"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

// Reference returns the most specific gateway identifier available.
func (p PaymentDetails) Reference() string {
	switch {
	case p.CaptureID != "":
		return p.CaptureID
	case p.PaymentIntentID != "":
		return p.PaymentIntentID
	default:
		return p.OrderID
	}
}

// ChargeResult is the data payload of a single charge or refund.
type ChargeResult struct {
	PaymentDetails *PaymentDetails `json:"paymentDetails,omitempty"`
	DeclineReason  string          `json:"declineReason,omitempty"`
	Row            *Row            `json:"row,omitempty"`
}

type ItemOutcome string

const (
	OutcomeSucceeded ItemOutcome = "succeeded"
	OutcomeFailed    ItemOutcome = "failed"
)

// BulkItemResult is one entry of a bulk response that reports per-row outcomes.
type BulkItemResult struct {
	ID      string      `json:"id"`
	Outcome ItemOutcome `json:"outcome"`
	Message string      `json:"message,omitempty"`
}

// BulkResult is the data payload of a bulk charge or refund. Servers that
// treat the batch atomically leave Results empty.
type BulkResult struct {
	Processed int              `json:"processed"`
	Results   []BulkItemResult `json:"results,omitempty"`
}

// Pagination is the paging metadata attached to list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// RowPage is one page of the row-data table.
type RowPage struct {
	Rows       []Row      `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

type UploadPage struct {
	Sessions   []UploadSession `json:"sessions"`
	Pagination Pagination      `json:"pagination"`
}

// AdminTransactionPage is the cross-gateway listing with filter metadata.
type AdminTransactionPage struct {
	Items      []Row      `json:"items"`
	Pagination Pagination `json:"pagination"`
	Filters    struct {
		Statuses []string `json:"statuses"`
		Gateways []string `json:"gateways"`
		Uploads  []string `json:"uploads"`
	} `json:"filters"`
	Summary map[string]int `json:"summary,omitempty"`
}
