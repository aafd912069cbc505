package model

import "strings"

// ChargeStatus is the payment lifecycle stage of a reservation row.
type ChargeStatus string

const (
	StatusReadyToCharge    ChargeStatus = "Ready to charge"
	StatusPartiallyCharged ChargeStatus = "Partially charged"
	StatusCharged          ChargeStatus = "Charged"
	StatusRefunded         ChargeStatus = "Refunded"
	StatusFailed           ChargeStatus = "Failed"
	StatusDeclined         ChargeStatus = "Declined"
)

// KnownStatuses lists every status the API is known to emit, in lifecycle order.
var KnownStatuses = []ChargeStatus{
	StatusReadyToCharge,
	StatusPartiallyCharged,
	StatusCharged,
	StatusRefunded,
	StatusFailed,
	StatusDeclined,
}

// ParseChargeStatus maps loosely formatted input ("charged", " READY TO CHARGE ")
// onto a known status. Unknown values are returned trimmed but otherwise untouched.
func ParseChargeStatus(s string) ChargeStatus {
	trimmed := strings.Join(strings.Fields(s), " ")
	for _, known := range KnownStatuses {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return ChargeStatus(trimmed)
}

func (s ChargeStatus) Known() bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s ChargeStatus) String() string {
	return string(s)
}

// Gateway identifies which payment integration a row is charged through.
type Gateway string

const (
	GatewayPayPal Gateway = "paypal"
	GatewayStripe Gateway = "stripe"
)

func ParseGateway(s string) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paypal", "pp":
		return GatewayPayPal, nil
	case "stripe":
		return GatewayStripe, nil
	default:
		return "", &InvalidGatewayError{Value: s}
	}
}

type InvalidGatewayError struct {
	Value string
}

func (e *InvalidGatewayError) Error() string {
	return "invalid gateway '" + e.Value + "' (must be paypal or stripe)"
}

func (g Gateway) Label() string {
	switch g {
	case GatewayStripe:
		return "Stripe"
	case GatewayPayPal:
		return "PayPal"
	default:
		return string(g)
	}
}
