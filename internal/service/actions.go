package service

import "github.com/hance08/payops/internal/model"

// Actions is what the operator may do with a row in a given status.
type Actions struct {
	CanCharge bool
	CanRefund bool
	Label     string
}

const (
	LabelMakePayment = "Make Payment"
	LabelChargeAgain = "Charge Again"
	LabelRefund      = "Refund"
	LabelDetails     = "Details"
)

// ResolveActions maps every status, known or not, to its actions.
func ResolveActions(status model.ChargeStatus) Actions {
	switch status {
	case model.StatusReadyToCharge, model.StatusPartiallyCharged, model.StatusRefunded:
		return Actions{CanCharge: true, Label: LabelMakePayment}
	case model.StatusFailed, model.StatusDeclined:
		return Actions{CanCharge: true, Label: LabelChargeAgain}
	case model.StatusCharged:
		return Actions{CanRefund: true, Label: LabelRefund}
	default:
		return Actions{Label: LabelDetails}
	}
}

// Tone is the colour family of a status badge.
type Tone string

const (
	ToneSuccess Tone = "green"
	ToneWarning Tone = "yellow"
	ToneInfo    Tone = "cyan"
	ToneDanger  Tone = "red"
	ToneAccent  Tone = "magenta"
	ToneMuted   Tone = "gray"
)

func BadgeTone(status model.ChargeStatus) Tone {
	switch status {
	case model.StatusCharged:
		return ToneSuccess
	case model.StatusPartiallyCharged:
		return ToneWarning
	case model.StatusReadyToCharge:
		return ToneInfo
	case model.StatusFailed, model.StatusDeclined:
		return ToneDanger
	case model.StatusRefunded:
		return ToneAccent
	default:
		return ToneMuted
	}
}
