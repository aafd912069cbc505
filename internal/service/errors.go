package service

import "errors"

var (
	ErrSubmitInFlight          = errors.New("a payment is already being submitted")
	ErrNoEligibleRows          = errors.New("no eligible rows")
	ErrMissingConnectedAccount = errors.New("row has no Stripe connected account")
	ErrNotChargeable           = errors.New("row can not be charged in its current status")
	ErrNotRefundable           = errors.New("only charged rows can be refunded")
	ErrStaleResult             = errors.New("a newer load replaced this result")
	ErrAlreadyLoggedIn         = errors.New("already logged in")
	ErrUnknownGateway          = errors.New("page has no single gateway")
	ErrUploadNotFound          = errors.New("upload session not found")
)

// noEligibleRowsError names the bulk kind that found nothing to do while
// still matching ErrNoEligibleRows.
type noEligibleRowsError struct {
	kind BulkKind
}

func (e *noEligibleRowsError) Error() string {
	if e.kind == BulkRefund {
		return "no refundable rows"
	}
	return "no chargeable rows"
}

func (e *noEligibleRowsError) Is(target error) bool {
	return target == ErrNoEligibleRows
}
