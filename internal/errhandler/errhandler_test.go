package errhandler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/validation"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "survey interrupt",
			err:      terminal.InterruptErr,
			wantKind: KindCancelled,
			wantMsg:  CancelledMessage,
		},
		{
			name:     "wrapped session expiry",
			err:      fmt.Errorf("load rows: %w", api.ErrSessionExpired),
			wantKind: KindSession,
			wantMsg:  SessionExpiredMessage,
		},
		{
			name:     "server message verbatim",
			err:      &api.APIError{StatusCode: 400, Message: "Row already charged"},
			wantKind: KindServer,
			wantMsg:  "Row already charged",
		},
		{
			name:     "decline reason",
			err:      &service.ChargeError{Reason: "Card declined: insufficient funds", Err: &api.APIError{StatusCode: 402}},
			wantKind: KindDecline,
			wantMsg:  "Card declined: insufficient funds",
		},
		{
			name:     "validation message verbatim",
			err:      validation.ErrPasswordMismatch,
			wantKind: KindLocal,
			wantMsg:  "Passwords do not match",
		},
		{
			name:     "no eligible rows",
			err:      fmt.Errorf("bulk: %w", service.ErrNoEligibleRows),
			wantKind: KindLocal,
			wantMsg:  "Bulk: no eligible rows",
		},
		{
			name:     "network failure is generic",
			err:      fmt.Errorf("GET /get-row-data: %w", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}),
			wantKind: KindUnexpected,
			wantMsg:  api.GenericErrorMessage,
		},
		{
			name:     "timeout is generic",
			err:      context.DeadlineExceeded,
			wantKind: KindUnexpected,
			wantMsg:  api.GenericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, msg := Describe(tt.err)
			if kind != tt.wantKind {
				t.Errorf("kind = %d, want %d", kind, tt.wantKind)
			}
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}
