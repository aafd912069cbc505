package errhandler

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/service"
	"github.com/pterm/pterm"
)

const (
	CancelledMessage      = "Operation Cancelled"
	SessionExpiredMessage = "Session expired, run `payops auth login`"
	NotLoggedInMessage    = "Not logged in, run `payops auth login`"
)

// Kind classifies an error for display.
type Kind int

const (
	KindCancelled Kind = iota
	KindSession
	KindServer
	KindDecline
	KindLocal
	KindUnexpected
)

// Describe returns the line shown to the operator for err.
func Describe(err error) (Kind, string) {
	var (
		apiErr    *api.APIError
		chargeErr *service.ChargeError
		urlErr    *url.Error
	)

	switch {
	case errors.Is(err, terminal.InterruptErr), errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return KindCancelled, CancelledMessage
	case errors.Is(err, api.ErrSessionExpired):
		return KindSession, SessionExpiredMessage
	case errors.Is(err, api.ErrNotLoggedIn):
		return KindSession, NotLoggedInMessage
	case errors.As(err, &chargeErr):
		return KindDecline, chargeErr.Reason
	case errors.As(err, &apiErr):
		return KindServer, apiErr.Message
	case errors.As(err, &urlErr), errors.Is(err, context.DeadlineExceeded):
		return KindUnexpected, api.GenericErrorMessage
	default:
		return KindLocal, capitalize(err.Error())
	}
}

// HandleError prints err for the operator. Unexpected failures show the
// generic message; their cause goes to the debug log. Cancellation exits 0.
func HandleError(err error, logger *pterm.Logger) {
	if err == nil {
		return
	}

	kind, msg := Describe(err)
	switch kind {
	case KindCancelled:
		pterm.Warning.Println(msg)
		os.Exit(0)
	case KindSession:
		pterm.Warning.Println(msg)
	case KindUnexpected:
		if logger != nil {
			logger.Debug("request failed", logger.Args("error", err))
		}
		pterm.Error.Println(msg)
	default:
		pterm.Error.Println(msg)
	}
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	if strings.HasPrefix(s, "'") {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
