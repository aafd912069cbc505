package api

import (
	"errors"
	"net/http"
)

// GenericErrorMessage is shown when the server gave no usable message.
const GenericErrorMessage = "Something went wrong. Please try again."

var (
	// ErrSessionExpired is returned for any 401. The stored token has already
	// been cleared by the time a caller sees it.
	ErrSessionExpired = errors.New("session expired")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// APIError is a request the server rejected, carrying its message verbatim.
// DeclineReason is set when a gateway declined a card.
type APIError struct {
	StatusCode    int
	Message       string
	DeclineReason string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Settled reports whether err is a definitive answer from the server, one
// that retrying with the same request would not change.
func Settled(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError
}
