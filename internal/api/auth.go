package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/store"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type passwordReset struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginResult is the payload of a verified OTP.
type LoginResult struct {
	Token string        `json:"token"`
	User  model.Profile `json:"user"`
}

// Login checks the password and triggers an OTP email. No token is issued yet.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.postJSON(ctx, "/auth/login", credentials{Email: email, Password: password}, nil)
}

// VerifyOTP completes the login and stores the token for SessionTTL.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, error) {
	var result LoginResult
	if _, err := c.postJSON(ctx, "/auth/verify-otp", otpRequest{Email: email, OTP: otp}, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &APIError{StatusCode: 200, Message: "Login response did not include a token"}
	}

	now := c.now()
	err := c.sessions.SaveSession(store.Session{
		Token:     result.Token,
		Email:     email,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(SessionTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &result, nil
}

func (c *Client) ResendOTP(ctx context.Context, email string) (string, error) {
	return c.postJSON(ctx, "/auth/resend-otp", emailRequest{Email: email}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.postJSON(ctx, "/auth/forgot-password", emailRequest{Email: email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	path := "/auth/reset-password/" + url.PathEscape(token)
	return c.postJSON(ctx, path, passwordReset{Password: password, ConfirmPassword: confirm}, nil)
}

func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if _, err := c.getJSON(ctx, "/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout forgets the local token. The API keeps no server-side session.
func (c *Client) Logout() error {
	return c.sessions.ClearSession()
}

// Session returns the stored session, or ErrNotLoggedIn.
func (c *Client) Session() (*store.Session, error) {
	session, err := c.sessions.GetSession()
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	if session.Expired(c.now().Unix()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}
