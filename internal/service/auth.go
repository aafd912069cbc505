package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/store"
	"github.com/hance08/payops/internal/validation"
)

type AuthService struct {
	client    *api.Client
	cache     *query.Cache
	selection store.SelectionRepository
}

func NewAuthService(client *api.Client, cache *query.Cache, selection store.SelectionRepository) *AuthService {
	return &AuthService{client: client, cache: cache, selection: selection}
}

// AuthStatus describes the stored login.
type AuthStatus struct {
	Email         string
	Profile       *model.Profile
	SessionExpiry time.Time
	TokenExpiry   time.Time
}

// LoggedIn reports whether a live session is stored.
func (as *AuthService) LoggedIn() bool {
	_, err := as.client.Session()
	return err == nil
}

// Login sends credentials; the server mails an OTP on success.
func (as *AuthService) Login(ctx context.Context, email, password string, force bool) (string, error) {
	if !force && as.LoggedIn() {
		return "", ErrAlreadyLoggedIn
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", errors.New("password is required")
	}
	return as.client.Login(ctx, email, password)
}

// VerifyOTP completes login. Anything cached for a previous user is dropped.
func (as *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*api.LoginResult, error) {
	if err := validation.ValidateOTP(otp); err != nil {
		return nil, err
	}
	result, err := as.client.VerifyOTP(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	if err := as.cache.InvalidateAll(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (as *AuthService) ResendOTP(ctx context.Context, email string) (string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}
	return as.client.ResendOTP(ctx, email)
}

func (as *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}
	return as.client.ForgotPassword(ctx, email)
}

// ResetPassword checks the pair locally before anything is sent.
func (as *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	if err := validation.ValidatePasswordMatch(password, confirm); err != nil {
		return "", err
	}
	return as.client.ResetPassword(ctx, token, password, confirm)
}

// Status reports the stored session and, when reachable, the profile.
func (as *AuthService) Status(ctx context.Context) (*AuthStatus, error) {
	session, err := as.client.Session()
	if err != nil {
		return nil, err
	}

	status := &AuthStatus{
		Email:         session.Email,
		SessionExpiry: time.Unix(session.ExpiresAt, 0),
	}
	if exp, err := TokenExpiry(session.Token); err == nil {
		status.TokenExpiry = exp
	}

	key := query.NewKey(query.ResourceProfile, nil)
	profile, err := query.Fetch(ctx, as.cache, key, as.client.Profile)
	if err != nil {
		return nil, err
	}
	status.Profile = profile
	return status, nil
}

// Logout forgets the token, the cache and the selection.
func (as *AuthService) Logout(ctx context.Context) error {
	_, err := query.Mutate(ctx, as.cache, query.MutationLogout, func(context.Context) (struct{}, error) {
		return struct{}{}, as.client.Logout()
	})
	if err != nil {
		return err
	}
	return as.selection.ClearSelection()
}

// TokenExpiry reads the exp claim without verifying the signature. The
// server remains the judge of validity.
func TokenExpiry(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}
