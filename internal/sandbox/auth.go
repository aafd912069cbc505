package sandbox

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hance08/payops/internal/model"
)

const ctxEmail = "email"

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpBody struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetBody struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if pw, found := s.users[email]; !found || pw != body.Password {
		fail(c, http.StatusBadRequest, "Invalid email or password")
		return
	}
	s.otps[email] = s.cfg.OTP

	ok(c, "OTP sent to your email", gin.H{"email": email})
}

func (s *Server) verifyOTP(c *gin.Context) {
	var body otpBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	s.mu.Lock()
	expected, pending := s.otps[email]
	if pending && expected == strings.TrimSpace(body.OTP) {
		delete(s.otps, email)
	}
	s.mu.Unlock()

	if !pending || expected != strings.TrimSpace(body.OTP) {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	token, err := s.issueToken(email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	ok(c, "Login successful", gin.H{"token": token, "user": s.profileFor(email)})
}

func (s *Server) resendOTP(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		fail(c, http.StatusBadRequest, "Email is required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, pending := s.otps[email]; !pending {
		fail(c, http.StatusBadRequest, "No login in progress for this email")
		return
	}
	s.otps[email] = s.cfg.OTP
	ok(c, "A new OTP has been sent", nil)
}

// forgotPassword always answers the same way so it cannot be used to probe accounts.
func (s *Server) forgotPassword(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		fail(c, http.StatusBadRequest, "Email is required")
		return
	}
	ok(c, "If the account exists, a reset link has been sent", nil)
}

// resetPassword accepts any token of the form "reset-<email>".
func (s *Server) resetPassword(c *gin.Context) {
	var body resetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Password is required")
		return
	}
	if body.Password != body.ConfirmPassword {
		fail(c, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if len(body.Password) < 8 {
		fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	email, found := strings.CutPrefix(c.Param("token"), "reset-")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; !found || !exists {
		fail(c, http.StatusBadRequest, "Reset link is invalid or has expired")
		return
	}
	s.users[email] = body.Password
	ok(c, "Password has been reset", nil)
}

func (s *Server) profile(c *gin.Context) {
	ok(c, "", s.profileFor(c.GetString(ctxEmail)))
}

func (s *Server) profileFor(email string) model.Profile {
	return model.Profile{
		ID:        "usr_" + strings.SplitN(email, "@", 2)[0],
		Email:     email,
		Name:      "Sandbox Operator",
		Role:      "admin",
		CreatedAt: s.now().UTC().Truncate(24 * time.Hour),
	}
}

func (s *Server) issueToken(email string) (string, error) {
	now := s.now()
	jti := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    "payops-sandbox",
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	s.tokenMu.Lock()
	s.liveTokens[jti] = true
	s.tokenMu.Unlock()
	return signed, nil
}

// RevokeTokens invalidates every token issued so far, as a server-side
// logout or secret rotation would.
func (s *Server) RevokeTokens() {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	s.liveTokens = make(map[string]bool)
}

func (s *Server) tokenLive(jti string) bool {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	return s.liveTokens[jti]
}

// IssueToken signs a token for email directly, skipping the OTP round trip.
func (s *Server) IssueToken(email string) (string, error) {
	return s.issueToken(strings.ToLower(email))
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte(s.cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			fail(c, http.StatusUnauthorized, msg)
			return
		}
		if !s.tokenLive(claims.ID) {
			fail(c, http.StatusUnauthorized, "Token revoked")
			return
		}

		c.Set(ctxEmail, claims.Subject)
		c.Next()
	}
}
