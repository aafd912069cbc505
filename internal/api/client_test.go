package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/logging"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/sandbox"
	"github.com/hance08/payops/internal/store"
)

type memSessions struct {
	mu      sync.Mutex
	session *store.Session
}

func (m *memSessions) SaveSession(s store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *memSessions) GetSession() (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, store.ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *memSessions) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func newSandboxClient(t *testing.T) (*sandbox.Server, *api.Client, *memSessions) {
	t.Helper()
	sb := sandbox.New(sandbox.DefaultConfig())
	ts := httptest.NewServer(sb.Handler())
	t.Cleanup(ts.Close)

	sessions := &memSessions{}
	client := api.NewClient(ts.URL+"/api", 5*time.Second, sessions, logging.Discard())
	return sb, client, sessions
}

func login(t *testing.T, client *api.Client) {
	t.Helper()
	cfg := sandbox.DefaultConfig()
	ctx := context.Background()
	if _, err := client.Login(ctx, cfg.Email, cfg.Password); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := client.VerifyOTP(ctx, cfg.Email, cfg.OTP); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
}

func TestVerifyOTPStoresSevenDaySession(t *testing.T) {
	_, client, sessions := newSandboxClient(t)

	before := time.Now()
	login(t, client)

	s, err := sessions.GetSession()
	if err != nil {
		t.Fatalf("expected stored session: %v", err)
	}
	if s.Token == "" {
		t.Fatal("expected a token")
	}
	wantExpiry := before.Add(api.SessionTTL).Unix()
	if s.ExpiresAt < wantExpiry-1 || s.ExpiresAt > wantExpiry+5 {
		t.Errorf("expiry %d not about seven days out (%d)", s.ExpiresAt, wantExpiry)
	}

	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != sandbox.DefaultConfig().Email {
		t.Errorf("unexpected profile email %q", profile.Email)
	}
}

func TestWrongOTPIsServerError(t *testing.T) {
	_, client, sessions := newSandboxClient(t)
	cfg := sandbox.DefaultConfig()
	ctx := context.Background()

	if _, err := client.Login(ctx, cfg.Email, cfg.Password); err != nil {
		t.Fatalf("login: %v", err)
	}
	_, err := client.VerifyOTP(ctx, cfg.Email, "000000")

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Invalid or expired OTP" {
		t.Errorf("server message should pass through, got %q", apiErr.Message)
	}
	if _, err := sessions.GetSession(); !errors.Is(err, store.ErrNoSession) {
		t.Errorf("no session should be stored, got %v", err)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	_, client, sessions := newSandboxClient(t)
	sessions.SaveSession(store.Session{Token: "forged", ExpiresAt: time.Now().Add(time.Hour).Unix()})

	fired := 0
	client.OnSessionExpired(func() { fired++ })

	_, err := client.ListRows(context.Background(), api.RowQuery{Page: 1, Limit: 10})
	if !errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, err := sessions.GetSession(); !errors.Is(err, store.ErrNoSession) {
		t.Errorf("token should be cleared, got %v", err)
	}
	if fired != 1 {
		t.Errorf("expected expiry hook once, got %d", fired)
	}
}

func TestLocallyExpiredSessionIsNotSent(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer ts.Close()

	sessions := &memSessions{}
	sessions.SaveSession(store.Session{Token: "old", ExpiresAt: time.Now().Add(-time.Minute).Unix()})
	client := api.NewClient(ts.URL, 0, sessions, logging.Discard())

	if _, err := client.StripeAccounts(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expired token was sent: %q", gotAuth)
	}
	if _, err := sessions.GetSession(); !errors.Is(err, store.ErrNoSession) {
		t.Errorf("expired session should be dropped, got %v", err)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusBadRequest, `{"status":"error","message":"Row not found"}`, "Row not found"},
		{"error field", http.StatusConflict, `{"error":"duplicate upload"}`, "duplicate upload"},
		{"empty body", http.StatusInternalServerError, ``, api.GenericErrorMessage},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, api.GenericErrorMessage},
		{"non-success 200", http.StatusOK, `{"status":"fail","message":"Nope"}`, "Nope"},
		{"non-success without message", http.StatusOK, `{"status":"fail"}`, api.GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := api.NewClient(ts.URL, 0, &memSessions{}, logging.Discard())
			_, err := client.GetRow(context.Background(), "r1")

			var apiErr *api.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Message != tt.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.want)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestNetworkErrorIsWrapped(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := api.NewClient(url, time.Second, &memSessions{}, logging.Discard())
	_, err := client.StripeSettings(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("network failure must not look like a server answer: %v", err)
	}
	if errors.Is(err, api.ErrSessionExpired) {
		t.Fatal("network failure must not expire the session")
	}
}

func TestIdempotencyKeyHeader(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Idempotency-Key")
		w.Write([]byte(`{"status":"success","data":{"processed":1}}`))
	}))
	defer ts.Close()

	client := api.NewClient(ts.URL, 0, &memSessions{}, logging.Discard())
	ctx := api.WithIdempotencyKey(context.Background(), "key-123")

	if _, _, err := client.BulkPayments(ctx, model.GatewayPayPal, []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "key-123" {
		t.Errorf("expected header key-123, got %q", got)
	}
}

func TestUploadAndDownloadRoundTrip(t *testing.T) {
	_, client, _ := newSandboxClient(t)
	login(t, client)
	ctx := context.Background()

	content := "Name,Amount to charge,Card Number\nAda,10.00,4111111111111111\n"
	session, err := client.Upload(ctx, "/tmp/march.csv", strings.NewReader(content), model.GatewayPayPal)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if session.FileName != "march.csv" || session.Status != model.UploadProcessing {
		t.Fatalf("unexpected session %+v", session)
	}

	var buf bytes.Buffer
	name, err := client.DownloadFile(ctx, session.UploadID, &buf)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if name != "march.csv" {
		t.Errorf("expected file name march.csv, got %q", name)
	}
	if buf.String() != content {
		t.Errorf("downloaded content differs: %q", buf.String())
	}

	_, err = client.DownloadFile(ctx, "missing", &buf)
	if !api.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
