package sandbox

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hance08/payops/internal/model"
	"github.com/shopspring/decimal"
)

const batchCSV = "Expedia ID,Name,Amount to charge,Currency,Card Number,Card Expire,Card CVV,Connected Account\n" +
	"E1,Ada,100.00,usd,4111111111111111,12/2027,123,\n" +
	"E2,Alan,55.5,USD,4111111111111111,12/2027,123,acct_sandbox\n" +
	"E3,Grace,12,USD,4111111111111111,12/2027,123,\n"

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	cfg := DefaultConfig()
	srv := New(cfg)
	token, err := srv.IssueToken(cfg.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return srv, token
}

func serve(t *testing.T, srv *Server, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v (%s)", req.URL.Path, err, rec.Body.String())
	}
	return rec.Code, env
}

func jsonRequest(method, path string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PAYOPS_SANDBOX_ROWS_PER_POLL", "5")
	t.Setenv("PAYOPS_SANDBOX_DECLINE_CARDS", "1,2")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RowsPerPoll != 5 {
		t.Errorf("expected 5 rows per poll, got %d", cfg.RowsPerPoll)
	}
	if len(cfg.DeclineCards) != 2 {
		t.Errorf("expected 2 decline cards, got %v", cfg.DeclineCards)
	}
	if cfg.OTP != DefaultConfig().OTP {
		t.Errorf("expected default OTP, got %q", cfg.OTP)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	srv, _ := newTestServer(t)

	code, env := serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/get-row-data", nil), "not-a-jwt")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if env.Status != "error" {
		t.Errorf("expected error envelope, got %q", env.Status)
	}
}

func TestUploadProcessesOnPoll(t *testing.T) {
	srv, token := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, _ := form.CreateFormFile("file", "batch.csv")
	part.Write([]byte(batchCSV))
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	code, env := serve(t, srv, req, token)
	if code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", code, env.Message)
	}

	var session model.UploadSession
	json.Unmarshal(env.Data, &session)
	if session.Status != model.UploadProcessing || session.TotalRows != 3 {
		t.Fatalf("unexpected session after upload: %+v", session)
	}

	var page model.UploadPage
	for i := 0; i < 3; i++ {
		_, env = serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/upload/sessions?uploadId="+session.UploadID, nil), token)
		json.Unmarshal(env.Data, &page)
	}
	if len(page.Sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(page.Sessions))
	}
	got := page.Sessions[0]
	if got.Status != model.UploadCompleted || got.ProcessedRows != got.TotalRows {
		t.Fatalf("expected completed session, got %+v", got)
	}

	_, env = serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/get-row-data?uploadId="+session.UploadID, nil), token)
	var rows model.RowPage
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows.Rows))
	}
	if rows.Rows[1].Gateway != model.GatewayStripe {
		t.Errorf("row with connected account should be stripe, got %s", rows.Rows[1].Gateway)
	}
	for _, r := range rows.Rows {
		if r.Status != model.StatusReadyToCharge {
			t.Errorf("row %s: expected Ready to charge, got %q", r.ExpediaID, r.Status)
		}
	}
}

func TestIdempotentReplay(t *testing.T) {
	srv, token := newTestServer(t)
	rows := srv.SeedRows(model.Row{GuestName: "Ada", Amount: decimal.RequireFromString("10.00"), Card: model.Card{Number: "4111111111111111"}})

	payment := map[string]any{
		"rowId":    rows[0].ID,
		"amount":   "10.00",
		"currency": "USD",
		"card":     map[string]string{"number": "4111111111111111", "expiry": "2027-12", "cvv": "123"},
	}

	first := jsonRequest(http.MethodPost, "/api/paypal/process-payment", payment)
	first.Header.Set("Idempotency-Key", "k-1")
	code, _ := serve(t, srv, first, token)
	if code != http.StatusOK {
		t.Fatalf("first charge failed: %d", code)
	}

	second := jsonRequest(http.MethodPost, "/api/paypal/process-payment", payment)
	second.Header.Set("Idempotency-Key", "k-1")
	code, env := serve(t, srv, second, token)
	if code != http.StatusOK {
		t.Fatalf("replay should succeed, got %d: %s", code, env.Message)
	}

	third := jsonRequest(http.MethodPost, "/api/paypal/process-payment", payment)
	third.Header.Set("Idempotency-Key", "k-2")
	code, env = serve(t, srv, third, token)
	if code != http.StatusBadRequest || env.Message != "Row is already charged" {
		t.Fatalf("new key must hit the handler, got %d %q", code, env.Message)
	}
}

func TestBulkReportsPerItem(t *testing.T) {
	srv, token := newTestServer(t)
	rows := srv.SeedRows(
		model.Row{GuestName: "A", Amount: decimal.NewFromInt(5), Card: model.Card{Number: "4111111111111111"}},
		model.Row{GuestName: "B", Amount: decimal.NewFromInt(5), Card: model.Card{Number: "4000000000000002"}},
	)

	req := jsonRequest(http.MethodPost, "/api/paypal/process-bulk-payments", map[string]any{"rowIds": []string{rows[0].ID, rows[1].ID}})
	code, env := serve(t, srv, req, token)
	if code != http.StatusOK {
		t.Fatalf("bulk failed: %d %s", code, env.Message)
	}

	var result model.BulkResult
	json.Unmarshal(env.Data, &result)
	if result.Processed != 1 || len(result.Results) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Results[1].Outcome != model.OutcomeFailed {
		t.Errorf("declined card should fail, got %+v", result.Results[1])
	}

	declined, _ := srv.Row(rows[1].ID)
	if declined.Status != model.StatusDeclined {
		t.Errorf("expected Declined, got %q", declined.Status)
	}
}
