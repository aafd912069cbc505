// Package api is the typed client for the payment-operations REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hance08/payops/internal/store"
	"github.com/pterm/pterm"
)

// SessionTTL is how long a verified login stays valid locally.
const SessionTTL = 7 * 24 * time.Hour

const idempotencyHeader = "Idempotency-Key"

type Client struct {
	baseURL  string
	http     *http.Client
	sessions store.SessionRepository
	logger   *pterm.Logger
	now      func() time.Time

	mu        sync.Mutex
	onExpired []func()
}

// envelope is the shape every JSON endpoint answers with.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func NewClient(baseURL string, timeout time.Duration, sessions store.SessionRepository, logger *pterm.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnSessionExpired registers fn to run after a 401 cleared the token.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = append(c.onExpired, fn)
}

type idempotencyKey struct{}

// WithIdempotencyKey attaches key to every request made with the returned context.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

func idempotencyKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}

// getJSON, postJSON and friends decode the envelope's data into out and
// return the server's message.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) (string, error) {
	return c.call(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) (string, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) (string, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) (string, error) {
	return c.call(ctx, request{method: http.MethodDelete, path: path}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) (string, error) {
	req := request{method: method, path: path}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body: %w", err)
		}
		req.body = bytes.NewReader(payload)
		req.contentType = "application/json"
	}
	return c.call(ctx, req, out)
}

func (c *Client) call(ctx context.Context, r request, out any) (string, error) {
	resp, err := c.do(ctx, r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errorFromEnvelope(resp.StatusCode, env, decodeErr)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response from %s: %w", r.path, decodeErr)
	}
	if env.Status != "success" {
		return "", errorFromEnvelope(resp.StatusCode, env, nil)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode %s payload: %w", r.path, err)
		}
	}

	return env.Message, nil
}

// do sends the request with the bearer token attached and turns a 401 into
// ErrSessionExpired. The caller owns the body of a returned response.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if key := idempotencyKeyFrom(ctx); key != "" {
		req.Header.Set(idempotencyHeader, key)
	}

	token, err := c.token()
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", c.logger.Args("method", r.method, "path", r.path, "error", err))
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}

	c.logger.Debug("api call", c.logger.Args(
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"took", c.now().Sub(start).Round(time.Millisecond),
	))

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.expireSession()
		return nil, ErrSessionExpired
	}

	return resp, nil
}

// token returns the stored token, or "" when there is none. A locally
// expired session is dropped so it is never sent.
func (c *Client) token() (string, error) {
	session, err := c.sessions.GetSession()
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	if session.Expired(c.now().Unix()) {
		if err := c.sessions.ClearSession(); err != nil {
			return "", err
		}
		return "", nil
	}

	return session.Token, nil
}

func (c *Client) expireSession() {
	if err := c.sessions.ClearSession(); err != nil {
		c.logger.Warn("failed to clear session after 401", c.logger.Args("error", err))
	}

	c.mu.Lock()
	hooks := append([]func(){}, c.onExpired...)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func errorFromEnvelope(statusCode int, env envelope, decodeErr error) error {
	msg := GenericErrorMessage
	if decodeErr == nil {
		switch {
		case strings.TrimSpace(env.Message) != "":
			msg = env.Message
		case strings.TrimSpace(env.Error) != "":
			msg = env.Error
		}
	}
	apiErr := &APIError{StatusCode: statusCode, Message: msg}
	if decodeErr == nil && len(env.Data) > 0 {
		var detail struct {
			DeclineReason string `json:"declineReason"`
		}
		if json.Unmarshal(env.Data, &detail) == nil {
			apiErr.DeclineReason = detail.DeclineReason
		}
	}
	return apiErr
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if strings.TrimSpace(value) != "" {
		q.Set(key, value)
	}
}

// flatten turns single-valued query parameters into a plain map.
func flatten(v url.Values) map[string]string {
	out := make(map[string]string, len(v))
	for k, vs := range v {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
