// Package remote is the typed HTTP boundary to the OKR store. It holds no
// business logic: each function issues one request, attaches the auth token
// when present, and returns either the parsed payload or a categorized
// *Error. It never retries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const requestTimeout = 30 * time.Second

// Client provides typed access to the remote OKR API. It is safe for
// concurrent use; the auth token is written once at login before any
// concurrent fetching starts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	log        zerolog.Logger
}

// New creates a Client for the given base URL (scheme and host, no
// trailing slash). The logger is used at debug level only; pass
// zerolog.Nop() to silence it.
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the currently forwarded bearer token, if any.
func (c *Client) Token() string { return c.token }

// do issues a JSON request and decodes the response body into out (skipped
// when out is nil). All failures come back as *Error tagged with op.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: "encoding request: " + err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Message: "building request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("op", op).Str("method", method).Str("path", path).
			Err(err).Msg("round trip failed")
		return &Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	c.log.Debug().Str("op", op).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Msg("request")

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{Op: op, Status: resp.StatusCode, Message: apiMessage(raw)}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, Message: "decoding response: " + err.Error()}
		}
	}
	return nil
}

// apiMessage extracts the server's {"message": ...} field from an error
// body, falling back to the raw body.
func apiMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(raw)
}
