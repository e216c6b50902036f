// ABOUTME: HTTP client for the clinic management API
// ABOUTME: Single exit point that attaches the bearer token and normalizes failures

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds every request; a human operator retries manually
const defaultTimeout = 30 * time.Second

// CredentialSource supplies the current bearer token. An empty string
// means no credential is stored and no Authorization header is sent.
type CredentialSource interface {
	Token() string
}

// Client is the API client for the clinic backend. Every outbound call
// goes through do, which reads the credential source fresh so a logout
// takes effect on the very next request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
}

// New creates a new API client with the given base URL and credential source
func New(baseURL string, creds CredentialSource) *Client {
	return NewWithTimeout(baseURL, creds, defaultTimeout)
}

// NewWithTimeout creates a client with an explicit request timeout
func NewWithTimeout(baseURL string, creds CredentialSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do performs one request against the backend. The payload is JSON-encoded
// verbatim and the response decoded into out (which may be nil for calls
// whose body the caller discards). Failures come back as *APIError; no
// retries, no caching.
func (c *Client) do(ctx context.Context, method, path string, query *Query, body, out any) error {
	url := c.baseURL + path
	if qs := query.Encode(); qs != "" {
		url += "?" + qs
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// 2xx with an empty body
			return nil
		}
		return fmt.Errorf("invalid response from backend: %w", err)
	}

	return nil
}

// handleRequestError converts transport-level failures (no response
// received) into an APIError without a status code
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &APIError{Message: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &APIError{Message: "request timed out"}
	}
	return &APIError{Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err)}
}

// handleErrorResponse converts a non-2xx response into an APIError,
// preferring the server-provided message field when the body carries one
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
		if errBody.Message != "" {
			message = errBody.Message
		} else {
			message = errBody.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
