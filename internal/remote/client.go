// Package remote is the client for the catalog and session backend:
// stream resolution, liked songs, recently played and playlists.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultCatalogURL serves track metadata and stream locators.
	DefaultCatalogURL = "http://localhost:5000/api/audius"
	// DefaultSessionURL serves the per-user endpoints.
	DefaultSessionURL = "http://localhost:5000/api"

	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 3
	baseRetryWait     = 500 * time.Millisecond
	maxErrorBody      = 4 << 10
)

// TokenSource supplies the bearer credential. An empty token means signed out.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed credential, e.g. from the command line.
type StaticToken string

// Token returns the credential.
func (t StaticToken) Token() (string, error) { return string(t), nil }

// Options configures a Client.
type Options struct {
	CatalogURL string
	SessionURL string
	Tokens     TokenSource
	HTTPClient *http.Client
	Timeout    time.Duration // per attempt
	MaxRetries int           // extra attempts after the first; negative disables retries
	RetryWait  time.Duration // first backoff, doubled each attempt
	Logger     *slog.Logger
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	catalogURL string
	sessionURL string
	tokens     TokenSource
	timeout    time.Duration
	maxRetries int
	retryWait  time.Duration
	log        *slog.Logger
}

// New creates a client, filling unset options with defaults.
func New(opts Options) *Client {
	c := &Client{
		httpClient: opts.HTTPClient,
		catalogURL: strings.TrimRight(opts.CatalogURL, "/"),
		sessionURL: strings.TrimRight(opts.SessionURL, "/"),
		tokens:     opts.Tokens,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		retryWait:  opts.RetryWait,
		log:        opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.catalogURL == "" {
		c.catalogURL = DefaultCatalogURL
	}
	if c.sessionURL == "" {
		c.sessionURL = DefaultSessionURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	switch {
	case c.maxRetries < 0:
		c.maxRetries = 0
	case c.maxRetries == 0:
		c.maxRetries = defaultMaxRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = baseRetryWait
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// HasCredentials reports whether a session token is available.
func (c *Client) HasCredentials() bool {
	token, err := c.token()
	return err == nil && token != ""
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token()
}

// authMode says whether a request needs the session credential.
type authMode int

const (
	authOptional authMode = iota
	authRequired
)

func (c *Client) get(ctx context.Context, url string, auth authMode, result any) error {
	return c.request(ctx, http.MethodGet, url, nil, auth, c.maxRetries, result)
}

func (c *Client) post(ctx context.Context, url string, body any, result any) error {
	return c.request(ctx, http.MethodPost, url, body, authRequired, c.maxRetries, result)
}

// postOnce sends a POST that must not be repeated: when the response is lost
// the server may already have applied it.
func (c *Client) postOnce(ctx context.Context, url string, body any, result any) error {
	return c.request(ctx, http.MethodPost, url, body, authRequired, 0, result)
}

func (c *Client) del(ctx context.Context, url string, result any) error {
	return c.request(ctx, http.MethodDelete, url, nil, authRequired, c.maxRetries, result)
}

func (c *Client) request(
	ctx context.Context,
	method, url string,
	body any,
	auth authMode,
	retries int,
	result any,
) error {
	token, err := c.token()
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if token == "" && auth == authRequired {
		return ErrAuthRequired
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	log := c.log.With("method", method, "url", url, "request_id", requestID)

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			wait := c.retryWait * time.Duration(1<<(attempt-1))
			log.Debug("Retrying request", "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err := c.do(ctx, method, url, payload, token, requestID, result)
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug("Request failed", "attempt", attempt, "error", err)
	}

	if retries == 0 {
		return lastErr
	}
	return fmt.Errorf("request failed after %d retries: %w", retries, lastErr)
}

// do performs a single attempt.
func (c *Client) do(ctx context.Context, method, url string, payload []byte, token, requestID string, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return readAPIError(resp, requestID)
	}
	if resp.StatusCode == http.StatusNoContent || result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readAPIError(resp *http.Response, requestID string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
