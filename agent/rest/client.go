package rest

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
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	contractx "github.com/colomboai/cairo/agent/contract"
)

const (
	DefaultTimeout       = 30 * time.Second
	AuthSchemeBearer     = "Bearer"
	maxResponseSizeBytes = 2 << 20
	requestIDHeader      = "X-Request-ID"
)

type Config struct {
	BaseURL string
	APIKey  string
	// AuthScheme prefixes APIKey in the Authorization header. Defaults to Bearer.
	AuthScheme string
	Timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client issues JSON requests against a single base URL.
type Client struct {
	baseURL    string
	apiKey     string
	authScheme string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", contractx.ErrConfiguration)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", contractx.ErrConfiguration, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	scheme := strings.TrimSpace(cfg.AuthScheme)
	if scheme == "" {
		scheme = AuthSchemeBearer
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		authScheme: scheme,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient.Timeout <= 0 {
		// injected clients without a deadline still get the fixed per-call timeout
		bounded := *client.httpClient
		bounded.Timeout = timeout
		client.httpClient = &bounded
	}

	return client, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout is the per-call deadline applied to every request.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Do sends one request and returns the decoded JSON response body.
// A nil payload sends no body. Nothing is retried.
func (c *Client) Do(ctx context.Context, method string, path string, query url.Values, payload any) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil rest client", contractx.ErrConfiguration)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request body: %v", contractx.ErrValidation, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", contractx.ErrConfiguration, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.authScheme+" "+c.apiKey)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("rest call failed")
		return nil, fmt.Errorf("%w: %s %s: %w", contractx.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", contractx.ErrTransport, err)
	}
	oversized := len(raw) > maxResponseSizeBytes
	if oversized {
		raw = raw[:maxResponseSizeBytes]
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("rest call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &contractx.HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if oversized {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", contractx.ErrDecode, maxResponseSizeBytes)
	}

	return decode(raw)
}

func decode(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty response body", contractx.ErrDecode)
	}
	var out any
	if err := json.Unmarshal(trimmed, &out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: invalid json at offset %d: %v", contractx.ErrDecode, syntaxErr.Offset, err)
		}
		return nil, fmt.Errorf("%w: %v", contractx.ErrDecode, err)
	}
	return out, nil
}
