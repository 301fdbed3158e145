package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "civ6-notif/1.0"
	maxResponseBytes = 1 << 20
)

// Client wraps http.Client with transport hardening and optional retries
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	maxAttempts int
	userAgent   string
}

// Config holds configuration for the client
type Config struct {
	// Timeout bounds a single attempt, including reading the response
	Timeout time.Duration
	// MaxAttempts is the total number of tries; values below 1 mean one try
	MaxAttempts int
	UserAgent   string
	Logger      *slog.Logger
}

// NewClient creates a new HTTP client with security configuration
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			// Webhook endpoints answer directly; a redirect is treated as the response
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger:      cfg.Logger,
		maxAttempts: cfg.MaxAttempts,
		userAgent:   cfg.UserAgent,
	}
}

// RequestConfig contains configuration for an HTTP request
type RequestConfig struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is encoded as JSON when set
	Body any
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, truncateBody(e.Body, 200))
}

// Do executes an HTTP request. Only transport failures, 429 and 5xx responses
// are retried, and only when MaxAttempts allows it.
func (c *Client) Do(ctx context.Context, req RequestConfig) (*Response, error) {
	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			c.logger.DebugContext(ctx, "retrying HTTP request",
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", c.maxAttempts),
				slog.Duration("backoff", backoff),
			)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		resp, err := c.doOnce(ctx, req, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(ctx, err) {
			break
		}
		c.logger.WarnContext(ctx, "retryable HTTP error",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}

	if c.maxAttempts == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, cfg RequestConfig, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.URL, body)
	if err != nil {
		// The URL may embed a credential, so it is left out of the error.
		return nil, errors.New("failed to create request: invalid method or URL")
	}

	for key, value := range cfg.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("HTTP request to %s failed: %w", req.URL.Host, unwrapURLError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugContext(ctx, "HTTP request completed",
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
	}, nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the full URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return true
}

// truncateBody truncates a response body for error messages
func truncateBody(body string, maxLen int) string {
	if len(body) <= maxLen {
		return body
	}
	return body[:maxLen] + "..."
}
