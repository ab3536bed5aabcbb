package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// HTTPClient is the shared HTTP plumbing for provider strategies.
// It provides connection pooling, JSON encoding, typed status-code errors,
// and optional retry with exponential backoff.
//
// Discovery paths run with MaxRetries zero (a single attempt, the caller
// falls back to static data); completion paths typically enable retries.
type HTTPClient struct {
	config HTTPConfig
	client *http.Client
}

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	// Provider is the profile ID, used in error values and log entries.
	Provider string

	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the first try.
	// Only transient failures (network errors, 5xx) are retried.
	MaxRetries int

	// MaxIdleConns is the connection pool size. Default: 100.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the per-host pool size. Default: 10.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections stay pooled.
	IdleConnTimeout time.Duration
}

// NewHTTPClient creates an HTTPClient with connection pooling.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 100
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 10
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPClient{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// DoRequest performs an HTTP request. Transient failures (network errors,
// 5xx responses) are retried up to MaxRetries times with exponential
// backoff; authentication, rate-limit, and client errors are returned
// immediately as typed errors.
func (c *HTTPClient) DoRequest(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			slog.Debug("retrying request",
				"provider", c.config.Provider,
				"attempt", attempt,
				"max_retries", c.config.MaxRetries,
				"backoff", backoff,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}
		if req.Header.Get("Content-Type") == "" && body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request to %q failed: %w", url, err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, &AuthError{
				Provider: c.config.Provider,
				Message:  string(errorBody),
			}

		case http.StatusTooManyRequests:
			return nil, &RateLimitError{
				Provider:   c.config.Provider,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
				Message:    string(errorBody),
			}

		default:
			lastErr = &ProviderError{
				Provider:   c.config.Provider,
				StatusCode: resp.StatusCode,
				Message:    string(errorBody),
			}
			if resp.StatusCode < 500 {
				// Client error, retrying will not help.
				return nil, lastErr
			}
		}
	}

	return nil, lastErr
}

// DoJSON performs a JSON request and decodes the response body into out.
func (c *HTTPClient) DoJSON(ctx context.Context, method, url string, in, out interface{}, headers map[string]string) error {
	var bodyBytes []byte
	var err error
	if in != nil {
		bodyBytes, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := c.DoRequest(ctx, method, url, bodyBytes, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ParseError{
			Provider: c.config.Provider,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if out != nil && len(responseBytes) > 0 {
		if err := json.Unmarshal(responseBytes, out); err != nil {
			return &ParseError{
				Provider:    c.config.Provider,
				RawResponse: string(responseBytes),
				Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
			}
		}
	}

	return nil
}

// Close releases pooled connections.
func (c *HTTPClient) Close() {
	c.client.CloseIdleConnections()
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
