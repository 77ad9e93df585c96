// Package ygoprodeck downloads the card catalog from the YGOPRODeck API.
package ygoprodeck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultURL is the full card list endpoint.
	DefaultURL = "https://db.ygoprodeck.com/api/v7/cardinfo.php"

	rateLimitDelay = 100 * time.Millisecond // 10 req/sec
	requestTimeout = 2 * time.Minute        // the full list is tens of MB
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// ErrInvalidPayload is returned when the response is not a card list document.
var ErrInvalidPayload = errors.New("response is not a card list")

// StatusError is returned for non-retryable HTTP responses.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client is a YGOPRODeck API client with rate limiting and retries.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	logger      *slog.Logger
	sleep       func(context.Context, time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another cardinfo endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for retry messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new YGOPRODeck client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "ygo-catalog/1.0",
		logger:      slog.Default(),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint the client downloads from.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCardInfo downloads the full card list and returns the raw document
// after checking that it carries a data array.
func (c *Client) FetchCardInfo(ctx context.Context) ([]byte, error) {
	body, err := c.doRequest(ctx, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card info: %w", err)
	}

	var doc struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("%w: missing data array", ErrInvalidPayload)
	}

	c.logger.Info("Fetched card list", "url", c.baseURL, "cards", len(doc.Data), "bytes", len(body))
	return body, nil
}

// Download fetches the card list and writes it to path with four-space
// indentation. The file is replaced atomically, so a failed download never
// leaves a truncated catalog behind. It returns the number of bytes written.
func (c *Client) Download(ctx context.Context, path string) (int, error) {
	body, err := c.FetchCardInfo(ctx)
	if err != nil {
		return 0, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "    "); err != nil {
		return 0, fmt.Errorf("failed to format card list: %w", err)
	}
	out.WriteByte('\n')

	if err := writeFileAtomic(path, out.Bytes()); err != nil {
		return 0, err
	}
	return out.Len(), nil
}

// doRequest performs a GET with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying card list request", "attempt", attempt, "backoff", backoff, "error", lastErr)
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff = min(backoff*2, maxBackoff)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read response body: %w", readErr)
				continue
			}
			return body, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
				backoff = min(time.Duration(secs)*time.Second, maxBackoff)
			}

		case resp.StatusCode >= 500:
			lastErr = &StatusError{URL: url, StatusCode: resp.StatusCode, Body: truncate(body)}

		default:
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: truncate(body)}
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
