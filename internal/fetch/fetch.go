// Package fetch retrieves listing and detail pages over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"golang.org/x/net/html/charset"
)

const defaultUserAgent = "JobHunt/1.0 (+local)"

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// Client wraps http.Client with a per-request timeout and limited retry on
// transient errors.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each attempt. Zero leaves it to HTTPClient.
	Timeout time.Duration
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
}

func New(userAgent string, timeout time.Duration, maxAttempts int) *Client {
	return &Client{
		HTTPClient:  &http.Client{},
		UserAgent:   userAgent,
		Timeout:     timeout,
		MaxAttempts: maxAttempts,
		Backoff:     200 * time.Millisecond,
	}
}

// Fetch GETs raw and returns the body decoded to UTF-8. Errors carry a stack
// (see goerrors.Error.ErrorStack).
func (c *Client) Fetch(ctx context.Context, raw string) ([]byte, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerrors.Wrap(fmt.Errorf("fetch %s: %w", raw, err), 1)
	}
	if s := strings.ToLower(u.Scheme); s != "http" && s != "https" {
		return nil, goerrors.Wrap(fmt.Errorf("fetch %s: unsupported URL scheme %q", raw, u.Scheme), 1)
	}

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; ; i++ {
		body, err := c.tryOnce(ctx, raw)
		if err == nil {
			return body, nil
		}
		if !isTransient(err) || i == attempts-1 || ctx.Err() != nil {
			return nil, goerrors.Wrap(err, 1)
		}
		select {
		case <-ctx.Done():
			return nil, goerrors.Wrap(ctx.Err(), 1)
		case <-time.After(time.Duration(i+1) * c.Backoff):
		}
	}
}

func (c *Client) tryOnce(ctx context.Context, raw string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, &StatusError{URL: raw, Code: res.StatusCode}
	}

	r, err := charset.NewReader(res.Body, res.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// isTransient treats 5xx, 429 and deadline expiry as retryable.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return false
}
