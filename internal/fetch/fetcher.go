// Package fetch retrieves raw feed documents over HTTP.
//
// Each call is independently time-boxed so one slow feed never delays the
// others, and failures are reported as typed errors the caller records in
// the feed's status rather than propagating.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second

	// maxBodyBytes caps how much of a response we read. Feeds larger than
	// this are almost certainly broken or hostile.
	maxBodyBytes = 10 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/122.0 Safari/537.36 RSSDOS/desktop"
)

// Fetcher performs HTTP GETs against feed URLs.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// New creates a Fetcher whose requests time out after the given duration.
// A non-positive timeout selects the default.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		// Timeout comes from the per-request context, not the client,
		// so callers can shorten it further.
		client: &http.Client{},
		// Polite pacing across a cycle's fan-out.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		timeout: timeout,
	}
}

// Fetch retrieves the raw bytes at url. Errors are always *Error with a
// classified Kind.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, classify(url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:   KindHTTPStatus,
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(url, err)
	}
	return body, nil
}

// classify maps a transport error onto the fetch error taxonomy.
func classify(url string, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &Error{Kind: KindConnectionRefused, URL: url, Err: err}
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}

	return &Error{Kind: KindUnreachable, URL: url, Err: err}
}
