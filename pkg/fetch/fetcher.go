// Package fetch downloads static-map images with client-side rate limiting
// and bounded retries, so a burst of snapshot requests does not hammer the
// image service.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Fetcher is an HTTP image downloader. The zero value is not usable; build
// one with New.
type Fetcher struct {
	Client     *http.Client
	Limiter    *rate.Limiter
	UserAgent  string
	MaxRetries int
}

// New returns a Fetcher allowing rps requests per second with the given
// burst, and a per-request timeout.
func New(rps float64, burst int, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:     &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		UserAgent:  "mapsnap/1.0",
		MaxRetries: 3,
	}
}

// Get downloads url and returns the response body and content type. Transport
// errors and non-2xx statuses are retried up to MaxRetries times with a short
// backoff; a non-2xx status error carries the status code and a trimmed body
// excerpt.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt < f.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(time.Duration(200+attempt*200) * time.Millisecond):
			}
		}
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, "", err
		}

		body, contentType, err := f.once(ctx, url)
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}

func (f *Fetcher) once(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, "", fmt.Errorf("image HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}
