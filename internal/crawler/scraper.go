// Package crawler fetches catalog pages and extracts product snapshots.
package crawler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pricewatch/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

const (
	userAgent        = "pricewatch/1.0 (+https://github.com/pricewatch)"
	acceptHTML       = "text/html,application/xhtml+xml"
	acceptImage      = "image/*"
	defaultMaxBodyKb = 1024
)

// Scraper performs HTTP fetches with config-driven retry logic.
type Scraper struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
	maxBodyKb   int
}

// NewScraper creates a scraper with default retry settings.
func NewScraper() *Scraper {
	return NewScraperWithConfig(&config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    500,
		MaxDelayMs:        30000,
		BackoffMultiplier: 2.0,
		TimeoutSec:        30,
	}, defaultMaxBodyKb)
}

// NewScraperWithConfig creates a scraper with a custom retry policy.
// maxBodyKb limits how much of an HTML response is read; values <= 0 use the
// default.
func NewScraperWithConfig(retryPolicy *config.RetryPolicy, maxBodyKb int) *Scraper {
	if maxBodyKb <= 0 {
		maxBodyKb = defaultMaxBodyKb
	}

	return &Scraper{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
		maxBodyKb:   maxBodyKb,
	}
}

// FetchPage fetches an HTML page as a string.
func (s *Scraper) FetchPage(url string) (string, error) {
	body, err := s.fetch(url, acceptHTML, int64(s.maxBodyKb)*1024)

	return string(body), err
}

// FetchBytes fetches a binary resource, typically a product image.
func (s *Scraper) FetchBytes(url string) ([]byte, error) {
	return s.fetch(url, acceptImage, 0)
}

// fetch retries transient failures with exponential backoff. A limit of 0
// reads the whole body.
func (s *Scraper) fetch(url, accept string, limit int64) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= s.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if delay := s.retryPolicy.GetRetryDelay(attempt); delay > 0 {
				time.Sleep(delay)
			}
		}

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", accept)

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, s.retryPolicy.MaxAttempts, err)

			continue
		}

		body, status, err := readBody(resp, limit)
		if err == nil {
			return body, nil
		}

		lastErr = err

		// Client errors like 404 will not improve on retry.
		if status != 0 && !isRetryableStatus(status) {
			break
		}
	}

	return nil, lastErr
}

// readBody consumes and closes the response. It returns the status code
// alongside any error so the caller can decide whether to retry.
func readBody(resp *http.Response, limit int64) ([]byte, int, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// isRetryableStatus reports whether a status code is a temporary failure.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
