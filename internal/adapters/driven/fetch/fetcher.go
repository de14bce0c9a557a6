// Package fetch implements the ImageFetcher port over HTTP, with a
// token-bucket throttle so compositions with many layers do not hammer
// the asset CDN.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// Ensure Fetcher implements the port.
var _ driven.ImageFetcher = (*Fetcher)(nil)

const (
	// DefaultRate is the proactive throttle rate in requests per second.
	DefaultRate = 8

	// DefaultBurst allows a full composition's layers to start at once.
	DefaultBurst = 4

	// DefaultTimeout bounds a single download.
	DefaultTimeout = 30 * time.Second

	// MaxBodyBytes caps a downloaded image. Anything larger than 50 MiB
	// is not a scene layer.
	MaxBodyBytes = 50 << 20
)

// Fetcher downloads image bytes over HTTP.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient replaces the HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithRateLimit replaces the throttle rate and burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(f *Fetcher) { f.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// New creates a fetcher with the default client and throttle.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), DefaultBurst),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the bytes at url. Failures come back as a typed
// *domain.FetchError carrying the URL and HTTP status.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &domain.FetchError{URL: url, Err: domain.ErrInvalidInput}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	if len(data) > MaxBodyBytes {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("body exceeds %d bytes", MaxBodyBytes)}
	}
	return data, nil
}
