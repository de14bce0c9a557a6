package driven

import "context"

// ImageFetcher retrieves source image bytes for composition layers.
// Failures surface as a typed *domain.FetchError, never a silent empty
// buffer.
type ImageFetcher interface {
	// Fetch downloads the bytes at url.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
