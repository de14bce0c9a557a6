package driven

import "context"

// BlobStore uploads composited artifacts. Upload failure never fails the
// pipeline; the composer falls back to embedding the artifact inline.
type BlobStore interface {
	// Upload stores the bytes under key and returns a public URL.
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}
