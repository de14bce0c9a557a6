package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the asset repository could not be
	// reached. Matching fails closed (empty match set) on this error.
	ErrStoreUnavailable = errors.New("asset store unavailable")

	// ErrBackgroundFetch indicates the background image could not be
	// retrieved. Fatal for the whole composition.
	ErrBackgroundFetch = errors.New("background fetch failed")

	// ErrAllCandidatesFailed indicates every parallel generation task
	// failed, leaving nothing to select a winner from.
	ErrAllCandidatesFailed = errors.New("all candidates failed")

	// ErrStoreClosed indicates the asset store has been closed.
	ErrStoreClosed = errors.New("asset store closed")
)

// FetchError is the typed transport failure surfaced by image fetchers.
// A failed fetch is always an error, never a silent empty buffer.
type FetchError struct {
	// URL is the requested source.
	URL string

	// StatusCode is the HTTP status, zero for transport failures.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
