package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFetch is the uniform catalog failure: bad status, network error or an
	// undecodable body all wrap it.
	ErrFetch = errors.New("catalog fetch failed")

	// ErrNotConfigured indicates the catalog API key is missing
	ErrNotConfigured = errors.New("catalog API key is not configured")

	// ErrMovieNotFound indicates the requested movie does not exist upstream
	ErrMovieNotFound = errors.New("movie not found")

	// ErrNilNotifier is the panic value when a toast is raised without a notifier
	ErrNilNotifier = errors.New("notifier used before it was provided")
)
