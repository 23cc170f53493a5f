package entities

import "errors"

// Error classes for the checksum pipeline. Callers classify with errors.Is.
var (
	// ErrVersionNotFound means the status page loaded but the pattern did not match
	ErrVersionNotFound = errors.New("version not found")

	// ErrFetchFailed covers transport errors and non-success HTTP statuses
	ErrFetchFailed = errors.New("fetch failed")

	// ErrTruncatedArtifact means fewer (or more) bytes arrived than Content-Length declared
	ErrTruncatedArtifact = errors.New("artifact size does not match declared content length")

	// ErrHashing means the downloaded artifact could not be read back
	ErrHashing = errors.New("hashing failed")

	// ErrPersistence means the run report could not be written
	ErrPersistence = errors.New("persisting report failed")

	// ErrInvalidCatalog marks configuration bugs found while loading a catalog
	ErrInvalidCatalog = errors.New("invalid catalog")
)
