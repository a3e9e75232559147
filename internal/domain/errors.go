package domain

import "errors"

var (
	// ErrExtraction is returned when a document cannot be parsed as its
	// declared content type at all (missing fields are not errors)
	ErrExtraction = errors.New("document could not be parsed")

	// ErrFetchFailed is returned when document retrieval fails
	ErrFetchFailed = errors.New("document retrieval failed")

	// ErrDocumentNotFound is returned when the source responds with 404
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnknownProfile is returned when an extraction profile name is not registered
	ErrUnknownProfile = errors.New("unknown extraction profile")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a document is not in the cache
	ErrCacheMiss = errors.New("cache miss")
)
