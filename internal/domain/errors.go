package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCandidate signals a candidate failing basic validation.
	ErrInvalidCandidate = errors.New("invalid candidate")
	// ErrInvalidRecord signals a catalog record failing basic validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrSuggestQuotaExceeded signals an exhausted suggestion budget.
	ErrSuggestQuotaExceeded = errors.New("suggestion quota exceeded")
	// ErrSuggestProviderError signals a suggestion provider failure.
	ErrSuggestProviderError = errors.New("suggestion provider error")
	// ErrSuggestNotConfigured signals that no suggestion provider is wired.
	ErrSuggestNotConfigured = errors.New("suggestion provider not configured")
)
