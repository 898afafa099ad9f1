package domain

import "errors"

var (
	// ErrValidation is returned when caller input is malformed. The operation
	// is not attempted and no partial state change occurs.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound is returned when a referenced product, establishment, list
	// or item does not exist. It does not imply retry.
	ErrNotFound = errors.New("entity not found")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)
