// Package common defines shared constants and sentinel errors used across
// the VaultBox server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors. Ownership misses are deliberately reported
	// as ErrorNotFound so one account cannot probe for another's entities.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorInvalidInput   = errors.New("invalid input")
	ErrorStorageFailure = errors.New("storage failure")

	// Share-link lifecycle errors. Expired is distinct from NotFound so the
	// boundary can answer 410 instead of 404.
	ErrorExpired = errors.New("expired")

	// Auth errors (invalid or malformed bearer token).
	ErrInvalidToken = errors.New("invalid token")
)
