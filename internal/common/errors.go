// Package common defines shared constants and sentinel errors used across
// the swappool server, its transports and the client. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Input rejected before touching shared state. Usually wrapped with the reason.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Optional backends that were not configured.
	ErrorMediaDisabled  = errors.New("media storage is not configured")
	ErrorMirrorDisabled = errors.New("durable mirror is not configured")
)
