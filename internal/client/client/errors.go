package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("not allowed")
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid request")
	ErrMediaDisabled  = errors.New("server does not accept file uploads")
	ErrSessionExpired = errors.New("session expired, start a new one")
)
