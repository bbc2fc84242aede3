package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrLocked        = errors.New("account locked or disabled")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already registered")
)
