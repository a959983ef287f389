package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnknownType   = errors.New("unknown collection type")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrMissingField  = errors.New("missing required field")
)
