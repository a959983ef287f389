package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrUnknownType     = errors.New("unknown collection type")
)
