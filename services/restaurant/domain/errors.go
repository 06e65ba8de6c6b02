package domain

import "errors"

// Sentinel errors for the restaurant domain. Use errors.Is() to check these.
var (
	// ErrInvalidLimit indicates the requested result limit is out of range.
	ErrInvalidLimit = errors.New("invalid result limit")
)
