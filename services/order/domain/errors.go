package domain

import "errors"

// Sentinel errors for the order domain. Use errors.Is() to check these.
var (
	// ErrInvalidRestaurantName indicates the restaurant name violates domain constraints.
	ErrInvalidRestaurantName = errors.New("invalid restaurant name")
)
