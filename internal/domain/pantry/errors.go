package pantry

import "errors"

// Domain errors for pantry operations

var (
	ErrEmptyRawName     = errors.New("pantry entry raw name must not be empty")
	ErrNegativeQuantity = errors.New("pantry quantity cannot be negative")
	ErrAlreadyArchived  = errors.New("pantry entry is already archived")
	ErrEntryNotFound    = errors.New("pantry entry not found")
)
