package matching

import "errors"

// Domain errors for substitution curation

var (
	ErrSelfSubstitution = errors.New("substitution rule cannot pair an item with itself")
	ErrInvalidRatio     = errors.New("substitution ratio must be positive")
	ErrDuplicateRule    = errors.New("substitution rule already exists for this pair")
)
