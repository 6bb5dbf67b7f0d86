package vocabulary

import "errors"

// Domain errors for vocabulary curation

var (
	ErrEmptyName        = errors.New("canonical item name must not be empty")
	ErrNameNotLowercase = errors.New("canonical item name must be lowercase")
	ErrEmptyAlias       = errors.New("alias must not be empty")
	ErrAliasIsName      = errors.New("alias must differ from the canonical name")
	ErrItemNotFound     = errors.New("canonical item not found")
	ErrDuplicateName    = errors.New("canonical item with this name already exists")
)
