package catalog

import "errors"

// Domain errors for catalog operations

var (
	ErrTitleTooShort       = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong        = errors.New("recipe title must not exceed 200 characters")
	ErrEmptyIngredientName = errors.New("ingredient raw name must not be empty")
	ErrNegativeAmount      = errors.New("ingredient amount cannot be negative")
	ErrIngredientNotFound  = errors.New("ingredient not found on recipe")
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrInvalidIngestItem   = errors.New("ingest item payload does not match its kind")
)
