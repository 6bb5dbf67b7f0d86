// Package errors provides structured error handling for the application
// following enterprise patterns for error management and observability.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeRecipeNotFound            ErrorCode = "RECIPE_NOT_FOUND"
	CodeHouseholdNotFound         ErrorCode = "HOUSEHOLD_NOT_FOUND"
	CodeCanonicalItemNotFound     ErrorCode = "CANONICAL_ITEM_NOT_FOUND"
	CodePantryEntryNotFound       ErrorCode = "PANTRY_ENTRY_NOT_FOUND"
	CodeDuplicateCanonicalItem    ErrorCode = "DUPLICATE_CANONICAL_ITEM"
	CodeDuplicateSubstitutionRule ErrorCode = "DUPLICATE_SUBSTITUTION_RULE"
	CodeVocabularyUnavailable     ErrorCode = "VOCABULARY_UNAVAILABLE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeRecipeNotFound, CodeHouseholdNotFound,
		CodeCanonicalItemNotFound, CodePantryEntryNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateCanonicalItem, CodeDuplicateSubstitutionRule:
		return http.StatusConflict
	case CodeServiceUnavailable, CodeVocabularyUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.Title(resource))
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewHouseholdNotFoundError creates a household not found error
func NewHouseholdNotFoundError(householdID string) *AppError {
	return NewAppError(
		CodeHouseholdNotFound,
		"Household not found",
		fmt.Sprintf("Household with ID %s does not exist", householdID),
	).WithMetadata("household_id", householdID)
}

// NewDuplicateCanonicalItemError creates a duplicate canonical item error
func NewDuplicateCanonicalItemError(name string) *AppError {
	return NewAppError(
		CodeDuplicateCanonicalItem,
		"Canonical item already exists",
		fmt.Sprintf("An item named %q is already in the vocabulary", name),
	).WithMetadata("name", name)
}

// NewDuplicateSubstitutionRuleError creates a duplicate substitution rule error.
// The pair is reported in canonical order so A↔B and B↔A collide on the same message.
func NewDuplicateSubstitutionRuleError(itemA, itemB string) *AppError {
	if itemB < itemA {
		itemA, itemB = itemB, itemA
	}
	return NewAppError(
		CodeDuplicateSubstitutionRule,
		"Substitution rule already exists",
		fmt.Sprintf("A rule for the pair (%s, %s) is already curated", itemA, itemB),
	).WithMetadata("item_a", itemA).WithMetadata("item_b", itemB)
}

// NewVocabularyUnavailableError creates a vocabulary unavailable error
func NewVocabularyUnavailableError(cause error) *AppError {
	return NewAppError(
		CodeVocabularyUnavailable,
		"Canonical vocabulary unavailable",
		"Normalization is degraded until the vocabulary store is reachable",
	).WithCause(cause)
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
