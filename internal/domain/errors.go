package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code and message,
// so wrapped copies created with NewDomainErrorWithCause still match the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrNoFrontMatter        = NewDomainError(ErrCodeValidation, "document has no front-matter block")
	ErrInvalidFrontMatter   = NewDomainError(ErrCodeValidation, "front-matter is not valid YAML")
	ErrInvalidPubDate       = NewDomainError(ErrCodeValidation, "invalid publication date")
	ErrEmptyQuery           = NewDomainError(ErrCodeValidation, "query cannot be empty")
	ErrInvalidResultCount   = NewDomainError(ErrCodeValidation, "result count must be at least 1")
	ErrUnknownTable         = NewDomainError(ErrCodeValidation, "table is not part of the schema")
)

// Not found errors
var (
	ErrTranscriptionNotFound = NewDomainError(ErrCodeNotFound, "transcription not found")
	ErrSourceNotFound        = NewDomainError(ErrCodeNotFound, "document source not found")
)

// Already exists errors
var (
	ErrTranscriptionAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "transcription already exists")
)

// Pipeline errors
var (
	ErrEmbeddingCountMismatch = NewDomainError(ErrCodeInternalError, "embedding count does not match chunk count")
)

// MissingField returns a validation error naming the missing front-matter field.
func MissingField(field string) *DomainError {
	return NewDomainErrorWithCause(ErrCodeValidation, ErrMissingRequiredField.Message, fmt.Errorf("%s", field))
}
