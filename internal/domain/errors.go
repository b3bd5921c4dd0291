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
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeConfiguration  = "CONFIGURATION_ERROR"
	ErrCodeIndexBuild     = "INDEX_BUILD_ERROR"
	ErrCodeNotInitialized = "NOT_INITIALIZED"
	ErrCodeProvider       = "PROVIDER_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingTitle   = NewDomainError(ErrCodeValidation, "document title is required")
	ErrMissingContent = NewDomainError(ErrCodeValidation, "document content is required")
	ErrEmptyQuestion  = NewDomainError(ErrCodeValidation, "question cannot be empty")
)

// Configuration errors, fatal at startup
var (
	ErrMissingAPIKey      = NewDomainError(ErrCodeConfiguration, "OpenAI API key is not configured")
	ErrMissingDatabaseURL = NewDomainError(ErrCodeConfiguration, "database URL is not configured")
	ErrModelMismatch      = NewDomainError(ErrCodeConfiguration, "embedding model differs from the model used to build the index")
)

// Index errors
var (
	ErrNoIndexableDocuments = NewDomainError(ErrCodeIndexBuild, "no valid documents to index")
	ErrIndexNotBuilt        = NewDomainError(ErrCodeNotInitialized, "knowledge index has not been built")
)

// Provider errors, recoverable at query time
var (
	ErrEmbeddingFailed  = NewDomainError(ErrCodeProvider, "embedding provider call failed")
	ErrCompletionFailed = NewDomainError(ErrCodeProvider, "completion provider call failed")
)

// Authorization errors
var (
	ErrInvalidAPIKey = NewDomainError(ErrCodeUnauthorized, "invalid api key")
)
