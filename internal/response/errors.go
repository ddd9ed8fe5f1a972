package response

import "fmt"

// Error codes returned to clients
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeTypeImmutable     = "FIELD_TYPE_IMMUTABLE"
	ErrCodeFieldInUse        = "FIELD_IN_USE"
	ErrCodeInvalidDefinition = "INVALID_FIELD_DEFINITION"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// AppError is the application error carried from the service layer to the
// HTTP layer. Details is internal context and is not sent to clients.
type AppError struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError with the given code
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation AppError
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewNotFoundError creates a not-found AppError
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewUnauthorizedError creates an unauthorized AppError
func NewUnauthorizedError(message, details string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, details)
}

// NewForbiddenError creates a forbidden AppError
func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

// NewConflictError creates a conflict AppError
func NewConflictError(message, details string) *AppError {
	return NewAppError(ErrCodeConflict, message, details)
}
