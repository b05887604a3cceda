package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that an attempt was made to create a resource that already exists,
// e.g. a second open money box for the same pharmacy.
var ErrConflict = errors.New("resource already exists")

// ErrDuplicate is kept as an alias of ErrConflict.
var ErrDuplicate = ErrConflict

// ErrInvalidState indicates that the operation is not allowed in the resource's current state.
var ErrInvalidState = errors.New("invalid state")

// ErrRateNotFound indicates that no active exchange rate exists for a currency pair.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrNonCritical marks failures of best-effort side effects. They are logged but never
// propagated to the caller of the originating operation.
var ErrNonCritical = errors.New("non-critical side effect failed")

// AppError carries an HTTP-ish status code and a human readable message together with the
// underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError creates an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflictError creates an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewInvalidStateError creates an AppError wrapping ErrInvalidState.
func NewInvalidStateError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrInvalidState)
}

// NewRateNotFoundError creates an AppError wrapping ErrRateNotFound.
func NewRateNotFoundError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrRateNotFound)
}

// NewNonCriticalError wraps the failure of a best-effort side effect.
func NewNonCriticalError(message string, err error) *AppError {
	return NewAppError(http.StatusOK, message, errors.Join(ErrNonCritical, err))
}

// StatusCode maps an error to the HTTP status code it should be surfaced with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrRateNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
