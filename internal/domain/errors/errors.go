// Package errors defines the application error taxonomy. Every error that
// crosses the delivery boundary implements AppError so the HTTP layer can
// render a stable envelope without inspecting root causes.
package errors

import (
	"net/http"

	"lifeline/internal/errors"
)

// AppError is the contract between usecases and the delivery layer.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() map[string]any
	Unwrap() error
}

// BaseError is the standard AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   map[string]any
	cause     error
}

// NewBaseError creates a BaseError with the given codes and message.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}

	return e.message
}

func (e *BaseError) HTTPCode() int           { return e.httpCode }
func (e *BaseError) ErrorCode() string       { return e.errorCode }
func (e *BaseError) Message() string         { return e.message }
func (e *BaseError) Details() map[string]any { return e.details }
func (e *BaseError) Unwrap() error           { return e.cause }

// WithCause returns a copy of the error carrying the underlying cause.
func (e *BaseError) WithCause(cause error) *BaseError {
	clone := *e
	clone.cause = cause

	return &clone
}

// WithDetails returns a copy of the error carrying structured details.
func (e *BaseError) WithDetails(details map[string]any) *BaseError {
	clone := *e
	clone.details = details

	return &clone
}

// WithMessage returns a copy of the error with a more specific message.
func (e *BaseError) WithMessage(message string) *BaseError {
	clone := *e
	clone.message = message

	return &clone
}

// Is makes sentinel comparison work on copies created by the With* helpers.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// Standard error kinds. Distinguished kinds the session flows depend on are
// ErrProfileNotFound and ErrRequiresRecentLogin.
var (
	ErrInvalidInput       = NewBaseError(http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
	ErrUnauthorized       = NewBaseError(http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	ErrInvalidCredentials = NewBaseError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidToken       = NewBaseError(http.StatusUnauthorized, "INVALID_TOKEN", "token is invalid or expired")
	ErrForbidden          = NewBaseError(http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
	ErrNotFound           = NewBaseError(http.StatusNotFound, "NOT_FOUND", "resource not found")
	ErrConflict           = NewBaseError(http.StatusConflict, "CONFLICT", "resource already exists")
	ErrEmailTaken         = NewBaseError(http.StatusConflict, "EMAIL_TAKEN", "email is already registered")
	ErrInternal           = NewBaseError(http.StatusInternalServerError, "INTERNAL", "internal server error")
	ErrServiceUnavailable = NewBaseError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "a dependent service is unavailable, please retry")

	// ErrProfileNotFound is returned when a profile cannot be found and the
	// lazy-creation path also failed to persist the default stub.
	ErrProfileNotFound = NewBaseError(http.StatusNotFound, "PROFILE_NOT_FOUND", "profile could not be loaded or created")

	// ErrRequiresRecentLogin is returned for sensitive operations attempted
	// with a session older than the configured window. The caller must
	// re-authenticate and retry.
	ErrRequiresRecentLogin = NewBaseError(http.StatusForbidden, "REQUIRES_RECENT_LOGIN", "please sign in again to perform this action")

	ErrInvalidStatusTransition = NewBaseError(http.StatusUnprocessableEntity, "INVALID_STATUS_TRANSITION", "status transition is not allowed")
	ErrCampaignFull            = NewBaseError(http.StatusConflict, "CAMPAIGN_FULL", "campaign has reached its registration capacity")
	ErrCampaignClosed          = NewBaseError(http.StatusUnprocessableEntity, "CAMPAIGN_CLOSED", "campaign is not open for registration")
	ErrAlreadyRegistered       = NewBaseError(http.StatusConflict, "ALREADY_REGISTERED", "donor is already registered for this campaign")
	ErrIneligibleDonor         = NewBaseError(http.StatusUnprocessableEntity, "INELIGIBLE_DONOR", "donor is not currently eligible to donate")
)

// DatabaseExecuteError wraps a persistence failure as an internal AppError.
func DatabaseExecuteError(err error) AppError {
	return ErrInternal.WithMessage("database operation failed").WithCause(err)
}

// WrapMessage annotates an AppError cause with usecase context while keeping
// the taxonomy intact. Non-AppError causes become internal errors.
func WrapMessage(err error, message string) AppError {
	var appErr AppError
	if errors.As(err, &appErr) {
		return &BaseError{
			httpCode:  appErr.HTTPCode(),
			errorCode: appErr.ErrorCode(),
			message:   appErr.Message(),
			details:   appErr.Details(),
			cause:     errors.WithMessage(err, message),
		}
	}

	return ErrInternal.WithCause(errors.WithMessage(err, message))
}
