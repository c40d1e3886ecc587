package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenExpired        = errors.New("token expired")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrAccountNotApproved  = errors.New("account not approved")
	ErrAlreadyVerified     = errors.New("account already verified")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")
	ErrTooManyRequests     = errors.New("too many requests")
)

// Error codes returned to API clients
const (
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailNotVerified    = "EMAIL_NOT_VERIFIED"
	CodeAccountNotApproved  = "ACCOUNT_NOT_APPROVED"
	CodeAlreadyVerified     = "ALREADY_VERIFIED"
	CodeInvalidOrExpiredOTP = "INVALID_OR_EXPIRED_OTP"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// Validation builds a field-by-field input error.
func Validation(fields map[string]string) *AppError {
	e := NewAppError(http.StatusBadRequest, CodeInvalidInput, "validation failed", ErrInvalidInput)
	e.Fields = fields
	return e
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}

// FromError maps a domain sentinel onto its transport representation.
// Unknown errors become an internal error.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound(err.Error())
	case errors.Is(err, ErrAlreadyExists):
		return Conflict(err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return BadRequest(err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return Unauthorized(err.Error())
	case errors.Is(err, ErrForbidden):
		return Forbidden(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password", err)
	case errors.Is(err, ErrEmailNotVerified):
		return NewAppError(http.StatusForbidden, CodeEmailNotVerified, "email has not been verified", err)
	case errors.Is(err, ErrAccountNotApproved):
		return NewAppError(http.StatusForbidden, CodeAccountNotApproved, "account is awaiting admin approval", err)
	case errors.Is(err, ErrAlreadyVerified):
		return NewAppError(http.StatusConflict, CodeAlreadyVerified, "account is already verified", err)
	case errors.Is(err, ErrInvalidOrExpiredOTP):
		return NewAppError(http.StatusBadRequest, CodeInvalidOrExpiredOTP, "invalid or expired code", err)
	case errors.Is(err, ErrTooManyRequests):
		return NewAppError(http.StatusTooManyRequests, CodeTooManyRequests, "please wait before requesting another code", err)
	default:
		return InternalError(err)
	}
}
