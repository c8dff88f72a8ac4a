package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrorTypeTokenExpired    ErrorType = "TOKEN_EXPIRED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeInternal        ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"

	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeIncorrectPassword ErrorCode = "INCORRECT_PASSWORD"
	ErrCodeNoToken           ErrorCode = "NO_TOKEN"
	ErrCodeInvalidToken      ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	ErrCodeAuthFailed        ErrorCode = "AUTH_FAILED"
	ErrCodeRoleNotAllowed    ErrorCode = "ROLE_NOT_ALLOWED"

	ErrCodeUsernameTaken      ErrorCode = "USERNAME_TAKEN"
	ErrCodeUserMissing        ErrorCode = "USER_MISSING"
	ErrCodeEmployeeNotFound   ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeEmployeeEmailTaken ErrorCode = "EMPLOYEE_EMAIL_TAKEN"
	ErrCodeEmployeeMissing    ErrorCode = "EMPLOYEE_MISSING"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthenticatedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthenticated,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewTokenExpiredError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeTokenExpired,
		Code:       ErrCodeTokenExpired,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound      = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrIncorrectPassword = NewUnauthenticatedError("incorrect password", ErrCodeIncorrectPassword)
	ErrNoToken           = NewUnauthenticatedError("no token provided", ErrCodeNoToken)
	ErrInvalidToken      = NewUnauthenticatedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired      = NewTokenExpiredError("token has expired")
	ErrAuthFailed        = NewForbiddenError("authentication failed", ErrCodeAuthFailed)
	ErrRoleNotAllowed    = NewForbiddenError("you do not have the required permissions", ErrCodeRoleNotAllowed)

	ErrUsernameTaken      = NewConflictError("user with this username already exists", ErrCodeUsernameTaken)
	ErrUserMissing        = NewConflictError("user does not exist", ErrCodeUserMissing)
	ErrEmployeeNotFound   = NewNotFoundError("employee not found", ErrCodeEmployeeNotFound)
	ErrEmployeeEmailTaken = NewConflictError("employee with this email already exists", ErrCodeEmployeeEmailTaken)
	ErrEmployeeMissing    = NewConflictError("employee does not exist", ErrCodeEmployeeMissing)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
