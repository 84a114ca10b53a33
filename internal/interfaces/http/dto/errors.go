package dto

import (
	"errors"
	"net/http"

	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
)

// Error codes carried in the "code" field of error bodies
const (
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidTOTP        = "INVALID_TOTP"
	ErrCodeTOTPNotEnabled     = "TOTP_NOT_ENABLED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeStockConflict      = "STOCK_CONFLICT"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidState:       http.StatusBadRequest,
	ErrCodeTOTPNotEnabled:     http.StatusBadRequest,
	ErrCodeStockConflict:      http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeInvalidTOTP:        http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeInternal:           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// internalErrorMessage is the only text a 500 ever carries
const internalErrorMessage = "Internal server error"

// ErrorFor maps an error to its status and body. known is false when the
// error is not part of the domain taxonomy; the caller should log it.
func ErrorFor(err error) (status int, body ErrorResponse, known bool) {
	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, NewValidationErrorResponse(validationErr.Errors), true
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if status, ok := ErrorCodeHTTPStatus[domainErr.Code]; ok && status < http.StatusInternalServerError {
			return status, NewErrorResponse(domainErr.Code, domainErr.Message), true
		}
	}

	return http.StatusInternalServerError, NewErrorResponse(ErrCodeInternal, internalErrorMessage), false
}
