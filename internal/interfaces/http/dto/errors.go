package dto

import "net/http"

// Error code constants organized by category.
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput       = "ERR_INVALID_INPUT"
	ErrCodeInvalidAmount      = "ERR_INVALID_AMOUNT"
	ErrCodeUnknownCurrency    = "ERR_UNKNOWN_CURRENCY"
	ErrCodeInvalidContentType = "ERR_INVALID_CONTENT_TYPE"
	ErrCodeFileTooLarge       = "ERR_FILE_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidAmount:      http.StatusBadRequest,
	ErrCodeUnknownCurrency:    http.StatusBadRequest,
	ErrCodeInvalidContentType: http.StatusBadRequest,
	ErrCodeFileTooLarge:       http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"EMAIL_TAKEN":          ErrCodeAlreadyExists,
	"VERSION_CONFLICT":     ErrCodeConcurrencyConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_AMOUNT":        ErrCodeInvalidAmount,
	"INVALID_AMOUNT_FORMAT": ErrCodeInvalidAmount,
	"INVALID_PERCENTAGE":    ErrCodeInvalidInput,
	"UNKNOWN_CURRENCY":      ErrCodeUnknownCurrency,
	"INVALID_CONTENT_TYPE":  ErrCodeInvalidContentType,
	"FILE_TOO_LARGE":        ErrCodeFileTooLarge,
	"INVALID_FILE_NAME":     ErrCodeInvalidInput,
	"INVALID_FILE_SIZE":     ErrCodeInvalidInput,
	"INVALID_STORAGE_KEY":   ErrCodeInvalidInput,
	"INVALID_TITLE":         ErrCodeInvalidInput,
	"INVALID_NAME":          ErrCodeInvalidInput,
	"INVALID_CATEGORY":      ErrCodeInvalidInput,
	"INVALID_CATEGORY_TYPE": ErrCodeInvalidInput,
	"INVALID_CUSTOMER":      ErrCodeInvalidInput,
	"INVALID_DATE":          ErrCodeInvalidInput,
	"INVALID_EMAIL":         ErrCodeInvalidInput,
	"INVALID_PASSWORD":      ErrCodeInvalidInput,
	"INVALID_DISPLAY_NAME":  ErrCodeInvalidInput,
	"INVALID_OWNER":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"NO_WORKSPACE":          ErrCodeInvalidState,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":   ErrCodeInvalidCredentials,
	"TOKEN_EXPIRED":         ErrCodeTokenExpired,
	"TOKEN_INVALID":         ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":     ErrCodeTokenInvalid,
	"TOKEN_ERROR":           ErrCodeUnauthorized,
	"INVALID_TOKEN":         ErrCodeTokenInvalid,
	"FORBIDDEN":             ErrCodeForbidden,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
	"PASSWORD_HASH_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already in the new format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
