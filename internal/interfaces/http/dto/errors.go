package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations that reject an otherwise well-formed request
// map to 409: the request conflicts with the current state of the world.
var errorCodeHTTPStatus = map[string]int{
	// Auth
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_MISSING":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Lookups
	ErrCodeNotFound:  http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,

	// Conflicts with current state
	ErrCodeConflict:              http.StatusConflict,
	"EMAIL_TAKEN":                http.StatusConflict,
	"CONCURRENCY_CONFLICT":       http.StatusConflict,
	"DEADLINE_PASSED":            http.StatusConflict,
	"SELF_BID":                   http.StatusConflict,
	"DUPLICATE_BID":              http.StatusConflict,
	"SUSPICIOUS_PRICE":           http.StatusConflict,
	"REQUIREMENT_NOT_ACTIVE":     http.StatusConflict,
	"BID_NOT_ACCEPTED":           http.StatusConflict,
	"BID_MISMATCH":               http.StatusConflict,
	"ORDER_EXISTS":               http.StatusConflict,
	"ORDER_NOT_ACTIVE":           http.StatusConflict,
	"PHASE_SKIP":                 http.StatusConflict,
	"PHASE_REGRESSION":           http.StatusConflict,
	"CANCELLATION_WINDOW_CLOSED": http.StatusConflict,
	"INVALID_STATE":              http.StatusConflict,

	// Input
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Server side
	ErrCodeInternal:       http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Codes not
// in the table fall back by prefix: INVALID_* is a 400, ALREADY_* a 409,
// anything else a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "ALREADY_") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
