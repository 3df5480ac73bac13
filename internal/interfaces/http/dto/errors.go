package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when stock is insufficient
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Upstream and availability error codes
const (
	// ErrCodeUpstream is used when a dependent service (gateway, AI) fails
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeUnavailable is used when a feature is disabled or not configured
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Upstream failures
	ErrCodeUpstream:    http.StatusBadGateway,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized HTTP
// error codes. Domain code stays in the response body untouched; only the
// status derivation goes through this table.
var DomainErrorCodeMapping = map[string]string{
	// Resources
	"NOT_FOUND":        ErrCodeNotFound,
	"USER_NOT_FOUND":   ErrCodeNotFound,
	"TENANT_NOT_FOUND": ErrCodeNotFound,
	"PLAN_NOT_FOUND":   ErrCodeNotFound,
	"ITEM_NOT_FOUND":   ErrCodeNotFound,
	"ALREADY_EXISTS":   ErrCodeAlreadyExists,
	"EMAIL_TAKEN":      ErrCodeAlreadyExists,
	"SLUG_TAKEN":       ErrCodeAlreadyExists,
	"DUPLICATE_EVENT":  ErrCodeAlreadyExists,

	// Authentication and authorization
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenInvalid,
	"INVALID_SIGNATURE":   ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"ACCOUNT_DEACTIVATED": ErrCodeForbidden,
	"TENANT_SUSPENDED":    ErrCodeForbidden,

	// Business rules
	"INVALID_STATE":        ErrCodeInvalidState,
	"INVALID_TRANSITION":   ErrCodeInvalidState,
	"ORDER_FULLY_PAID":     ErrCodeBusinessRule,
	"PAYMENT_EXCEEDS_DUE":  ErrCodeBusinessRule,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"CATEGORY_IN_USE":      ErrCodeBusinessRule,
	"ENTRY_READONLY":       ErrCodeBusinessRule,
	"USER_LIMIT_REACHED":   ErrCodeBusinessRule,
	"SUBSCRIPTION_EXPIRED": ErrCodeBusinessRule,
	"NO_ITEMS":             ErrCodeBusinessRule,
	"PRODUCT_INACTIVE":     ErrCodeBusinessRule,
	"PRODUCT_UNAVAILABLE":  ErrCodeBusinessRule,

	// Input validation
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_AMOUNT":        ErrCodeInvalidInput,
	"INVALID_ARTWORK":       ErrCodeInvalidInput,
	"INVALID_CATEGORY":      ErrCodeInvalidInput,
	"INVALID_CODE":          ErrCodeInvalidInput,
	"INVALID_CUSTOMER":      ErrCodeInvalidInput,
	"INVALID_CUSTOMER_NAME": ErrCodeInvalidInput,
	"INVALID_DISCOUNT":      ErrCodeInvalidInput,
	"INVALID_EMAIL":         ErrCodeInvalidInput,
	"INVALID_ENTRY_TYPE":    ErrCodeInvalidInput,
	"INVALID_EVENT":         ErrCodeInvalidInput,
	"INVALID_METHOD":        ErrCodeInvalidInput,
	"INVALID_MOVEMENT":      ErrCodeInvalidInput,
	"INVALID_NAME":          ErrCodeInvalidInput,
	"INVALID_ORDER":         ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER":  ErrCodeInvalidInput,
	"INVALID_PAYLOAD":       ErrCodeInvalidInput,
	"INVALID_PERIOD":        ErrCodeInvalidInput,
	"INVALID_PLAN":          ErrCodeInvalidInput,
	"INVALID_PRICE":         ErrCodeInvalidInput,
	"INVALID_PRODUCT":       ErrCodeInvalidInput,
	"INVALID_PRODUCT_NAME":  ErrCodeInvalidInput,
	"INVALID_QUANTITY":      ErrCodeInvalidInput,
	"INVALID_ROLE":          ErrCodeInvalidInput,
	"INVALID_SLUG":          ErrCodeInvalidInput,
	"INVALID_STATUS":        ErrCodeInvalidInput,
	"INVALID_STOCK":         ErrCodeInvalidInput,
	"INVALID_TENANT":        ErrCodeInvalidInput,
	"WEAK_PASSWORD":         ErrCodeInvalidInput,

	// Upstream and availability
	"AI_UNAVAILABLE":        ErrCodeUpstream,
	"AI_EMPTY_RESPONSE":     ErrCodeUpstream,
	"GATEWAY_ERROR":         ErrCodeUpstream,
	"UPLOAD_FAILED":         ErrCodeUpstream,
	"AI_DISABLED":           ErrCodeUnavailable,
	"GATEWAY_DISABLED":      ErrCodeUnavailable,
	"STORAGE_DISABLED":      ErrCodeUnavailable,
	"GATEWAY_MISCONFIGURED": ErrCodeInternal,

	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// DomainErrorHTTPStatus returns the HTTP status for a raw domain error code
func DomainErrorHTTPStatus(code string) int {
	return GetHTTPStatus(NormalizeErrorCode(code))
}
