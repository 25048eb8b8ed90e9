package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ErrorKind discriminates the closed set of client error conditions.
type ErrorKind string

const (
	// ErrKindAPIKey indicates a malformed API key, detected at construction
	ErrKindAPIKey ErrorKind = "api_key_error"
	// ErrKindAuth indicates the service rejected the credentials (401)
	ErrKindAuth ErrorKind = "authentication_error"
	// ErrKindNotFound indicates the requested file does not exist (404)
	ErrKindNotFound ErrorKind = "file_not_found_error"
	// ErrKindValidation indicates the service rejected the request (400)
	ErrKindValidation ErrorKind = "validation_error"
	// ErrKindRateLimit indicates too many requests (429)
	ErrKindRateLimit ErrorKind = "rate_limit_error"
	// ErrKindNetwork indicates no response was received (dial/timeout)
	ErrKindNetwork ErrorKind = "network_error"
	// ErrKindOperation indicates any other non-2xx status
	ErrKindOperation ErrorKind = "operation_error"
)

// Error is the typed error returned by every failing client operation.
type Error struct {
	Kind    ErrorKind
	Message string
	// Op is the file operation that failed, e.g. "write_file"
	Op string
	// Path is the requested path, set for not-found errors
	Path string
	// StatusCode is the HTTP status, set for operation errors
	StatusCode int
	// RetryAfter is the server-suggested wait in seconds for rate limit
	// errors; 0 when the header was absent or unparsable
	RetryAfter int
	// Err is the underlying error for debugging, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Op, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error of the same kind, so callers can
// match on kind sentinels without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewAPIKeyError creates a construction-time API key format error
func NewAPIKeyError(message string) *Error {
	return &Error{Kind: ErrKindAPIKey, Message: message}
}

// NewAuthError creates an authentication error (401)
func NewAuthError(op, message string) *Error {
	return &Error{Kind: ErrKindAuth, Op: op, Message: message, StatusCode: http.StatusUnauthorized}
}

// NewNotFoundError creates a not-found error carrying the requested path (404)
func NewNotFoundError(op, path, message string) *Error {
	return &Error{Kind: ErrKindNotFound, Op: op, Path: path, Message: message, StatusCode: http.StatusNotFound}
}

// NewValidationError creates a validation error carrying the service message (400)
func NewValidationError(op, message string) *Error {
	return &Error{Kind: ErrKindValidation, Op: op, Message: message, StatusCode: http.StatusBadRequest}
}

// NewRateLimitError creates a rate limit error (429)
func NewRateLimitError(op, message string, retryAfter int) *Error {
	return &Error{Kind: ErrKindRateLimit, Op: op, Message: message, StatusCode: http.StatusTooManyRequests, RetryAfter: retryAfter}
}

// NewNetworkError creates a network error for a request that got no response
func NewNetworkError(op string, err error) *Error {
	return &Error{Kind: ErrKindNetwork, Op: op, Message: "network error during " + op, Err: err}
}

// NewOperationError creates a generic operation error carrying the status code
func NewOperationError(op string, statusCode int, message string) *Error {
	return &Error{Kind: ErrKindOperation, Op: op, Message: message, StatusCode: statusCode}
}

// Classify maps a non-2xx response to one typed error. The body is parsed
// as a failure envelope when possible so the service message survives.
func Classify(op, path string, statusCode int, body []byte, header http.Header) *Error {
	message := http.StatusText(statusCode)

	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return NewAuthError(op, message)
	case http.StatusNotFound:
		if message == http.StatusText(http.StatusNotFound) {
			message = "file not found: " + path
		}
		return NewNotFoundError(op, path, message)
	case http.StatusTooManyRequests:
		retryAfter := 0
		if v := header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				retryAfter = secs
			}
		}
		return NewRateLimitError(op, message, retryAfter)
	case http.StatusBadRequest:
		return NewValidationError(op, message)
	default:
		return NewOperationError(op, statusCode, fmt.Sprintf("request failed with status %d: %s", statusCode, message))
	}
}
