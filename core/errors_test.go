package core

import (
	"errors"
	"net/http"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "error with operation",
			err: &Error{
				Kind:    ErrKindNotFound,
				Message: "file not found: a.txt",
				Op:      "read_file",
			},
			expected: "[read_file] file_not_found_error: file not found: a.txt",
		},
		{
			name: "error without operation",
			err: &Error{
				Kind:    ErrKindAPIKey,
				Message: "bad key",
			},
			expected: "api_key_error: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	originalErr := errors.New("connection refused")
	err := NewNetworkError("write_file", originalErr)

	if unwrapped := err.Unwrap(); unwrapped != originalErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, originalErr)
	}
}

func TestError_Is(t *testing.T) {
	err := NewNotFoundError("read_file", "a.txt", "file not found: a.txt")

	if !errors.Is(err, &Error{Kind: ErrKindNotFound}) {
		t.Error("expected errors.Is to match on kind")
	}
	if errors.Is(err, &Error{Kind: ErrKindValidation}) {
		t.Error("expected errors.Is to reject a different kind")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		header     http.Header
		wantKind   ErrorKind
		wantMsg    string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"success":false,"error":{"code":"UNAUTHORIZED","message":"invalid API key"}}`,
			wantKind:   ErrKindAuth,
			wantMsg:    "invalid API key",
		},
		{
			name:       "not found with envelope message",
			statusCode: http.StatusNotFound,
			body:       `{"success":false,"error":{"code":"FILE_NOT_FOUND","message":"file not found: missing.txt"}}`,
			wantKind:   ErrKindNotFound,
			wantMsg:    "file not found: missing.txt",
		},
		{
			name:       "not found without body",
			statusCode: http.StatusNotFound,
			body:       "",
			wantKind:   ErrKindNotFound,
			wantMsg:    "file not found: missing.txt",
		},
		{
			name:       "validation",
			statusCode: http.StatusBadRequest,
			body:       `{"success":false,"error":{"code":"STRING_NOT_FOUND","message":"String not found in file"}}`,
			wantKind:   ErrKindValidation,
			wantMsg:    "String not found in file",
		},
		{
			name:       "rate limit",
			statusCode: http.StatusTooManyRequests,
			body:       `{"success":false,"error":{"code":"RATE_LIMITED","message":"too many requests"}}`,
			header:     http.Header{"Retry-After": []string{"60"}},
			wantKind:   ErrKindRateLimit,
			wantMsg:    "too many requests",
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       "",
			wantKind:   ErrKindOperation,
			wantMsg:    "request failed with status 500: Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.header
			if header == nil {
				header = http.Header{}
			}
			err := Classify("read_file", "missing.txt", tt.statusCode, []byte(tt.body), header)
			if err.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", err.Kind, tt.wantKind)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Op != "read_file" {
				t.Errorf("Op = %q, want read_file", err.Op)
			}
		})
	}
}

func TestClassify_RetryAfter(t *testing.T) {
	header := http.Header{"Retry-After": []string{"60"}}
	err := Classify("list_files", "", http.StatusTooManyRequests, nil, header)
	if err.RetryAfter != 60 {
		t.Errorf("RetryAfter = %d, want 60", err.RetryAfter)
	}

	err = Classify("list_files", "", http.StatusTooManyRequests, nil, http.Header{})
	if err.RetryAfter != 0 {
		t.Errorf("RetryAfter = %d, want 0 when header absent", err.RetryAfter)
	}

	header = http.Header{"Retry-After": []string{"Wed, 21 Oct 2026 07:28:00 GMT"}}
	err = Classify("list_files", "", http.StatusTooManyRequests, nil, header)
	if err.RetryAfter != 0 {
		t.Errorf("RetryAfter = %d, want 0 for unparsable header", err.RetryAfter)
	}
}

func TestClassify_NotFoundPath(t *testing.T) {
	err := Classify("read_file", "docs/a.txt", http.StatusNotFound, nil, http.Header{})
	if err.Path != "docs/a.txt" {
		t.Errorf("Path = %q, want docs/a.txt", err.Path)
	}
}
