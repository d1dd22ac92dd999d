package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *StatusError
		expected string
	}{
		{
			name:     "server error",
			err:      &StatusError{StatusCode: 500, URL: "https://x/items/"},
			expected: `unexpected status 500 fetching https://x/items/`,
		},
		{
			name:     "created is still an error",
			err:      &StatusError{StatusCode: 201, URL: "https://x/items/"},
			expected: `unexpected status 201 fetching https://x/items/`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestStatusError_As(t *testing.T) {
	var err error = fmt.Errorf("fetch page 2: %w", &StatusError{StatusCode: 404, URL: "https://x/"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatal("errors.As should find *StatusError through wrapping")
	}
	if statusErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestDecodeError_Error(t *testing.T) {
	inner := errors.New("invalid character '<'")
	err := &DecodeError{URL: "https://x/items/", Err: inner}

	expected := `decode response from https://x/items/: invalid character '<'`
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &DecodeError{URL: "https://x/", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should work with the wrapped error")
	}
	if err.Unwrap() != inner {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), inner)
	}
}
