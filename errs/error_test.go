package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"moviecast/errs"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			err:      nil,
			expected: "",
		},
		{
			name:     "application error returns its code",
			err:      &errs.Error{Code: errs.EINVALID, Message: "Missing movieId parameter"},
			expected: errs.EINVALID,
		},
		{
			name:     "non-application error returns EINTERNAL",
			err:      errors.New("dynamodb: query cast: throttled"),
			expected: errs.EINTERNAL,
		},
		{
			name:     "wrapped application error",
			err:      fmt.Errorf("parse: %w", errs.Errorf(errs.ENOTIMPLEMENTED, "cast service not configured")),
			expected: errs.ENOTIMPLEMENTED,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			err:      nil,
			expected: "",
		},
		{
			name:     "application error returns its message",
			err:      errs.Errorf(errs.EINVALID, "Invalid movieId parameter"),
			expected: "Invalid movieId parameter",
		},
		{
			name:     "non-application error returns Internal error",
			err:      errors.New("disk write error"),
			expected: "Internal error.",
		},
		{
			name:     "joined application error",
			err:      errors.Join(errs.Errorf(errs.EINVALID, "Missing movieId parameter")),
			expected: "Missing movieId parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := errs.Errorf(errs.EINVALID, "movieId %q is not a number", "abc")

	if err.Code != errs.EINVALID {
		t.Errorf("Errorf().Code = %q, want %q", err.Code, errs.EINVALID)
	}
	if want := `movieId "abc" is not a number`; err.Message != want {
		t.Errorf("Errorf().Message = %q, want %q", err.Message, want)
	}
	if want := `application error: code=invalid message=movieId "abc" is not a number`; err.Error() != want {
		t.Errorf("Errorf().Error() = %q, want %q", err.Error(), want)
	}
}
