package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	withDetail := NewDomainError("read_file", ErrNotFound, "/data/a/f.txt")
	if got, want := withDetail.Error(), "read_file: /data/a/f.txt: not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutDetail := NewDomainError("read_file", ErrNotFound, "")
	if got, want := withoutDetail.Error(), "read_file: not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	err := NewDomainError("resolve", ErrAccessDenied, "/data/a/esc")
	if !errors.Is(err, ErrAccessDenied) {
		t.Error("errors.Is should match the wrapped sentinel")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("errors.Is must not match an unrelated sentinel")
	}
}

func TestWrapOp(t *testing.T) {
	if WrapOp("op", nil) != nil {
		t.Error("WrapOp(nil) should be nil")
	}
	err := WrapOp("op", ErrInvalidInput)
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("WrapOp should preserve the sentinel")
	}
}

func TestErrorCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, CodeUnknown},
		{ErrInvalidVirtualPath, CodeInvalidVirtualPath},
		{ErrAccessDenied, CodeAccessDenied},
		{NewDomainError("resolve", ErrParentNotFound, "x"), CodeParentNotFound},
		{fmt.Errorf("outer: %w", NewDomainError("op", ErrAlreadyExists, "")), CodeAlreadyExists},
		{fmt.Errorf("wrapped: %w", ErrRateLimited), CodeRateLimited},
		{errors.New("something else"), CodeUnknown},
	}
	for _, tc := range cases {
		if got := ErrorCodeOf(tc.err); got != tc.want {
			t.Errorf("ErrorCodeOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestDomainErrorCode(t *testing.T) {
	if got := NewDomainError("op", ErrNotADirectory, "").Code(); got != CodeNotADirectory {
		t.Errorf("Code() = %s, want %s", got, CodeNotADirectory)
	}
	if got := NewDomainError("op", errors.New("odd"), "").Code(); got != CodeUnknown {
		t.Errorf("Code() = %s, want %s", got, CodeUnknown)
	}
}
