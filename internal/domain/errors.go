package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. Every error surfaced to a caller
// wraps exactly one of these, so the taxonomy is closed: new failure modes
// get a new sentinel, not a new message format.
var (
	ErrInvalidVirtualPath = fmt.Errorf("invalid virtual path")
	ErrAccessDenied       = fmt.Errorf("access denied: path is outside allowed directories")
	ErrParentNotFound     = fmt.Errorf("parent directory does not exist")
	ErrNotFound           = fmt.Errorf("not found")
	ErrIsADirectory       = fmt.Errorf("is a directory")
	ErrNotADirectory      = fmt.Errorf("not a directory")
	ErrAlreadyExists      = fmt.Errorf("already exists")
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrRateLimited        = fmt.Errorf("rate limit exceeded")
	ErrToolNotFound       = fmt.Errorf("tool not found")
	ErrUnknown            = fmt.Errorf("unknown error")
)

// DomainError wraps a sentinel error with context. Detail carries the
// virtual path (or other caller-facing detail), never a real path.
type DomainError struct {
	Op     string // operation name (e.g., "read_file")
	Err    error  // underlying sentinel
	Detail string // caller-facing detail, virtual-path form
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category for monitoring and alerting.
type ErrorCode string

// Error codes. Every sentinel maps to exactly one code.
const (
	CodeUnknown            ErrorCode = "UNKNOWN"
	CodeInvalidVirtualPath ErrorCode = "INVALID_VIRTUAL_PATH"
	CodeAccessDenied       ErrorCode = "ACCESS_DENIED"
	CodeParentNotFound     ErrorCode = "PARENT_NOT_FOUND"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeIsADirectory       ErrorCode = "IS_A_DIRECTORY"
	CodeNotADirectory      ErrorCode = "NOT_A_DIRECTORY"
	CodeAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeToolNotFound       ErrorCode = "TOOL_NOT_FOUND"
)

// errorCodeMap maps sentinel errors to their machine-parseable codes.
var errorCodeMap = map[error]ErrorCode{
	ErrInvalidVirtualPath: CodeInvalidVirtualPath,
	ErrAccessDenied:       CodeAccessDenied,
	ErrParentNotFound:     CodeParentNotFound,
	ErrNotFound:           CodeNotFound,
	ErrIsADirectory:       CodeIsADirectory,
	ErrNotADirectory:      CodeNotADirectory,
	ErrAlreadyExists:      CodeAlreadyExists,
	ErrInvalidInput:       CodeInvalidInput,
	ErrRateLimited:        CodeRateLimited,
	ErrToolNotFound:       CodeToolNotFound,
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// It unwraps DomainError and uses errors.Is to match sentinel errors.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	// Fast path: direct sentinel lookup.
	if code, ok := errorCodeMap[err]; ok {
		return code
	}

	var de *DomainError
	if errors.As(err, &de) {
		if code, ok := errorCodeMap[de.Err]; ok {
			return code
		}
	}

	// Walk the error chain with errors.Is.
	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying sentinel.
func (e *DomainError) Code() ErrorCode {
	if code, ok := errorCodeMap[e.Err]; ok {
		return code
	}
	return CodeUnknown
}
