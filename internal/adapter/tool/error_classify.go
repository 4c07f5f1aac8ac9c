package tool

import (
	"errors"
	"io/fs"
	"syscall"

	"fsgate/internal/domain"
)

// classifyFSError maps a low-level filesystem error to a domain error
// carrying only the virtual path. The raw error is dropped on purpose: OS
// error messages embed real paths, and those must never reach the caller.
func classifyFSError(op, virtualPath string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, fs.ErrNotExist):
		sentinel = domain.ErrNotFound
	case errors.Is(err, fs.ErrExist):
		sentinel = domain.ErrAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		sentinel = domain.ErrAccessDenied
	case errors.Is(err, syscall.EISDIR):
		sentinel = domain.ErrIsADirectory
	case errors.Is(err, syscall.ENOTDIR):
		sentinel = domain.ErrNotADirectory
	default:
		sentinel = domain.ErrUnknown
	}
	return domain.NewDomainError(op, sentinel, virtualPath)
}
