package tool

import (
	"io"
	"io/fs"
	"os"
)

// FilesystemBackend abstracts file I/O operations. All paths passed in are
// already-validated real paths; backends never see virtual paths.
type FilesystemBackend interface {
	// ReadFile reads the named file and returns its contents.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to the named file with the given permissions.
	WriteFile(path string, data []byte, perm os.FileMode) error
	// Open opens the named file for streaming reads.
	Open(path string) (io.ReadCloser, error)
	// ReadDir reads the named directory and returns its directory entries.
	ReadDir(path string) ([]os.DirEntry, error)
	// Stat returns file metadata, following symlinks.
	Stat(path string) (os.FileInfo, error)
	// Lstat returns file metadata without following symlinks.
	Lstat(path string) (os.FileInfo, error)
	// Rename moves oldpath to newpath.
	Rename(oldpath, newpath string) error
	// MkdirAll creates the named directory and any missing parents.
	MkdirAll(path string, perm os.FileMode) error
	// WalkDir walks the tree rooted at root, calling fn for each entry.
	WalkDir(root string, fn fs.WalkDirFunc) error
	// Name returns the backend identifier (e.g. "local").
	Name() string
}
