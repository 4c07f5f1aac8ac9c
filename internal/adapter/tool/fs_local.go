package tool

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalFilesystemBackend performs file I/O on the local filesystem.
type LocalFilesystemBackend struct{}

// NewLocalFilesystemBackend creates a local filesystem backend.
func NewLocalFilesystemBackend() *LocalFilesystemBackend {
	return &LocalFilesystemBackend{}
}

func (b *LocalFilesystemBackend) Name() string { return "local" }

func (b *LocalFilesystemBackend) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (b *LocalFilesystemBackend) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (b *LocalFilesystemBackend) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (b *LocalFilesystemBackend) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (b *LocalFilesystemBackend) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (b *LocalFilesystemBackend) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

func (b *LocalFilesystemBackend) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (b *LocalFilesystemBackend) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (b *LocalFilesystemBackend) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
