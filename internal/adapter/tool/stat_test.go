package tool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetFileInfoFile(t *testing.T) {
	deps := testDeps(t, t.TempDir())
	real := filepath.Join(rootOf(t, deps), "f.txt")
	if err := os.WriteFile(real, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}
	tl := NewGetFileInfoTool(deps)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a/f.txt"})

	for _, want := range []string{
		"path: /data/a/f.txt",
		"size: 5",
		"isDirectory: false",
		"isFile: true",
		"permissions: 600",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	for _, key := range []string{"created: ", "modified: ", "accessed: "} {
		if !strings.Contains(got, key) {
			t.Errorf("missing %q in:\n%s", key, got)
		}
	}
	if strings.Contains(got, rootOf(t, deps)) {
		t.Errorf("output leaks a real path:\n%s", got)
	}
}

func TestGetFileInfoDirectory(t *testing.T) {
	deps := testDeps(t, t.TempDir())
	tl := NewGetFileInfoTool(deps)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a"})
	if !strings.Contains(got, "isDirectory: true") || !strings.Contains(got, "isFile: false") {
		t.Errorf("unexpected type flags:\n%s", got)
	}
}

func TestGetFileInfoNotFound(t *testing.T) {
	tl := NewGetFileInfoTool(testDeps(t, t.TempDir()))

	msg := mustFail(t, tl, map[string]any{"path": "/data/a/absent"})
	if !strings.Contains(msg, "not found") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestListAllowedDirectories(t *testing.T) {
	tl := NewListAllowedDirectoriesTool(testDeps(t, t.TempDir(), t.TempDir()))

	got := mustSucceed(t, tl, map[string]any{})
	want := "Allowed directories:\n/data/a\n/data/b"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
