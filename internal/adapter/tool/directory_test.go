package tool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListDirectory(t *testing.T) {
	deps := testDeps(t, t.TempDir())
	root := rootOf(t, deps)
	if err := os.WriteFile(filepath.Join(root, "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	tl := NewListDirectoryTool(deps)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a"})
	want := "[FILE] f.txt\n[DIR] sub"
	if got != want {
		t.Errorf("listing = %q, want %q", got, want)
	}
}

func TestListDirectoryEmpty(t *testing.T) {
	tl := NewListDirectoryTool(testDeps(t, t.TempDir()))

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a"})
	if got != "" {
		t.Errorf("empty directory listing = %q, want empty", got)
	}
}

func TestListDirectoryNotFound(t *testing.T) {
	tl := NewListDirectoryTool(testDeps(t, t.TempDir()))

	msg := mustFail(t, tl, map[string]any{"path": "/data/a/absent"})
	if !strings.Contains(msg, "not found") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestDirectoryTree(t *testing.T) {
	deps := testDeps(t, t.TempDir())
	root := rootOf(t, deps)
	if err := os.WriteFile(filepath.Join(root, "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "g.txt"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	tl := NewDirectoryTreeTool(deps)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a"})
	want := strings.Join([]string{
		"Contents of /data/a:",
		"empty/",
		"f.txt",
		"sub/g.txt",
	}, "\n")
	if got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestDirectoryTreeEmptyRoot(t *testing.T) {
	tl := NewDirectoryTreeTool(testDeps(t, t.TempDir()))

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a"})
	want := "Contents of /data/a:\n/data/a/"
	if got != want {
		t.Errorf("tree = %q, want %q", got, want)
	}
}

func TestDirectoryTreeOnFile(t *testing.T) {
	deps := testDeps(t, t.TempDir())
	if err := os.WriteFile(filepath.Join(rootOf(t, deps), "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	tl := NewDirectoryTreeTool(deps)

	msg := mustFail(t, tl, map[string]any{"path": "/data/a/f.txt"})
	if !strings.Contains(msg, "not a directory") {
		t.Errorf("unexpected error message: %q", msg)
	}
}
