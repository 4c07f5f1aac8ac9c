package tool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesNew(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	tl := NewWriteFileTool(deps)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a/new.txt", "content": "hello"})
	if got != "Successfully wrote to /data/a/new.txt" {
		t.Errorf("message = %q", got)
	}

	data, err := os.ReadFile(filepath.Join(rootOf(t, deps), "new.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	real := filepath.Join(rootOf(t, deps), "f.txt")
	if err := os.WriteFile(real, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	tl := NewWriteFileTool(deps)

	mustSucceed(t, tl, map[string]any{"path": "/data/a/f.txt", "content": "new"})

	data, err := os.ReadFile(real)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("file content = %q, want %q", data, "new")
	}
}

func TestWriteFileParentMissing(t *testing.T) {
	tl := NewWriteFileTool(testDeps(t, t.TempDir()))

	msg := mustFail(t, tl, map[string]any{"path": "/data/a/missing/f.txt", "content": "x"})
	if !strings.Contains(msg, "parent directory does not exist") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestCreateDirectoryNested(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	tl := NewCreateDirectoryTool(deps)

	// The whole missing chain is created in one call.
	got := mustSucceed(t, tl, map[string]any{"path": "/data/a/x/y/z"})
	if got != "Successfully created directory /data/a/x/y/z" {
		t.Errorf("message = %q", got)
	}

	info, err := os.Stat(filepath.Join(rootOf(t, deps), "x", "y", "z"))
	if err != nil || !info.IsDir() {
		t.Fatalf("nested directory missing: %v", err)
	}
}

func TestCreateDirectoryRejectsEscape(t *testing.T) {
	tl := NewCreateDirectoryTool(testDeps(t, t.TempDir()))

	msg := mustFail(t, tl, map[string]any{"path": "/data/a/../../outside/x"})
	if !strings.Contains(msg, "access denied") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestCreateDirectoryIdempotent(t *testing.T) {
	tl := NewCreateDirectoryTool(testDeps(t, t.TempDir()))

	mustSucceed(t, tl, map[string]any{"path": "/data/a/x"})
	mustSucceed(t, tl, map[string]any{"path": "/data/a/x"})
}

func TestCreateDirectoryOverFile(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	if err := os.WriteFile(filepath.Join(rootOf(t, deps), "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	tl := NewCreateDirectoryTool(deps)

	msg := mustFail(t, tl, map[string]any{"path": "/data/a/f.txt"})
	if !strings.Contains(msg, "not a directory") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	root := rootOf(t, deps)
	if err := os.WriteFile(filepath.Join(root, "src.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	tl := NewMoveFileTool(deps)

	got := mustSucceed(t, tl, map[string]any{"source": "/data/a/src.txt", "destination": "/data/a/dst.txt"})
	if got != "Successfully moved /data/a/src.txt to /data/a/dst.txt" {
		t.Errorf("message = %q", got)
	}

	if _, err := os.Stat(filepath.Join(root, "src.txt")); !os.IsNotExist(err) {
		t.Error("source should be gone")
	}
	if _, err := os.Stat(filepath.Join(root, "dst.txt")); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestMoveFileDestinationOccupied(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	root := rootOf(t, deps)
	for _, name := range []string{"src.txt", "dst.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	tl := NewMoveFileTool(deps)

	msg := mustFail(t, tl, map[string]any{"source": "/data/a/src.txt", "destination": "/data/a/dst.txt"})
	if !strings.Contains(msg, "already exists") {
		t.Errorf("unexpected error message: %q", msg)
	}

	// Nothing moved.
	data, err := os.ReadFile(filepath.Join(root, "dst.txt"))
	if err != nil || string(data) != "dst.txt" {
		t.Errorf("destination was clobbered: %q, %v", data, err)
	}
}

func TestMoveFileSourceMissing(t *testing.T) {
	tl := NewMoveFileTool(testDeps(t, t.TempDir()))

	msg := mustFail(t, tl, map[string]any{"source": "/data/a/absent.txt", "destination": "/data/a/dst.txt"})
	if !strings.Contains(msg, "not found") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestMoveDirectory(t *testing.T) {
	dir := t.TempDir()
	deps := testDeps(t, dir)
	root := rootOf(t, deps)
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	tl := NewMoveFileTool(deps)

	mustSucceed(t, tl, map[string]any{"source": "/data/a/sub", "destination": "/data/a/renamed"})

	if _, err := os.Stat(filepath.Join(root, "renamed", "f.txt")); err != nil {
		t.Errorf("moved directory content missing: %v", err)
	}
}
