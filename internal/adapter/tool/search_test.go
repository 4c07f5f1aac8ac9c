package tool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func searchFixture(t *testing.T) (Deps, *SearchFilesTool) {
	t.Helper()
	deps := testDeps(t, t.TempDir())
	root := rootOf(t, deps)

	for _, d := range []string{"sub", "node_modules"} {
		if err := os.Mkdir(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	files := []string{"Foo.txt", filepath.Join("sub", "foo.md"), filepath.Join("node_modules", "foo.js")}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return deps, NewSearchFilesTool(deps)
}

func TestSearchFilesCaseInsensitive(t *testing.T) {
	_, tl := searchFixture(t)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a", "pattern": "foo*"})
	want := strings.Join([]string{
		"Contents of /data/a:",
		"Foo.txt",
		"node_modules/foo.js",
		"sub/foo.md",
	}, "\n")
	if got != want {
		t.Errorf("search =\n%s\nwant\n%s", got, want)
	}
}

func TestSearchFilesExcludePrunesDirectory(t *testing.T) {
	_, tl := searchFixture(t)

	got := mustSucceed(t, tl, map[string]any{
		"path":            "/data/a",
		"pattern":         "foo*",
		"excludePatterns": []string{"node_modules"},
	})
	if strings.Contains(got, "node_modules") {
		t.Errorf("excluded directory leaked into results:\n%s", got)
	}
	if !strings.Contains(got, "sub/foo.md") {
		t.Errorf("expected match missing:\n%s", got)
	}
}

func TestSearchFilesMatchesDirectories(t *testing.T) {
	deps := testDeps(t, t.TempDir())
	if err := os.Mkdir(filepath.Join(rootOf(t, deps), "foodir"), 0755); err != nil {
		t.Fatal(err)
	}
	tl := NewSearchFilesTool(deps)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a", "pattern": "foo*"})
	if !strings.Contains(got, "foodir/") {
		t.Errorf("directory match should carry a trailing slash:\n%s", got)
	}
}

func TestSearchFilesNoMatches(t *testing.T) {
	_, tl := searchFixture(t)

	got := mustSucceed(t, tl, map[string]any{"path": "/data/a", "pattern": "*.zip"})
	want := "Contents of /data/a:\nNo matches found"
	if got != want {
		t.Errorf("search = %q, want %q", got, want)
	}
}

func TestSearchFilesRejectsEmptyPattern(t *testing.T) {
	_, tl := searchFixture(t)

	msg := mustFail(t, tl, map[string]any{"path": "/data/a", "pattern": ""})
	if !strings.Contains(msg, "pattern must not be empty") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestSearchFilesRejectsMalformedPattern(t *testing.T) {
	_, tl := searchFixture(t)

	msg := mustFail(t, tl, map[string]any{"path": "/data/a", "pattern": "["})
	if !strings.Contains(msg, "malformed pattern") {
		t.Errorf("unexpected error message: %q", msg)
	}

	msg = mustFail(t, tl, map[string]any{
		"path": "/data/a", "pattern": "*", "excludePatterns": []string{"["},
	})
	if !strings.Contains(msg, "malformed exclude pattern") {
		t.Errorf("unexpected error message: %q", msg)
	}
}
