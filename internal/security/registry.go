package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// aliasRoot is the synthetic prefix under which allowed directories are
// exposed to callers: /data/a, /data/b, ...
const aliasRoot = "/data"

// maxAliases bounds the alias scheme to single letters a-z.
const maxAliases = 26

// Registry holds the process-lifetime allow-list of real directories and
// their virtual aliases. The mapping is bijective and assigned in input
// order. A Registry is immutable after construction, so it is safe to share
// across goroutines without locking.
type Registry struct {
	dirs       []string          // resolved real directories, input order
	aliases    []string          // virtual aliases, same order as dirs
	aliasToDir map[string]string
	dirToAlias map[string]string
}

// NewRegistry validates the given directories and assigns each a virtual
// alias. Every entry must exist and be a directory; ~ is expanded and
// symlinks are resolved so the stored form is the canonical real path.
// Validation failures are returned immediately; the caller is expected to
// refuse to start.
func NewRegistry(dirs []string) (*Registry, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no allowed directories configured")
	}
	if len(dirs) > maxAliases {
		return nil, fmt.Errorf("too many allowed directories: %d (alias scheme supports at most %d)", len(dirs), maxAliases)
	}

	r := &Registry{
		aliasToDir: make(map[string]string, len(dirs)),
		dirToAlias: make(map[string]string, len(dirs)),
	}

	for i, dir := range dirs {
		resolved, err := resolveDir(dir)
		if err != nil {
			return nil, fmt.Errorf("allowed directory %q: %w", dir, err)
		}

		alias := fmt.Sprintf("%s/%c", aliasRoot, 'a'+i)
		r.dirs = append(r.dirs, resolved)
		r.aliases = append(r.aliases, alias)
		r.aliasToDir[alias] = resolved
		r.dirToAlias[resolved] = alias
	}

	return r, nil
}

// resolveDir expands ~, makes the path absolute, resolves symlinks, and
// verifies the result is an existing directory.
func resolveDir(dir string) (string, error) {
	expanded, err := expandHome(dir)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("is not a directory or does not exist")
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("is not a directory or does not exist")
	}
	if !info.IsDir() {
		return "", fmt.Errorf("is not a directory")
	}

	return resolved, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand ~: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Aliases returns the virtual aliases in configuration order.
func (r *Registry) Aliases() []string {
	out := make([]string, len(r.aliases))
	copy(out, r.aliases)
	return out
}

// Dirs returns the resolved real directories in configuration order.
func (r *Registry) Dirs() []string {
	out := make([]string, len(r.dirs))
	copy(out, r.dirs)
	return out
}

// RealDirFor returns the real directory mapped to the given alias.
func (r *Registry) RealDirFor(alias string) (string, bool) {
	dir, ok := r.aliasToDir[alias]
	return dir, ok
}

// AliasFor returns the alias mapped to the given real directory.
func (r *Registry) AliasFor(realDir string) (string, bool) {
	alias, ok := r.dirToAlias[realDir]
	return alias, ok
}

// Contains reports whether path is equal to or a descendant of one of the
// allowed directories. The comparison is segment-aware: /allowed never
// matches /allowed-other.
func (r *Registry) Contains(path string) bool {
	for _, dir := range r.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
