package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
)

// SearchFilesTool recursively matches file and directory names against a
// case-insensitive glob pattern. Directories matching an exclude pattern are
// pruned from descent entirely, so nothing under them is visited or
// reported.
type SearchFilesTool struct {
	deps Deps
}

// NewSearchFilesTool creates the search_files tool.
func NewSearchFilesTool(deps Deps) *SearchFilesTool {
	return &SearchFilesTool{deps: deps}
}

func (t *SearchFilesTool) Name() string { return "search_files" }
func (t *SearchFilesTool) Description() string {
	return "Recursively search for files and directories matching a file name pattern. " +
		"The search is case-insensitive glob matching against entry names. " +
		"Returns relative paths to all matching items, directories marked by a trailing slash. " +
		"Only searches within allowed directories."
}

func (t *SearchFilesTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path to search from"},
				"pattern": {"type": "string", "description": "Glob pattern matched against entry names"},
				"excludePatterns": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Glob patterns for names to skip; matching directories are not descended into"
				}
			},
			"required": ["path", "pattern"]
		}`),
	}
}

type searchFilesParams struct {
	Path            string   `json:"path"`
	Pattern         string   `json:"pattern"`
	ExcludePatterns []string `json:"excludePatterns"`
}

func (t *SearchFilesTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "search_files", t.deps.Logger, params, t.search)
}

func (t *SearchFilesTool) search(_ context.Context, span trace.Span, p searchFilesParams) (any, error) {
	const op = "search_files"

	if p.Pattern == "" {
		return nil, domain.NewDomainError(op, domain.ErrInvalidInput, "pattern must not be empty")
	}
	if !doublestar.ValidatePattern(p.Pattern) {
		return nil, domain.NewDomainError(op, domain.ErrInvalidInput, fmt.Sprintf("malformed pattern %q", p.Pattern))
	}
	for _, ex := range p.ExcludePatterns {
		if !doublestar.ValidatePattern(ex) {
			return nil, domain.NewDomainError(op, domain.ErrInvalidInput, fmt.Sprintf("malformed exclude pattern %q", ex))
		}
	}

	target, err := t.deps.Resolver.Resolve(p.Path)
	if err != nil {
		return nil, err
	}
	if !target.Exists {
		return nil, domain.NewDomainError(op, domain.ErrNotFound, p.Path)
	}
	span.SetAttributes(
		tracer.StringAttr("fs.path", p.Path),
		tracer.StringAttr("fs.pattern", p.Pattern),
	)

	root := target.RealPath
	virtualRoot := t.deps.virtual(root, p.Path)
	pattern := strings.ToLower(p.Pattern)

	var results []string
	walkErr := t.deps.Backend.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := de.Name()
		if matchesAny(p.ExcludePatterns, name) {
			if de.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if ok, _ := doublestar.Match(pattern, strings.ToLower(name)); ok {
			rel, rerr := filepath.Rel(root, path)
			if rerr != nil {
				return rerr
			}
			entry := filepath.ToSlash(rel)
			if de.IsDir() {
				entry += "/"
			}
			results = append(results, entry)
		}
		return nil
	})
	if walkErr != nil {
		return nil, classifyFSError(op, p.Path, walkErr)
	}

	sort.Strings(results)

	out := make([]string, 0, len(results)+1)
	out = append(out, fmt.Sprintf("Contents of %s:", virtualRoot))
	if len(results) == 0 {
		out = append(out, "No matches found")
	} else {
		out = append(out, results...)
	}
	return strings.Join(out, "\n"), nil
}

// matchesAny reports whether name matches any of the (pre-validated) glob
// patterns, case-insensitively.
func matchesAny(patterns []string, name string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(strings.ToLower(p), lower); ok {
			return true
		}
	}
	return false
}
