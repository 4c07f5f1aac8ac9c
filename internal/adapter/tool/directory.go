package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
)

// ListDirectoryTool lists one level of a directory, tagging each entry as
// FILE or DIR.
type ListDirectoryTool struct {
	deps Deps
}

// NewListDirectoryTool creates the list_directory tool.
func NewListDirectoryTool(deps Deps) *ListDirectoryTool {
	return &ListDirectoryTool{deps: deps}
}

func (t *ListDirectoryTool) Name() string { return "list_directory" }
func (t *ListDirectoryTool) Description() string {
	return "Get a detailed listing of all files and directories in a specified path. " +
		"Results distinguish between files and directories with [FILE] and [DIR] prefixes. " +
		"Only works within allowed directories."
}

func (t *ListDirectoryTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the directory to list"}
			},
			"required": ["path"]
		}`),
	}
}

type listDirectoryParams struct {
	Path string `json:"path"`
}

func (t *ListDirectoryTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "list_directory", t.deps.Logger, params, t.list)
}

func (t *ListDirectoryTool) list(_ context.Context, span trace.Span, p listDirectoryParams) (any, error) {
	const op = "list_directory"

	target, err := t.deps.Resolver.Resolve(p.Path)
	if err != nil {
		return nil, err
	}
	if !target.Exists {
		return nil, domain.NewDomainError(op, domain.ErrNotFound, p.Path)
	}
	span.SetAttributes(tracer.StringAttr("fs.path", p.Path))

	entries, err := t.deps.Backend.ReadDir(target.RealPath)
	if err != nil {
		return nil, classifyFSError(op, p.Path, err)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		tag := "FILE"
		if e.IsDir() {
			tag = "DIR"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", tag, e.Name()))
	}
	return strings.Join(lines, "\n"), nil
}

// DirectoryTreeTool lists a directory recursively: one relative path per
// line, sorted, with empty directories carrying a trailing slash. An empty
// target directory is emitted as its own virtual root with a trailing slash.
type DirectoryTreeTool struct {
	deps Deps
}

// NewDirectoryTreeTool creates the directory_tree tool.
func NewDirectoryTreeTool(deps Deps) *DirectoryTreeTool {
	return &DirectoryTreeTool{deps: deps}
}

func (t *DirectoryTreeTool) Name() string { return "directory_tree" }
func (t *DirectoryTreeTool) Description() string {
	return "Get a newline-separated list of paths relative to the requested path, " +
		"including empty directories (with a trailing slash). Paths are sorted alphabetically. " +
		"Only works within allowed directories."
}

func (t *DirectoryTreeTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the directory to walk"}
			},
			"required": ["path"]
		}`),
	}
}

type directoryTreeParams struct {
	Path string `json:"path"`
}

func (t *DirectoryTreeTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "directory_tree", t.deps.Logger, params, t.tree)
}

func (t *DirectoryTreeTool) tree(_ context.Context, span trace.Span, p directoryTreeParams) (any, error) {
	const op = "directory_tree"

	target, err := t.deps.Resolver.Resolve(p.Path)
	if err != nil {
		return nil, err
	}
	if !target.Exists {
		return nil, domain.NewDomainError(op, domain.ErrNotFound, p.Path)
	}
	span.SetAttributes(tracer.StringAttr("fs.path", p.Path))

	info, err := t.deps.Backend.Stat(target.RealPath)
	if err != nil {
		return nil, classifyFSError(op, p.Path, err)
	}
	if !info.IsDir() {
		return nil, domain.NewDomainError(op, domain.ErrNotADirectory, p.Path)
	}

	root := target.RealPath
	virtualRoot := t.deps.virtual(root, p.Path)

	var entries []string
	walkErr := t.deps.Backend.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}

		if de.IsDir() {
			// Non-empty directories are represented by their contents;
			// empty ones get a single entry with a trailing slash.
			sub, serr := t.deps.Backend.ReadDir(path)
			if serr != nil {
				return serr
			}
			if len(sub) == 0 {
				entries = append(entries, filepath.ToSlash(rel)+"/")
			}
			return nil
		}

		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return nil, classifyFSError(op, p.Path, walkErr)
	}

	if len(entries) == 0 {
		rootEntries, rerr := t.deps.Backend.ReadDir(root)
		if rerr != nil {
			return nil, classifyFSError(op, p.Path, rerr)
		}
		if len(rootEntries) == 0 {
			entries = append(entries, virtualRoot+"/")
		}
	}

	sort.Strings(entries)

	out := make([]string, 0, len(entries)+1)
	out = append(out, fmt.Sprintf("Contents of %s:", virtualRoot))
	out = append(out, entries...)
	return strings.Join(out, "\n"), nil
}
