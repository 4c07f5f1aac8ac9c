package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
)

// timestampLayout is the fixed human-readable format for all rendered
// timestamps. Raw epoch values never appear in output.
const timestampLayout = "2006-01-02 15:04:05"

// GetFileInfoTool returns metadata for a file or directory.
type GetFileInfoTool struct {
	deps Deps
}

// NewGetFileInfoTool creates the get_file_info tool.
func NewGetFileInfoTool(deps Deps) *GetFileInfoTool {
	return &GetFileInfoTool{deps: deps}
}

func (t *GetFileInfoTool) Name() string { return "get_file_info" }
func (t *GetFileInfoTool) Description() string {
	return "Retrieve detailed metadata about a file or directory: size, timestamps, " +
		"type and permissions, without reading the content. " +
		"Only works within allowed directories."
}

func (t *GetFileInfoTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the file or directory"}
			},
			"required": ["path"]
		}`),
	}
}

type getFileInfoParams struct {
	Path string `json:"path"`
}

func (t *GetFileInfoTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "get_file_info", t.deps.Logger, params, t.stat)
}

func (t *GetFileInfoTool) stat(_ context.Context, span trace.Span, p getFileInfoParams) (any, error) {
	const op = "get_file_info"

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

	created, modified, accessed := statTimes(info)
	fi := domain.FileInfo{
		Path:        t.deps.virtual(target.RealPath, p.Path),
		Size:        info.Size(),
		Created:     created.Format(timestampLayout),
		Modified:    modified.Format(timestampLayout),
		Accessed:    accessed.Format(timestampLayout),
		IsDirectory: info.IsDir(),
		IsFile:      info.Mode().IsRegular(),
		Permissions: fmt.Sprintf("%03o", info.Mode().Perm()),
	}

	lines := []string{
		fmt.Sprintf("path: %s", fi.Path),
		fmt.Sprintf("size: %d", fi.Size),
		fmt.Sprintf("created: %s", fi.Created),
		fmt.Sprintf("modified: %s", fi.Modified),
		fmt.Sprintf("accessed: %s", fi.Accessed),
		fmt.Sprintf("isDirectory: %t", fi.IsDirectory),
		fmt.Sprintf("isFile: %t", fi.IsFile),
		fmt.Sprintf("permissions: %s", fi.Permissions),
	}
	return strings.Join(lines, "\n"), nil
}

// ListAllowedDirectoriesTool reports the virtual aliases a caller may use.
// Real paths never appear in this output.
type ListAllowedDirectoriesTool struct {
	deps Deps
}

// NewListAllowedDirectoriesTool creates the list_allowed_directories tool.
func NewListAllowedDirectoriesTool(deps Deps) *ListAllowedDirectoriesTool {
	return &ListAllowedDirectoriesTool{deps: deps}
}

func (t *ListAllowedDirectoriesTool) Name() string { return "list_allowed_directories" }
func (t *ListAllowedDirectoriesTool) Description() string {
	return "Returns the list of directories that this server is allowed to access. " +
		"Use this to understand which directories are available before trying to access files."
}

func (t *ListAllowedDirectoriesTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
	}
}

func (t *ListAllowedDirectoriesTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "list_allowed_directories", t.deps.Logger, params,
		func(_ context.Context, _ trace.Span, _ struct{}) (any, error) {
			aliases := t.deps.Resolver.Aliases()
			return "Allowed directories:\n" + strings.Join(aliases, "\n"), nil
		})
}
