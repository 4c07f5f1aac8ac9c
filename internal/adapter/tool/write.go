package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
)

// WriteFileTool creates or fully overwrites a file.
type WriteFileTool struct {
	deps Deps
}

// NewWriteFileTool creates the write_file tool.
func NewWriteFileTool(deps Deps) *WriteFileTool {
	return &WriteFileTool{deps: deps}
}

func (t *WriteFileTool) Name() string { return "write_file" }
func (t *WriteFileTool) Description() string {
	return "Create a new file or completely overwrite an existing file with new content. " +
		"Use with caution as it will overwrite existing files without warning. " +
		"Only works within allowed directories."
}

func (t *WriteFileTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the file to write"},
				"content": {"type": "string", "description": "Content to write"}
			},
			"required": ["path", "content"]
		}`),
	}
}

type writeFileParams struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (t *WriteFileTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "write_file", t.deps.Logger, params, t.write)
}

func (t *WriteFileTool) write(ctx context.Context, span trace.Span, p writeFileParams) (any, error) {
	const op = "write_file"

	target, err := t.deps.Resolver.Resolve(p.Path)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.StringAttr("fs.path", p.Path))

	err = t.deps.Backend.WriteFile(target.RealPath, []byte(p.Content), 0644)
	if err != nil {
		err = classifyFSError(op, p.Path, err)
	}
	t.deps.audit(ctx, op, p.Path, err)
	if err != nil {
		return nil, err
	}

	virtual := t.deps.virtual(target.RealPath, p.Path)
	t.deps.Logger.Debug("file written", "path", virtual, "size", len(p.Content))
	return fmt.Sprintf("Successfully wrote to %s", virtual), nil
}

// CreateDirectoryTool creates a directory chain, succeeding silently if it
// already exists.
type CreateDirectoryTool struct {
	deps Deps
}

// NewCreateDirectoryTool creates the create_directory tool.
func NewCreateDirectoryTool(deps Deps) *CreateDirectoryTool {
	return &CreateDirectoryTool{deps: deps}
}

func (t *CreateDirectoryTool) Name() string { return "create_directory" }
func (t *CreateDirectoryTool) Description() string {
	return "Create a new directory or ensure a directory exists. " +
		"Can create multiple nested directories in one operation. " +
		"If the directory already exists, this operation will succeed silently. " +
		"Only works within allowed directories."
}

func (t *CreateDirectoryTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the directory to create"}
			},
			"required": ["path"]
		}`),
	}
}

type createDirectoryParams struct {
	Path string `json:"path"`
}

func (t *CreateDirectoryTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "create_directory", t.deps.Logger, params, t.create)
}

func (t *CreateDirectoryTool) create(ctx context.Context, span trace.Span, p createDirectoryParams) (any, error) {
	const op = "create_directory"

	// ResolveForCreate rather than Resolve: the whole chain of missing
	// directories may be created in one call, so only the nearest existing
	// ancestor can be boundary-checked.
	target, err := t.deps.Resolver.ResolveForCreate(p.Path)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.StringAttr("fs.path", p.Path))

	// MkdirAll is idempotent for existing directories but fails with
	// ENOTDIR when a regular file occupies the path.
	err = t.deps.Backend.MkdirAll(target.RealPath, 0755)
	if err != nil {
		err = classifyFSError(op, p.Path, err)
	}
	t.deps.audit(ctx, op, p.Path, err)
	if err != nil {
		return nil, err
	}

	virtual := t.deps.virtual(target.RealPath, p.Path)
	return fmt.Sprintf("Successfully created directory %s", virtual), nil
}

// MoveFileTool renames a file or directory. The destination must not exist:
// the underlying rename would silently overwrite on some platforms, so the
// check is enforced here explicitly.
type MoveFileTool struct {
	deps Deps
}

// NewMoveFileTool creates the move_file tool.
func NewMoveFileTool(deps Deps) *MoveFileTool {
	return &MoveFileTool{deps: deps}
}

func (t *MoveFileTool) Name() string { return "move_file" }
func (t *MoveFileTool) Description() string {
	return "Move or rename files and directories. " +
		"If the destination exists, the operation will fail. " +
		"Both source and destination must be within allowed directories."
}

func (t *MoveFileTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"source": {"type": "string", "description": "Virtual path to move from"},
				"destination": {"type": "string", "description": "Virtual path to move to"}
			},
			"required": ["source", "destination"]
		}`),
	}
}

type moveFileParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func (t *MoveFileTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "move_file", t.deps.Logger, params, t.move)
}

func (t *MoveFileTool) move(ctx context.Context, span trace.Span, p moveFileParams) (any, error) {
	const op = "move_file"

	src, err := t.deps.Resolver.Resolve(p.Source)
	if err != nil {
		return nil, err
	}
	if !src.Exists {
		return nil, domain.NewDomainError(op, domain.ErrNotFound, p.Source)
	}

	dst, err := t.deps.Resolver.Resolve(p.Destination)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		tracer.StringAttr("fs.source", p.Source),
		tracer.StringAttr("fs.destination", p.Destination),
	)

	// Lstat rather than the resolver's Exists flag: a dangling symlink at
	// the destination still counts as occupied.
	if _, lerr := t.deps.Backend.Lstat(dst.RealPath); lerr == nil {
		err = domain.NewDomainError(op, domain.ErrAlreadyExists, p.Destination)
		t.deps.audit(ctx, op, p.Source, err)
		return nil, err
	}

	err = t.deps.Backend.Rename(src.RealPath, dst.RealPath)
	if err != nil {
		err = classifyFSError(op, p.Source, err)
	}
	t.deps.audit(ctx, op, p.Source, err)
	if err != nil {
		return nil, err
	}

	virtualSrc := t.deps.virtual(src.RealPath, p.Source)
	virtualDst := t.deps.virtual(dst.RealPath, p.Destination)
	return fmt.Sprintf("Successfully moved %s to %s", virtualSrc, virtualDst), nil
}
