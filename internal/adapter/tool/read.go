package tool

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
)

// ReadFileTool reads a single file, optionally limited to the first or last
// N lines. Head and tail are mutually exclusive.
type ReadFileTool struct {
	deps Deps
}

// NewReadFileTool creates the read_file tool.
func NewReadFileTool(deps Deps) *ReadFileTool {
	return &ReadFileTool{deps: deps}
}

func (t *ReadFileTool) Name() string { return "read_file" }
func (t *ReadFileTool) Description() string {
	return "Read the complete contents of a file from the file system. " +
		"Use head to read only the first N lines or tail to read only the last N lines. " +
		"Only works within allowed directories."
}

func (t *ReadFileTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the file to read"},
				"head": {"type": "integer", "description": "Read only the first N lines"},
				"tail": {"type": "integer", "description": "Read only the last N lines"}
			},
			"required": ["path"]
		}`),
	}
}

type readFileParams struct {
	Path string `json:"path"`
	Head *int   `json:"head,omitempty"`
	Tail *int   `json:"tail,omitempty"`
}

func (t *ReadFileTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "read_file", t.deps.Logger, params, t.read)
}

func (t *ReadFileTool) read(_ context.Context, span trace.Span, p readFileParams) (any, error) {
	const op = "read_file"

	if p.Head != nil && p.Tail != nil {
		return nil, domain.NewDomainError(op, domain.ErrInvalidInput,
			"cannot specify both head and tail parameters simultaneously")
	}
	if p.Head != nil && *p.Head <= 0 {
		return nil, domain.NewDomainError(op, domain.ErrInvalidInput, "head must be a positive integer")
	}
	if p.Tail != nil && *p.Tail <= 0 {
		return nil, domain.NewDomainError(op, domain.ErrInvalidInput, "tail must be a positive integer")
	}

	target, err := t.deps.Resolver.Resolve(p.Path)
	if err != nil {
		return nil, err
	}
	if !target.Exists {
		return nil, domain.NewDomainError(op, domain.ErrNotFound, p.Path)
	}
	span.SetAttributes(tracer.StringAttr("fs.path", p.Path))

	switch {
	case p.Head != nil:
		return t.readLimited(op, p.Path, target.RealPath, *p.Head, headLines)
	case p.Tail != nil:
		return t.readLimited(op, p.Path, target.RealPath, *p.Tail, tailLines)
	default:
		data, err := t.deps.Backend.ReadFile(target.RealPath)
		if err != nil {
			return nil, classifyFSError(op, p.Path, err)
		}
		t.deps.Logger.Debug("file read", "path", p.Path, "size", len(data))
		return string(data), nil
	}
}

func (t *ReadFileTool) readLimited(op, virtual, real string, n int, fn func(io.Reader, int) (string, error)) (any, error) {
	f, err := t.deps.Backend.Open(real)
	if err != nil {
		return nil, classifyFSError(op, virtual, err)
	}
	defer f.Close()

	content, err := fn(f, n)
	if err != nil {
		return nil, classifyFSError(op, virtual, err)
	}
	return content, nil
}

// headLines reads the first n lines, preserving line terminators.
func headLines(r io.Reader, n int) (string, error) {
	br := bufio.NewReader(r)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		line, err := br.ReadString('\n')
		sb.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// tailLines reads the last n lines through a bounded sliding window: only
// the most recent n lines are held in memory, so tailing a large file does
// not load it whole.
func tailLines(r io.Reader, n int) (string, error) {
	br := bufio.NewReader(r)
	ring := make([]string, n)
	count := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			ring[count%n] = line
			count++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	start := 0
	if count > n {
		start = count - n
	}
	var sb strings.Builder
	for i := start; i < count; i++ {
		sb.WriteString(ring[i%n])
	}
	return sb.String(), nil
}

// ReadMultipleFilesTool reads several files in one call. Each path resolves
// and reads independently; one failure becomes an inline error block and
// does not abort the rest. Duplicate paths are processed once.
type ReadMultipleFilesTool struct {
	deps Deps
}

// NewReadMultipleFilesTool creates the read_multiple_files tool.
func NewReadMultipleFilesTool(deps Deps) *ReadMultipleFilesTool {
	return &ReadMultipleFilesTool{deps: deps}
}

func (t *ReadMultipleFilesTool) Name() string { return "read_multiple_files" }
func (t *ReadMultipleFilesTool) Description() string {
	return "Read the contents of multiple files simultaneously. " +
		"Failed reads for individual files won't stop the entire operation. " +
		"Only works within allowed directories."
}

func (t *ReadMultipleFilesTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"paths": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Virtual paths of the files to read"
				}
			},
			"required": ["paths"]
		}`),
	}
}

type readMultipleParams struct {
	Paths []string `json:"paths"`
}

func (t *ReadMultipleFilesTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "read_multiple_files", t.deps.Logger, params, t.readAll)
}

func (t *ReadMultipleFilesTool) readAll(_ context.Context, span trace.Span, p readMultipleParams) (any, error) {
	const op = "read_multiple_files"
	span.SetAttributes(tracer.IntAttr("fs.path_count", len(p.Paths)))

	seen := make(map[string]bool, len(p.Paths))
	blocks := make([]string, 0, len(p.Paths))

	for _, path := range p.Paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		content, err := t.readOne(path)
		if err != nil {
			blocks = append(blocks, fmt.Sprintf("### %s:\nError - %s\n", path, err))
			continue
		}
		blocks = append(blocks, content)
	}

	return strings.Join(blocks, "\n"), nil
}

func (t *ReadMultipleFilesTool) readOne(path string) (string, error) {
	const op = "read_multiple_files"

	target, err := t.deps.Resolver.Resolve(path)
	if err != nil {
		return "", err
	}
	if !target.Exists {
		return "", domain.NewDomainError(op, domain.ErrNotFound, path)
	}

	data, err := t.deps.Backend.ReadFile(target.RealPath)
	if err != nil {
		return "", classifyFSError(op, path, err)
	}

	virtual := t.deps.virtual(target.RealPath, path)
	return fmt.Sprintf("### %s:\n```\n%s\n```\n", virtual, string(data)), nil
}
