package tool

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
)

// EditFileTool applies text replacements to a file and returns a unified
// diff of the change.
//
// Match policy: exact substring, all occurrences. Edits apply sequentially
// against the progressively-modified content, so edit order matters. An
// oldText that does not occur is a silent no-op; callers detect no-op edits
// from the returned diff being empty.
type EditFileTool struct {
	deps Deps
}

// NewEditFileTool creates the edit_file tool.
func NewEditFileTool(deps Deps) *EditFileTool {
	return &EditFileTool{deps: deps}
}

func (t *EditFileTool) Name() string { return "edit_file" }
func (t *EditFileTool) Description() string {
	return "Make edits to a text file by replacing exact text sequences with new content. " +
		"Edits apply in order against the progressively-modified content. " +
		"Returns a unified diff showing the changes made. " +
		"With dryRun the diff is computed but nothing is written. " +
		"Only works within allowed directories."
}

func (t *EditFileTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Virtual path of the file to edit"},
				"edits": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"oldText": {"type": "string", "description": "Text to search for"},
							"newText": {"type": "string", "description": "Text to replace with"}
						},
						"required": ["oldText", "newText"]
					},
					"description": "Ordered list of replacements"
				},
				"dryRun": {"type": "boolean", "description": "Preview the diff without writing"}
			},
			"required": ["path", "edits"]
		}`),
	}
}

type editFileParams struct {
	Path   string                 `json:"path"`
	Edits  []domain.EditOperation `json:"edits"`
	DryRun bool                   `json:"dryRun"`
}

func (t *EditFileTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "edit_file", t.deps.Logger, params, t.edit)
}

func (t *EditFileTool) edit(ctx context.Context, span trace.Span, p editFileParams) (any, error) {
	const op = "edit_file"

	target, err := t.deps.Resolver.Resolve(p.Path)
	if err != nil {
		return nil, err
	}
	if !target.Exists {
		return nil, domain.NewDomainError(op, domain.ErrNotFound, p.Path)
	}
	span.SetAttributes(
		tracer.StringAttr("fs.path", p.Path),
		tracer.IntAttr("fs.edit_count", len(p.Edits)),
	)

	data, err := t.deps.Backend.ReadFile(target.RealPath)
	if err != nil {
		return nil, classifyFSError(op, p.Path, err)
	}

	original := string(data)
	updated := applyEdits(original, p.Edits)

	virtual := t.deps.virtual(target.RealPath, p.Path)
	diff, err := unifiedDiff(virtual, original, updated)
	if err != nil {
		return nil, domain.NewDomainError(op, domain.ErrUnknown, p.Path)
	}

	if p.DryRun {
		t.deps.Logger.Debug("edit dry run", "path", virtual, "changed", diff != "")
		return diff, nil
	}

	if updated != original {
		werr := t.deps.Backend.WriteFile(target.RealPath, []byte(updated), 0644)
		if werr != nil {
			werr = classifyFSError(op, p.Path, werr)
		}
		t.deps.audit(ctx, op, p.Path, werr)
		if werr != nil {
			return nil, werr
		}
	}

	return diff, nil
}

// applyEdits runs the replacements in order. Each oldText is matched against
// the current content, so a later edit can rewrite text produced by an
// earlier one.
func applyEdits(content string, edits []domain.EditOperation) string {
	for _, e := range edits {
		if e.OldText == "" {
			continue
		}
		content = strings.ReplaceAll(content, e.OldText, e.NewText)
	}
	return content
}

// unifiedDiff renders a standard unified diff between the original and
// final content. Both sides are labeled with the virtual path so the caller
// never observes real filesystem layout.
func unifiedDiff(virtualPath, original, updated string) (string, error) {
	if original == updated {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(updated),
		FromFile: virtualPath,
		ToFile:   virtualPath,
		Context:  3,
	})
}
