package tool

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"fsgate/internal/domain"
	"fsgate/internal/security"
)

// testDeps builds tool dependencies over the given allowed directories with
// quiet logging and auditing disabled.
func testDeps(t *testing.T, dirs ...string) Deps {
	t.Helper()
	reg, err := security.NewRegistry(dirs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return Deps{
		Resolver: security.NewResolver(reg),
		Backend:  NewLocalFilesystemBackend(),
		Audit:    security.NopAuditLogger{},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// rootOf returns the canonical real directory behind the first alias.
func rootOf(t *testing.T, deps Deps) string {
	t.Helper()
	target, err := deps.Resolver.Resolve("/data/a")
	if err != nil {
		t.Fatalf("resolve alias root: %v", err)
	}
	return target.RealPath
}

// runTool executes a tool with the given params marshaled to JSON.
func runTool(t *testing.T, tl domain.Tool, params any) *domain.ToolResult {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	result, err := tl.Execute(context.Background(), raw)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return result
}

// mustSucceed runs a tool and fails the test on an error result.
func mustSucceed(t *testing.T, tl domain.Tool, params any) string {
	t.Helper()
	result := runTool(t, tl, params)
	if result.IsError {
		t.Fatalf("%s failed: %s", tl.Name(), result.Content)
	}
	return result.Content
}

// mustFail runs a tool and fails the test unless it returns an error result.
func mustFail(t *testing.T, tl domain.Tool, params any) string {
	t.Helper()
	result := runTool(t, tl, params)
	if !result.IsError {
		t.Fatalf("%s succeeded unexpectedly: %s", tl.Name(), result.Content)
	}
	return result.Content
}

// echoTool is a trivial tool for wrapper tests.
type echoTool struct {
	name   string
	schema json.RawMessage
}

func (e *echoTool) Name() string        { return e.name }
func (e *echoTool) Description() string { return "echoes its input" }
func (e *echoTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{Name: e.name, Description: e.Description(), Parameters: e.schema}
}

func (e *echoTool) Execute(_ context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return &domain.ToolResult{Content: string(params)}, nil
}
