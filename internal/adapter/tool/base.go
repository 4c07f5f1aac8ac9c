package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/domain"
	"fsgate/internal/infra/tracer"
	"fsgate/internal/security"
)

// Deps bundles the collaborators every filesystem tool needs. Tools never
// touch raw caller paths: everything goes through the resolver first.
type Deps struct {
	Resolver *security.Resolver
	Backend  FilesystemBackend
	Audit    security.AuditLogger
	Logger   *slog.Logger
}

// virtual renders a real path in virtual form for output. Falls back to the
// caller-supplied path if the real path cannot be mapped; the fallback is
// itself a virtual path, so no real path can leak through here.
func (d Deps) virtual(real, fallback string) string {
	if v, err := d.Resolver.ToVirtual(real); err == nil {
		return v
	}
	return fallback
}

// audit records a mutating operation if auditing is enabled.
func (d Deps) audit(ctx context.Context, op, virtualPath string, err error) {
	if d.Audit == nil {
		return
	}
	outcome, detail := "ok", ""
	if err != nil {
		outcome, detail = "error", err.Error()
	}
	d.Audit.Record(ctx, op, virtualPath, outcome, detail)
}

// Execute is the standard tool execution pipeline: parse params -> start
// trace -> run handler -> format result.
//
// The handler receives the parsed params and an active trace span. It should
// return:
//   - (string, nil): wrapped in a plain-text ToolResult
//   - (*domain.ToolResult, nil): returned as-is (for custom formatting)
//   - (nil, error): turned into an error ToolResult with logging
func Execute[P any](
	ctx context.Context,
	spanName string,
	logger *slog.Logger,
	rawParams json.RawMessage,
	handler func(ctx context.Context, span trace.Span, params P) (any, error),
) (*domain.ToolResult, error) {
	ctx, span := tracer.StartSpan(ctx, spanName,
		trace.WithAttributes(tracer.StringAttr("tool.name", spanName)),
	)
	defer span.End()

	var p P
	if err := json.Unmarshal(rawParams, &p); err != nil {
		tracer.RecordError(span, err)
		return &domain.ToolResult{IsError: true, Content: fmt.Sprintf("invalid params: %v", err)}, nil
	}

	result, err := handler(ctx, span, p)
	if err != nil {
		tracer.RecordError(span, err)
		logger.Warn(spanName+" failed",
			"error", err,
			"code", domain.ErrorCodeOf(err),
		)
		return &domain.ToolResult{IsError: true, Content: err.Error()}, nil
	}

	return formatResult(span, result)
}

// formatResult converts the handler's return value into a ToolResult.
func formatResult(span trace.Span, result any) (*domain.ToolResult, error) {
	switch v := result.(type) {
	case *domain.ToolResult:
		if v.IsError {
			tracer.RecordError(span, fmt.Errorf("%s", v.Content))
		} else {
			tracer.SetOK(span)
		}
		return v, nil
	case string:
		tracer.SetOK(span)
		return &domain.ToolResult{Content: v}, nil
	default:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			tracer.RecordError(span, err)
			return &domain.ToolResult{
				IsError: true,
				Content: fmt.Sprintf("failed to format response: %v", err),
			}, nil
		}
		tracer.SetOK(span)
		return &domain.ToolResult{Content: string(data)}, nil
	}
}

// TextResult creates a plain text success ToolResult.
func TextResult(s string) *domain.ToolResult {
	return &domain.ToolResult{Content: s}
}

// ErrResult creates an error ToolResult. Use this for validation errors
// inside handlers that should be returned without being logged as warnings.
func ErrResult(format string, args ...any) (*domain.ToolResult, error) {
	return &domain.ToolResult{
		IsError: true,
		Content: fmt.Sprintf(format, args...),
	}, nil
}
