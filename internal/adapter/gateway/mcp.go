// Package gateway exposes registered tools over the MCP stdio transport.
// It owns request dispatch; tools stay transport-agnostic behind the
// domain.Tool interface, and every path crossing this boundary is a virtual
// path.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fsgate/internal/domain"
	"fsgate/internal/infra/config"
)

// NewServer builds an MCP server advertising the given tools.
func NewServer(cfg config.ServerConfig, tools []domain.Tool, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(cfg.Name, cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, t := range tools {
		s.AddTool(
			mcp.NewToolWithRawSchema(t.Name(), t.Description(), t.Schema().Parameters),
			handlerFor(t, logger),
		)
		logger.Debug("tool registered", "tool", t.Name())
	}

	return s
}

// ServeStdio blocks serving MCP requests on stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handlerFor adapts a domain.Tool to an MCP tool handler. Tool failures are
// reported as error results, never as protocol errors, so one bad call does
// not tear down the session.
func handlerFor(t domain.Tool, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := t.Execute(ctx, raw)
		if err != nil {
			// Tools fold failures into the result; anything reaching here
			// is unexpected.
			logger.Error("tool execution failed", "tool", t.Name(), "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		if result.IsError {
			return mcp.NewToolResultError(result.Content), nil
		}
		return mcp.NewToolResultText(result.Content), nil
	}
}
