package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/mcp-playwright-server/internal/catalog"
	"github.com/codex-k8s/mcp-playwright-server/internal/protocol"
)

const methodCallTool = "tools/call"

// Dispatcher executes tool calls.
type Dispatcher interface {
	// Call handles one tool invocation.
	Call(ctx context.Context, req protocol.ToolCallRequest) (protocol.ToolCallResult, error)
}

// Builder constructs an MCP server around a Dispatcher.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Timeout bounds a single tool call; zero disables it.
	Timeout time.Duration
}

// Build creates an MCP server exposing every catalog tool. Calls naming
// a tool outside the catalog are still handed to the dispatcher.
func (b Builder) Build(cat *catalog.Catalog, dispatcher Dispatcher) (*mcp.Server, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is nil")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cat.Server.Name,
		Version: cat.Server.Version,
	}, nil)
	mcpServer.AddReceivingMiddleware(b.uncataloged(cat, dispatcher))

	for _, tool := range cat.Tools() {
		if tool.InputSchema == nil {
			return nil, fmt.Errorf("tool %s: input schema is nil", tool.Name)
		}
		mcpServer.AddTool(&mcp.Tool{
			Name:        tool.Name,
			Title:       tool.Title,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
			Annotations: buildAnnotations(tool.Annotations),
		}, b.handler(dispatcher))
		if b.Logger != nil {
			b.Logger.Debug("tool registered", "tool", tool.Name)
		}
	}

	return mcpServer, nil
}

// uncataloged routes tools/call requests for names the server does not
// register to the dispatcher instead of the SDK's unknown-tool error.
func (b Builder) uncataloged(cat *catalog.Catalog, dispatcher Dispatcher) mcp.Middleware {
	handle := b.handler(dispatcher)
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}
			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil {
				return next(ctx, method, req)
			}
			if _, known := cat.Lookup(call.Params.Name); known {
				return next(ctx, method, req)
			}
			res, err := handle(ctx, call)
			if err != nil {
				return nil, err
			}
			return res, nil
		}
	}
}

func (b Builder) handler(dispatcher Dispatcher) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if b.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.Timeout)
			defer cancel()
		}

		res, err := dispatcher.Call(ctx, protocol.ToolCallRequest{
			Name:      req.Params.Name,
			Arguments: decodeArguments(req.Params.Arguments),
		})
		if err != nil {
			return nil, err
		}
		return toMCP(res), nil
	}
}

// decodeArguments returns nil for absent, null or non-object payloads.
func decodeArguments(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil
	}
	return args
}

func toMCP(res protocol.ToolCallResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(res.Content))
	for _, item := range res.Content {
		content = append(content, &mcp.TextContent{Text: item.Text})
	}
	return &mcp.CallToolResult{Content: content}
}

func buildAnnotations(cfg *catalog.ToolAnnotationsConfig) *mcp.ToolAnnotations {
	if cfg == nil {
		return nil
	}
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    cfg.ReadOnlyHint,
		DestructiveHint: cfg.DestructiveHint,
		IdempotentHint:  cfg.IdempotentHint,
		OpenWorldHint:   cfg.OpenWorldHint,
		Title:           cfg.Title,
	}
}
