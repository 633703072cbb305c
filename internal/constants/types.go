package constants

// Server identity reported to MCP clients and the health probe.
const (
	ServerName    = "mcp-playwright"
	ServerVersion = "0.1.0"
)

// Tool names exposed by the catalog.
const (
	ToolNavigate   = "playwright.navigate"
	ToolScreenshot = "playwright.screenshot"
)

// UncatalogedToolLabel replaces tool names outside the catalog in metrics.
const UncatalogedToolLabel = "unknown"

// Browser engine aliases.
const (
	EnginePlaywrightGo = "playwright"
	EngineChromedp     = "chromedp"
)

// MCP transport aliases.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Call outcomes used in logs, audit records and metrics.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeUnknownTool = "unknown_tool"
	OutcomeError       = "error"
)
