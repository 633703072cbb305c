package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultHealthPort is used when MCP_HEALTH_PORT is unset or not a valid port.
const DefaultHealthPort = 8931

// Config stores environment-driven settings for the server.
type Config struct {
	// HealthPort is the raw loopback port for the health listener.
	HealthPort string `env:"MCP_HEALTH_PORT" envDefault:"8931"`
	// LogLevel sets the logger level.
	LogLevel string `env:"MCP_LOG_LEVEL" envDefault:"info"`
	// Engine selects the browser automation backend.
	Engine string `env:"MCP_BROWSER_ENGINE" envDefault:"playwright"`
	// Headless launches browsers without a window.
	Headless bool `env:"MCP_BROWSER_HEADLESS" envDefault:"true"`
	// BrowserPath overrides the browser executable.
	BrowserPath string `env:"MCP_BROWSER_PATH"`
	// DriverDir overrides the playwright driver directory.
	DriverDir string `env:"MCP_PLAYWRIGHT_DRIVER_DIR"`
	// InstallBrowsers installs the playwright driver and browsers on start.
	InstallBrowsers bool `env:"MCP_PLAYWRIGHT_INSTALL" envDefault:"false"`
	// ToolTimeout bounds a single tool call; zero disables it.
	ToolTimeout time.Duration `env:"MCP_TOOL_TIMEOUT" envDefault:"0s"`
	// Transport selects the MCP transport ("stdio" or "http").
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	// HTTPAddr is the listen address of the streamable HTTP transport.
	HTTPAddr string `env:"MCP_HTTP_ADDR" envDefault:"127.0.0.1:8932"`
	// HTTPPath is the MCP endpoint path of the streamable HTTP transport.
	HTTPPath string `env:"MCP_HTTP_PATH" envDefault:"/mcp"`
	// MetricsAddr enables the Prometheus listener when non-empty.
	MetricsAddr string `env:"MCP_METRICS_ADDR"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"MCP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}

// Port returns the health port, falling back to DefaultHealthPort
// when the configured value is not a number in 1..65535.
func (c Config) Port() int {
	port, err := strconv.Atoi(strings.TrimSpace(c.HealthPort))
	if err != nil || port < 1 || port > 65535 {
		return DefaultHealthPort
	}
	return port
}

// HealthAddr is the loopback address the health listener binds to.
func (c Config) HealthAddr() string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(c.Port()))
}
