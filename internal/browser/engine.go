package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/codex-k8s/mcp-playwright-server/internal/constants"
)

// Engine launches independent browser sessions.
type Engine interface {
	// Open launches a new browser and returns a session bound to ctx.
	// Cancelling ctx aborts in-flight session operations.
	Open(ctx context.Context) (Session, error)
	// Close releases engine-wide resources such as driver processes.
	Close() error
}

// Session is a single browser instance with one page.
// A session is owned by one caller and must be closed exactly once.
type Session interface {
	// Navigate opens url and waits for DOMContentLoaded.
	Navigate(url string) error
	// Screenshot captures the full page as PNG.
	Screenshot() ([]byte, error)
	// Close shuts the browser down.
	Close() error
}

// Options configures browser engines.
type Options struct {
	// Headless launches browsers without a window.
	Headless bool
	// Install downloads driver and browsers before the first launch.
	Install bool
	// ExecPath overrides the browser executable.
	ExecPath string
	// DriverDir overrides where the playwright driver is looked up.
	DriverDir string
}

// New builds an engine by name.
func New(name string, opts Options) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", constants.EnginePlaywrightGo:
		return NewPlaywright(opts), nil
	case constants.EngineChromedp:
		return NewChromedp(opts), nil
	default:
		return nil, fmt.Errorf("unknown browser engine: %s", name)
	}
}
