// Package facade translates tool calls into browser automation.
//
// Every call owns exactly one browser session, opened and closed within
// the call. Calls share no mutable state and may run concurrently.
package facade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codex-k8s/mcp-playwright-server/internal/audit"
	"github.com/codex-k8s/mcp-playwright-server/internal/browser"
	"github.com/codex-k8s/mcp-playwright-server/internal/catalog"
	"github.com/codex-k8s/mcp-playwright-server/internal/constants"
	"github.com/codex-k8s/mcp-playwright-server/internal/metrics"
	"github.com/codex-k8s/mcp-playwright-server/internal/protocol"
	"github.com/codex-k8s/mcp-playwright-server/internal/security"
)

// Facade dispatches tool calls to a browser engine.
type Facade struct {
	engine  browser.Engine
	catalog *catalog.Catalog
	logger  *slog.Logger
	audit   audit.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option customizes a Facade.
type Option func(*Facade)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) { f.logger = logger }
}

// WithAudit sets the audit sink.
func WithAudit(logger audit.Logger) Option {
	return func(f *Facade) { f.audit = logger }
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Facade) { f.metrics = m }
}

// New returns a Facade serving the tools of cat through engine.
func New(engine browser.Engine, cat *catalog.Catalog, opts ...Option) (*Facade, error) {
	if engine == nil {
		return nil, fmt.Errorf("browser engine is nil")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	f := &Facade{
		engine:  engine,
		catalog: cat,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Tools returns the fixed tool catalog.
func (f *Facade) Tools() []catalog.Descriptor {
	return f.catalog.Tools()
}

// Call handles one tool invocation. Validation problems and unknown
// tool names produce a successful result carrying a message; browser
// failures are returned as errors.
func (f *Facade) Call(ctx context.Context, req protocol.ToolCallRequest) (protocol.ToolCallResult, error) {
	start := f.now()

	url, ok := req.URL()
	if !ok {
		f.observe(ctx, req.Name, "", constants.OutcomeInvalid, start, nil)
		return protocol.Text(protocol.MissingURLText), nil
	}

	var (
		text string
		err  error
	)
	switch req.Name {
	case constants.ToolNavigate:
		err = f.withSession(ctx, func(s browser.Session) error {
			return s.Navigate(url)
		})
		text = protocol.NavigatedText(url)
	case constants.ToolScreenshot:
		var size int
		err = f.withSession(ctx, func(s browser.Session) error {
			if err := s.Navigate(url); err != nil {
				return err
			}
			data, err := s.Screenshot()
			if err != nil {
				return err
			}
			size = len(data)
			return nil
		})
		if err == nil {
			f.metrics.ObserveScreenshot(size)
		}
		text = protocol.ScreenshotText(size)
	default:
		f.observe(ctx, req.Name, url, constants.OutcomeUnknownTool, start, nil)
		return protocol.Text(protocol.UnknownToolText(req.Name)), nil
	}

	if err != nil {
		f.observe(ctx, req.Name, url, constants.OutcomeError, start, err)
		return protocol.ToolCallResult{}, fmt.Errorf("%s: %w", req.Name, err)
	}
	f.observe(ctx, req.Name, url, constants.OutcomeOK, start, nil)
	return protocol.Text(text), nil
}

// withSession runs action against a fresh session and always closes it.
// A close failure is reported only when the action itself succeeded.
func (f *Facade) withSession(ctx context.Context, action func(browser.Session) error) (err error) {
	session, err := f.engine.Open(ctx)
	if err != nil {
		return err
	}
	f.metrics.SessionOpened()

	defer func() {
		closeErr := session.Close()
		f.metrics.SessionClosed()
		if closeErr == nil {
			return
		}
		if err != nil {
			err = errors.Join(err, closeErr)
			return
		}
		if f.logger != nil {
			f.logger.WarnContext(ctx, "browser close failed", "error", closeErr)
		}
	}()

	return action(session)
}

func (f *Facade) observe(ctx context.Context, tool, url, outcome string, start time.Time, err error) {
	elapsed := f.now().Sub(start)
	redacted := security.RedactURL(url)

	f.metrics.ObserveCall(f.metricLabel(tool), outcome, elapsed)

	reason := ""
	if err != nil {
		reason = err.Error()
	}
	if f.audit != nil {
		f.audit.Record(ctx, audit.Event{
			Type:     "tool_call",
			Tool:     tool,
			URL:      redacted,
			Outcome:  outcome,
			Reason:   reason,
			Duration: elapsed,
		})
	}

	if f.logger == nil {
		return
	}
	switch outcome {
	case constants.OutcomeOK:
		f.logger.InfoContext(ctx, "tool call", "tool", tool, "url", redacted, "duration", elapsed)
	case constants.OutcomeError:
		f.logger.ErrorContext(ctx, "tool call failed", "tool", tool, "url", redacted, "duration", elapsed, "error", err)
	default:
		f.logger.DebugContext(ctx, "tool call rejected", "tool", tool, "url", redacted, "outcome", outcome)
	}
}

// metricLabel keeps the tool label bounded to catalog names.
func (f *Facade) metricLabel(tool string) string {
	if _, ok := f.catalog.Lookup(tool); ok {
		return tool
	}
	return constants.UncatalogedToolLabel
}
