package audit

import (
	"context"
	"log/slog"
	"time"
)

// Event represents an audit entry for a tool call.
type Event struct {
	// Type describes the event kind.
	Type string
	// Tool is the tool name.
	Tool string
	// URL is the redacted target URL.
	URL string
	// Outcome is the call outcome.
	Outcome string
	// Reason provides additional context.
	Reason string
	// Duration is the call duration.
	Duration time.Duration
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.InfoContext(ctx, "audit",
		"type", event.Type,
		"tool", event.Tool,
		"url", event.URL,
		"outcome", event.Outcome,
		"reason", event.Reason,
		"duration_ms", event.Duration.Milliseconds(),
	)
}
