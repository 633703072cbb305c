package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// App controls the lifecycle of one HTTP listener.
type App struct {
	name            string
	server          *http.Server
	listener        net.Listener
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New binds addr and prepares an HTTP server for handler. Binding happens
// here so address conflicts surface before Run.
func New(name, addr string, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) (*App, error) {
	if handler == nil {
		return nil, fmt.Errorf("%s: handler is nil", name)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s: listen %s: %w", name, addr, err)
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &App{
		name:     name,
		listener: listener,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Addr returns the bound listener address.
func (a *App) Addr() string {
	return a.listener.Addr().String()
}

// Run serves until ctx is done or the server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if a.logger != nil {
			a.logger.Info("http server started", "server", a.name, "addr", a.Addr())
		}
		errCh <- a.server.Serve(a.listener)
	}()

	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("http server stopping", "server", a.name)
		}
		return a.shutdown(context.WithoutCancel(ctx))
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if a.logger != nil {
			a.logger.Error("http server error", "server", a.name, "error", err)
		}
		return fmt.Errorf("%s: %w", a.name, err)
	}
}

func (a *App) shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: shutdown: %w", a.name, err)
	}
	return nil
}
