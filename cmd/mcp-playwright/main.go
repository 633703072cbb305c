package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/codex-k8s/mcp-playwright-server/configs"
	"github.com/codex-k8s/mcp-playwright-server/internal/app"
	"github.com/codex-k8s/mcp-playwright-server/internal/audit"
	"github.com/codex-k8s/mcp-playwright-server/internal/browser"
	"github.com/codex-k8s/mcp-playwright-server/internal/catalog"
	"github.com/codex-k8s/mcp-playwright-server/internal/config"
	"github.com/codex-k8s/mcp-playwright-server/internal/constants"
	"github.com/codex-k8s/mcp-playwright-server/internal/facade"
	"github.com/codex-k8s/mcp-playwright-server/internal/http/health"
	"github.com/codex-k8s/mcp-playwright-server/internal/log"
	"github.com/codex-k8s/mcp-playwright-server/internal/metrics"
	"github.com/codex-k8s/mcp-playwright-server/internal/runtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	if err := run(baseCtx, cfg, logger); err != nil {
		logger.Error("runtime error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	raw, err := configs.Load(configs.CatalogFile)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(raw)
	if err != nil {
		return fmt.Errorf("load tool catalog: %w", err)
	}

	engine, err := browser.New(cfg.Engine, browser.Options{
		Headless:  cfg.Headless,
		Install:   cfg.InstallBrowsers,
		ExecPath:  cfg.BrowserPath,
		DriverDir: cfg.DriverDir,
	})
	if err != nil {
		return fmt.Errorf("init browser engine: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Warn("browser engine close failed", "error", err)
		}
	}()

	collectors := metrics.New()
	dispatcher, err := facade.New(engine, cat,
		facade.WithLogger(logger),
		facade.WithAudit(audit.New(logger)),
		facade.WithMetrics(collectors),
	)
	if err != nil {
		return err
	}

	server, err := runtime.Builder{Logger: logger, Timeout: cfg.ToolTimeout}.Build(cat, dispatcher)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	healthApp, err := app.New("health", cfg.HealthAddr(), health.New(cat.Server.Name), logger, cfg.ShutdownTimeout)
	if err != nil {
		return err
	}
	logger.Info("health endpoint ready", "url", "http://"+healthApp.Addr()+health.Path, "engine", cfg.Engine)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return healthApp.Run(gctx) })

	if strings.TrimSpace(cfg.MetricsAddr) != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collectors.Handler())
		metricsApp, err := app.New("metrics", cfg.MetricsAddr, mux, logger, cfg.ShutdownTimeout)
		if err != nil {
			return err
		}
		g.Go(func() error { return metricsApp.Run(gctx) })
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case constants.TransportStdio:
		g.Go(func() error {
			// stdin closing ends the session and the whole process.
			defer cancel()
			return runStdio(gctx, server)
		})
	case constants.TransportHTTP:
		mcpApp, err := newHTTPApp(cfg, server, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return mcpApp.Run(gctx) })
	default:
		return fmt.Errorf("unknown transport: %s", cfg.Transport)
	}

	return g.Wait()
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	err := server.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

func newHTTPApp(cfg config.Config, server *mcp.Server, logger *slog.Logger) (*app.App, error) {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{})

	mux := http.NewServeMux()
	mux.Handle(cfg.HTTPPath, handler)
	return app.New("mcp", cfg.HTTPAddr, mux, logger, cfg.ShutdownTimeout)
}
