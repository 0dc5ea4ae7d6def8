package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloud-ru/mcp-espp-go/internal/config"
	"github.com/cloud-ru/mcp-espp-go/internal/report"
	"github.com/cloud-ru/mcp-espp-go/internal/server"
	"github.com/cloud-ru/mcp-espp-go/internal/tools"
	"github.com/cloud-ru/mcp-espp-go/internal/tracing"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, version, cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	toolset := tools.NewToolset(cfg, tracer, report.NewGenerator())
	return server.Run(ctx, cfg.Addr(), server.NewRouter(cfg, toolset))
}
