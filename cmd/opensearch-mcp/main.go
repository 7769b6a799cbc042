package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/opensearch-mcp/internal/backend"
	"github.com/dshills/opensearch-mcp/internal/config"
	"github.com/dshills/opensearch-mcp/internal/mcp"
	"github.com/dshills/opensearch-mcp/internal/transport"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:          "opensearch-mcp",
		Short:        "MCP server exposing OpenSearch cluster operations as tools",
		Version:      fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "address to listen on")
	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	return cmd
}

func run(host string, port int) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("opensearch-mcp starting", "version", version)

	// Missing credentials is a startup-fatal configuration error.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		return err
	}

	// The backend connection is constructed once and shared by all tool
	// handlers for the process lifetime.
	be, err := backend.New(cfg)
	if err != nil {
		logger.Error("failed to create backend client", "error", err)
		return err
	}

	srv := mcp.NewServer(be, logger)
	adapter := transport.NewStreamableHTTP(srv, logger)

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           adapter.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "cluster", cfg.Host)
		errChan <- httpServer.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down gracefully", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
