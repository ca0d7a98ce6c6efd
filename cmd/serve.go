package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"omnibridge/internal/config"
	"omnibridge/internal/instrumentation"
	"omnibridge/internal/logging"
	"omnibridge/internal/resources"
	"omnibridge/internal/server"
	"omnibridge/internal/tools/database_tools"
	"omnibridge/internal/tools/folder_tools"
	"omnibridge/internal/tools/perspective_tools"
	"omnibridge/internal/tools/project_tools"
	"omnibridge/internal/tools/tag_tools"
	"omnibridge/internal/tools/task_tools"
)

func newServeCmd() *cobra.Command {
	var (
		transport      string
		httpAddr       string
		yolo           bool
		debugMode      bool
		timeoutSeconds int
		metricsEnabled bool
		metricsAddr    string
		auditLogPath   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing OmniFocus
tasks, projects, folders, tags, and perspectives to AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (creating, editing,
  and deleting OmniFocus items).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override config file and environment
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}
			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("yolo") {
				cfg.Yolo = yolo
			}
			if cmd.Flags().Changed("timeout") {
				cfg.TimeoutSeconds = timeoutSeconds
			}
			if cmd.Flags().Changed("metrics-enabled") {
				cfg.MetricsEnabled = metricsEnabled
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsPort = portFromAddr(metricsAddr, cfg.MetricsPort)
			}
			if cmd.Flags().Changed("audit-log") {
				cfg.AuditLogPath = auditLogPath
			}
			if debugMode {
				cfg.LogLevel = "debug"
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.DefaultTransport, "Transport type: stdio or http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", config.DefaultHTTPAddr, "HTTP server address (for http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (task creation, editing, deletion, etc.). Default is read-only mode.")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", config.DefaultTimeoutSeconds, "Per-operation osascript timeout in seconds")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", false, "Enable the metrics server on a dedicated port. Can also use OMNIBRIDGE_METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use OMNIBRIDGE_METRICS_PORT env var.")
	cmd.Flags().StringVar(&auditLogPath, "audit-log", "", "Append audit log records to this file. Can also use OMNIBRIDGE_AUDIT_LOG env var.")

	return cmd
}

func runServe(cfg *config.Config) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Log to stderr; stdout carries the MCP protocol on stdio transport
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if cfg.Transport != "stdio" && cfg.MetricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    fmt.Sprintf(":%d", cfg.MetricsPort),
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", logging.Err(err))
			}
		}()
	}

	readOnly := !cfg.Yolo

	serverContext := server.NewServerContext(shutdownCtx, readOnly, cfg.Timeout())
	defer func() {
		if metricsServer != nil {
			metricsShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(metricsShutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", logging.Err(err))
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			slog.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
	}
	auditLogger, auditClose, err := newAuditLogger(cfg, instrConfig.AuditLogging)
	if err != nil {
		return err
	}
	if auditClose != nil {
		defer auditClose()
	}
	if auditLogger != nil {
		serverContext.SetAuditLogger(auditLogger)
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("omnibridge", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	if readOnly {
		slog.Info("starting server in read-only mode (use --yolo to enable write operations)",
			logging.Transport(cfg.Transport))
	} else {
		slog.Info("starting server with write operations enabled",
			logging.Transport(cfg.Transport))
	}

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	switch cfg.Transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "http":
		return runHTTPServer(shutdownCtx, mcpSrv, serverContext, cfg)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, http)", cfg.Transport)
	}
}

// newAuditLogger builds the audit logger from config. When an audit log path
// is set, records go to that file as JSON; otherwise they go to stderr.
// The returned close function is nil when no file was opened.
func newAuditLogger(cfg *config.Config, auditConfig instrumentation.AuditLoggingConfig) (*instrumentation.AuditLogger, func(), error) {
	if cfg.AuditLogPath == "" {
		return instrumentation.NewAuditLoggerWithConfig(nil, auditConfig), nil, nil
	}

	f, err := os.OpenFile(cfg.AuditLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening audit log %s: %w", cfg.AuditLogPath, err)
	}
	logger := logging.New(f, "info", "json")
	return instrumentation.NewAuditLoggerWithConfig(logger, auditConfig), func() { _ = f.Close() }, nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Tasks",
			register: func() error {
				return task_tools.RegisterTaskTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Projects",
			register: func() error {
				return project_tools.RegisterProjectTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Folders",
			register: func() error {
				return folder_tools.RegisterFolderTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Tags",
			register: func() error {
				return tag_tools.RegisterTagTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Perspectives",
			register: func() error {
				return perspective_tools.RegisterPerspectiveTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Database",
			register: func() error {
				return database_tools.RegisterDatabaseTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Resources",
			register: func() error {
				return resources.RegisterOmniFocusResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, cfg *config.Config) error {
	streamableServer := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamableServer)

	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.RegisterHealthEndpoints(mux)
	healthChecker.SetReady(true)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("HTTP server listening",
		slog.String("addr", cfg.HTTPAddr),
		slog.String("mcp_endpoint", "/mcp"),
		slog.String("health_endpoints", "/healthz /readyz"))

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping HTTP server")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	return nil
}

// portFromAddr extracts the port from a ":9090" style address,
// falling back to def when the address has no usable port.
func portFromAddr(addr string, def int) int {
	i := strings.LastIndex(addr, ":")
	if i < 0 || i == len(addr)-1 {
		return def
	}
	port := 0
	for _, r := range addr[i+1:] {
		if r < '0' || r > '9' {
			return def
		}
		port = port*10 + int(r-'0')
	}
	if port < 1 || port > 65535 {
		return def
	}
	return port
}

// parseCommaSeparatedList parses a comma-separated string into a slice,
// trimming whitespace from each element and filtering out empty strings.
// Returns nil if the input is empty or contains only whitespace/commas.
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
