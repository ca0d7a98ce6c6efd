package server

import (
	"context"
	"sync"
	"time"

	"omnibridge/internal/instrumentation"
	"omnibridge/internal/logging"
	"omnibridge/internal/omnifocus"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   *omnifocus.Client
	timeout  time.Duration
	readOnly bool

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The OmniFocus client is
// created lazily on first use so the server can start on machines where
// OmniFocus is not yet running.
func NewServerContext(ctx context.Context, readOnly bool, timeout time.Duration) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if timeout <= 0 {
		timeout = omnifocus.DefaultTimeout
	}

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		timeout:  timeout,
		readOnly: readOnly,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ReadOnly reports whether write tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// OmniFocusClient returns the OmniFocus client, creating and caching it on
// first use. Returns an error when osascript is unavailable on this host.
func (sc *ServerContext) OmniFocusClient() (*omnifocus.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.client != nil {
		return sc.client, nil
	}

	opts := []omnifocus.Option{
		omnifocus.WithTimeout(sc.timeout),
		omnifocus.WithLogger(logging.DefaultLogger()),
	}
	if m := sc.metrics; m != nil {
		opts = append(opts, omnifocus.WithExecutionRecorder(
			func(ctx context.Context, status string, scriptBytes int) {
				m.RecordOsascriptExecution(ctx, status, scriptBytes)
			}))
	}

	client, err := omnifocus.New(sc.ctx, opts...)
	if err != nil {
		return nil, err
	}

	sc.client = client
	return client, nil
}

// ClientInitialized reports whether the lazy OmniFocus client has been
// created yet.
func (sc *ServerContext) ClientInitialized() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client != nil
}

// Timeout returns the per-operation osascript timeout.
func (sc *ServerContext) Timeout() time.Duration {
	return sc.timeout
}

// SetOmniFocusClient sets the OmniFocus client. Used by tests to inject a
// client backed by a fake runner.
func (sc *ServerContext) SetOmniFocusClient(client *omnifocus.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// SetMetrics sets the metrics instance for instrumentation
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics instance, or nil if instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocation logging
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if audit logging is disabled
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
