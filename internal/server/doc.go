// Package server provides the MCP server context, health endpoints, and
// the dedicated metrics server for the omnibridge application.
//
// # Key Components
//
// ServerContext manages the OmniFocus automation client with lazy
// initialization and caching, carries the read-only flag that gates write
// tools, and holds the instrumentation handles (metrics, audit logger)
// shared by all tool handlers.
//
// HealthChecker exposes /healthz, /readyz and /healthz/detailed for the
// HTTP transport so supervisors and probes can observe liveness and
// readiness independently of MCP traffic.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from the MCP endpoint.
package server
