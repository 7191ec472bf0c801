// Package server provides the MCP server context and the metrics listener
// for the slotfinder application.
//
// ServerContext manages calendar clients with lazy initialization and
// caching. It supports multiple accounts and reads tokens from disk via
// FileTokenProvider; a custom TokenProvider can be injected for testing.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics off the MCP transport.
package server
