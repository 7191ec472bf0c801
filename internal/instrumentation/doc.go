// Package instrumentation provides OpenTelemetry metrics for slotfinder.
//
// The provider wires a meter provider with a configurable exporter
// (prometheus, otlp, or stdout) and exposes a Metrics recorder for the
// search and MCP tool layers. The core schedule package stays metric-free;
// recording happens at the edges.
package instrumentation
