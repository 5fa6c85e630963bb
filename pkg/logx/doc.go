// Package logx is a thin structured-logging layer over zerolog.
//
// It exposes a small Logger value with slog-like Field helpers and a
// Service that owns the configured sinks:
//   - Console (human-friendly output on stdout)
//   - File (JSON lines, used by the daemon so `ahoy logs` has something to tail)
//
// Loggers created from a Service stay live across Apply() calls, so sinks
// can be reconfigured without re-plumbing loggers through the app.
package logx
