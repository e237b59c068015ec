// Package trace provides structured instrument I/O tracing for scopesync.
//
// This package defines the Logger interface and Event type for capturing
// command/response exchanges with an instrument. It is separate from
// operational logging (slog) - exchange capture provides a complete
// machine-readable record of the instrument conversation for debugging
// and analysis.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Trace = trace.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Trace, _ = trace.NewFileLogger("/var/log/scopesync/bench.sclog")
//
//	// Both: use MultiLogger
//	cfg.Trace = trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    trace.NewFileLogger("/var/log/scopesync/bench.sclog"),
//	)
//
// # Event Kinds
//
// One Event is recorded per exchange:
//   - Command: a set command with no reply expected
//   - Query: a command followed by a reply line
//   - Connect/Close: connection lifecycle
//
// Failed exchanges carry the error text in Event.Error.
//
// # File Format
//
// Trace files use CBOR encoding with .sclog extension. The scope-log CLI
// tool provides viewing, filtering, and export capabilities.
package trace
