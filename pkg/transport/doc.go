// Package transport provides the instrument transport layer.
//
// The transport layer handles:
//   - Raw TCP socket connections to the instrument
//   - Newline-terminated command and reply lines
//   - One-in-flight exchange serialization
//   - Exchange tracing hooks
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│      SCPI command lines        │
//	├────────────────────────────────┤
//	│  Newline-terminated framing    │
//	├────────────────────────────────┤
//	│            TCP                 │
//	└────────────────────────────────┘
//
// # Exchange Model
//
// The instrument is half-duplex: a query must be answered before the next
// command goes out. Client implementations serialize exchanges internally,
// so a Client is safe to share across goroutines even though the wire
// carries one exchange at a time.
//
// # Timeouts
//
// Every exchange is bounded by the configured per-exchange timeout. A
// context deadline tightens the bound; it never extends it. Timeouts
// surface as errors wrapping ErrTimeout.
package transport
