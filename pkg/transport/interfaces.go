package transport

import "context"

// Client represents a connection to an instrument.
// Implemented by TCPClient.
type Client interface {
	// Send transmits a set command. No reply is read.
	Send(ctx context.Context, cmd string) error

	// Query transmits a command and returns the reply line,
	// without the line terminator.
	Query(ctx context.Context, cmd string) (string, error)

	// Close closes the connection.
	Close() error
}

// Compile-time interface satisfaction check.
var _ Client = (*TCPClient)(nil)
