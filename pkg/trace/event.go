package trace

import "time"

// Event represents one instrument I/O exchange.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the exchange started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Kind classifies the exchange.
	Kind Kind `cbor:"3,keyasint"`

	// Command is the command line as sent, without the terminator.
	Command string `cbor:"4,keyasint,omitempty"`

	// Response is the reply line for queries, without the terminator.
	Response string `cbor:"5,keyasint,omitempty"`

	// Elapsed is the exchange duration. Stored as nanoseconds.
	Elapsed time.Duration `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the instrument address (host:port).
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Error is the error text when the exchange failed.
	Error string `cbor:"8,keyasint,omitempty"`
}

// Failed reports whether the exchange ended in an error.
func (e Event) Failed() bool {
	return e.Error != ""
}

// Kind classifies an exchange.
type Kind uint8

const (
	// KindCommand indicates a set command with no reply expected.
	KindCommand Kind = 0
	// KindQuery indicates a command followed by a reply line.
	KindQuery Kind = 1
	// KindConnect indicates a connection being established.
	KindConnect Kind = 2
	// KindClose indicates a connection being closed.
	KindClose Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "COMMAND"
	case KindQuery:
		return "QUERY"
	case KindConnect:
		return "CONNECT"
	case KindClose:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}
