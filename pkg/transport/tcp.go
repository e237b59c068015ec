package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scopesync/scopesync-go/pkg/trace"
)

// Default timeouts.
const (
	// DefaultDialTimeout is the connection timeout when the context
	// carries no deadline.
	DefaultDialTimeout = 10 * time.Second

	// DefaultTimeout is the per-exchange timeout.
	DefaultTimeout = 5 * time.Second
)

// Transport errors.
var (
	ErrNoAddress = errors.New("no instrument address configured")
	ErrClosed    = errors.New("connection closed")
	ErrTimeout   = errors.New("exchange timed out")
)

// Config configures a TCP instrument connection.
type Config struct {
	// Address is the instrument address (host:port).
	Address string

	// DialTimeout bounds connection establishment (default: 10s).
	DialTimeout time.Duration

	// Timeout bounds each exchange (default: 5s). A context deadline
	// tightens the bound per call.
	Timeout time.Duration

	// Trace receives one event per exchange. Nil disables tracing.
	Trace trace.Logger
}

// TCPClient is a Client over a raw TCP socket, the usual way bench
// instruments expose their command port.
type TCPClient struct {
	cfg    Config
	conn   net.Conn
	reader *bufio.Reader
	id     string
	remote string

	mu     sync.Mutex
	closed bool
}

// Dial connects to the instrument at cfg.Address.
func Dial(ctx context.Context, cfg Config) (*TCPClient, error) {
	if cfg.Address == "" {
		return nil, ErrNoAddress
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Trace == nil {
		cfg.Trace = trace.NoopLogger{}
	}

	// Apply timeout from config if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Address, err)
	}

	c := &TCPClient{
		cfg:    cfg,
		conn:   conn,
		reader: bufio.NewReader(conn),
		id:     uuid.NewString(),
		remote: conn.RemoteAddr().String(),
	}

	c.cfg.Trace.Log(trace.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Kind:         trace.KindConnect,
		RemoteAddr:   c.remote,
	})

	return c, nil
}

// ConnectionID returns the connection's unique identifier, as used in
// trace events.
func (c *TCPClient) ConnectionID() string {
	return c.id
}

// RemoteAddr returns the instrument address the client is connected to.
func (c *TCPClient) RemoteAddr() string {
	return c.remote
}

// Send transmits a set command. No reply is read.
func (c *TCPClient) Send(ctx context.Context, cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	err := c.write(ctx, cmd)

	c.cfg.Trace.Log(trace.Event{
		Timestamp:    start,
		ConnectionID: c.id,
		Kind:         trace.KindCommand,
		Command:      cmd,
		Elapsed:      time.Since(start),
		RemoteAddr:   c.remote,
		Error:        errText(err),
	})

	if err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	return nil
}

// Query transmits a command and returns the reply line.
func (c *TCPClient) Query(ctx context.Context, cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	var reply string
	err := c.write(ctx, cmd)
	if err == nil {
		reply, err = c.readLine(ctx)
	}

	c.cfg.Trace.Log(trace.Event{
		Timestamp:    start,
		ConnectionID: c.id,
		Kind:         trace.KindQuery,
		Command:      cmd,
		Response:     reply,
		Elapsed:      time.Since(start),
		RemoteAddr:   c.remote,
		Error:        errText(err),
	})

	if err != nil {
		return "", fmt.Errorf("query %q: %w", cmd, err)
	}
	return reply, nil
}

// Close closes the connection.
// It is safe to call Close multiple times.
func (c *TCPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	err := c.conn.Close()

	c.cfg.Trace.Log(trace.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Kind:         trace.KindClose,
		RemoteAddr:   c.remote,
		Error:        errText(err),
	})

	return err
}

// write sends one newline-terminated command line.
// Caller must hold c.mu.
func (c *TCPClient) write(ctx context.Context, cmd string) error {
	if c.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.conn.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return err
	}
	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return wrapTimeout(err)
	}
	return nil
}

// readLine reads one reply line and strips the terminator.
// Caller must hold c.mu.
func (c *TCPClient) readLine(ctx context.Context) (string, error) {
	if err := c.conn.SetReadDeadline(c.deadline(ctx)); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", wrapTimeout(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// deadline returns the exchange deadline: the configured timeout,
// tightened by the context deadline when that is earlier.
func (c *TCPClient) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.cfg.Timeout)
	if cd, ok := ctx.Deadline(); ok && cd.Before(d) {
		d = cd
	}
	return d
}

// wrapTimeout maps network timeouts onto ErrTimeout so callers can
// match with errors.Is.
func wrapTimeout(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// errText renders an error for a trace event, empty for nil.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
