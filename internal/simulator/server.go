package simulator

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/scopesync/scopesync-go/pkg/trace"
)

// DefaultAddress is the listen address when ServerConfig leaves it
// empty. Port 5025 is the conventional raw instrument socket port.
const DefaultAddress = ":5025"

// ServerConfig configures a simulator server.
type ServerConfig struct {
	// Address to listen on (default ":5025"). Use ":0" for an
	// ephemeral port in tests.
	Address string

	// State is the instrument state machine. A nil state gets a fresh
	// one at factory defaults.
	State *State

	// Trace receives one event per connection and handled line
	// (optional).
	Trace trace.Logger
}

// Server answers the instrument command protocol over TCP. Multiple
// clients may connect concurrently; they share one State.
type Server struct {
	config ServerConfig
	state  *State

	listener net.Listener

	// Active connections
	conns   map[net.Conn]struct{}
	connsMu sync.RWMutex

	// State
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a simulator server.
func NewServer(config ServerConfig) *Server {
	if config.Address == "" {
		config.Address = DefaultAddress
	}
	if config.State == nil {
		config.State = NewState()
	}
	if config.Trace == nil {
		config.Trace = trace.NoopLogger{}
	}

	return &Server{
		config: config,
		state:  config.State,
		conns:  make(map[net.Conn]struct{}),
	}
}

// State returns the shared instrument state.
func (s *Server) State() *State {
	return s.state
}

// Start starts the server and begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("server already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop stops the server and closes all connections.
func (s *Server) Stop() error {
	if !s.running.Load() {
		return nil
	}

	s.running.Store(false)
	s.cancel()

	// Close listener to stop accept loop
	if s.listener != nil {
		s.listener.Close()
	}

	// Close all connections
	s.connsMu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connsMu.Unlock()

	// Wait for goroutines
	s.wg.Wait()

	return nil
}

// Addr returns the server's listen address.
func (s *Server) Addr() net.Addr {
	if s.listener != nil {
		return s.listener.Addr()
	}
	return nil
}

// ConnectionCount returns the number of active connections.
func (s *Server) ConnectionCount() int {
	s.connsMu.RLock()
	defer s.connsMu.RUnlock()
	return len(s.conns)
}

// acceptLoop accepts incoming connections.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection serves one client until it disconnects. Set
// commands get no reply; queries get one reply line.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	connID := uuid.New().String()
	remote := conn.RemoteAddr().String()

	s.connsMu.Lock()
	s.conns[conn] = struct{}{}
	s.connsMu.Unlock()

	s.config.Trace.Log(trace.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Kind:         trace.KindConnect,
		RemoteAddr:   remote,
	})

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		start := time.Now()
		reply, answered := s.state.Handle(line)
		if answered {
			if _, err := conn.Write([]byte(reply + "\n")); err != nil {
				break
			}
		}

		kind := trace.KindCommand
		if answered {
			kind = trace.KindQuery
		}
		s.config.Trace.Log(trace.Event{
			Timestamp:    start,
			ConnectionID: connID,
			Kind:         kind,
			Command:      line,
			Response:     reply,
			Elapsed:      time.Since(start),
			RemoteAddr:   remote,
		})
	}

	conn.Close()

	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()

	s.config.Trace.Log(trace.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Kind:         trace.KindClose,
		RemoteAddr:   remote,
	})
}
