package simulator_test

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/scopesync/scopesync-go/internal/simulator"
	"github.com/scopesync/scopesync-go/pkg/trace"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// captureLogger records trace events for inspection.
type captureLogger struct {
	mu     sync.Mutex
	events []trace.Event
}

func (l *captureLogger) Log(e trace.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *captureLogger) snapshot() []trace.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]trace.Event(nil), l.events...)
}

func startServer(t *testing.T, cfg simulator.ServerConfig) *simulator.Server {
	t.Helper()

	if cfg.Address == "" {
		cfg.Address = "127.0.0.1:0"
	}
	server := simulator.NewServer(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	if err := server.Start(ctx); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() { server.Stop() })

	return server
}

func waitForConnections(t *testing.T, server *simulator.Server, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if server.ConnectionCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("connection count never reached %d (have %d)", want, server.ConnectionCount())
}

// TestServerExchange verifies sets get no reply and queries get one
// line over a raw socket.
func TestServerExchange(t *testing.T) {
	server := startServer(t, simulator.ServerConfig{})

	conn, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	fmt.Fprintf(conn, "*IDN?\n")
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("Failed to read identity: %v", err)
	}
	want := "TEKTRONIX,TDS 2024B,SIM0001,CF:91.1CT FV:v22.01"
	if got := strings.TrimRight(line, "\r\n"); got != want {
		t.Errorf("identity = %q, want %q", got, want)
	}

	// A set produces no reply; the next line read answers the query
	// that follows it.
	fmt.Fprintf(conn, "CH1:COUPLING AC\n")
	fmt.Fprintf(conn, "CH1:COUPLING?\n")
	line, err = reader.ReadString('\n')
	if err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	if got := strings.TrimRight(line, "\r\n"); got != "AC" {
		t.Errorf("reply = %q, want AC", got)
	}
}

// TestServerSharedState verifies concurrent clients see one instrument.
func TestServerSharedState(t *testing.T) {
	state := simulator.NewState()
	server := startServer(t, simulator.ServerConfig{State: state})

	first, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer first.Close()

	second, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer second.Close()

	waitForConnections(t, server, 2)

	fmt.Fprintf(first, "HOR:MAIN:SCALE 1.0E-3\n")

	// The set is asynchronous from the second client's view.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if token, _ := state.Value("HOR:MAIN:SCALE"); token == "1.0E-3" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	fmt.Fprintf(second, "HOR:MAIN:SCALE?\n")
	line, err := bufio.NewReader(second).ReadString('\n')
	if err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	if got := strings.TrimRight(line, "\r\n"); got != "1.0E-3" {
		t.Errorf("reply = %q, want 1.0E-3", got)
	}

	if server.State() != state {
		t.Error("State() should return the configured state")
	}
}

// TestServerConnectionCount verifies connections register and
// unregister.
func TestServerConnectionCount(t *testing.T) {
	server := startServer(t, simulator.ServerConfig{})

	if server.ConnectionCount() != 0 {
		t.Fatalf("ConnectionCount = %d, want 0", server.ConnectionCount())
	}

	conn, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	waitForConnections(t, server, 1)

	conn.Close()
	waitForConnections(t, server, 0)
}

// TestServerTraceEvents verifies the connection lifecycle and each
// handled line produce trace events sharing one connection ID.
func TestServerTraceEvents(t *testing.T) {
	logger := &captureLogger{}
	server := startServer(t, simulator.ServerConfig{Trace: logger})

	conn, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	reader := bufio.NewReader(conn)

	fmt.Fprintf(conn, "CH1:SCALE 2.0E-1\n")
	fmt.Fprintf(conn, "CH1:SCALE?\n")
	if _, err := reader.ReadString('\n'); err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	conn.Close()
	waitForConnections(t, server, 0)

	// The close event may trail the unregister.
	var events []trace.Event
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events = logger.snapshot()
		if len(events) >= 4 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	wantKinds := []trace.Kind{trace.KindConnect, trace.KindCommand, trace.KindQuery, trace.KindClose}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Errorf("events[%d].Kind = %v, want %v", i, events[i].Kind, want)
		}
	}

	if events[1].Command != "CH1:SCALE 2.0E-1" {
		t.Errorf("command event = %q, want CH1:SCALE 2.0E-1", events[1].Command)
	}
	if events[2].Command != "CH1:SCALE?" || events[2].Response != "2.0E-1" {
		t.Errorf("query event = %q / %q, want CH1:SCALE? / 2.0E-1", events[2].Command, events[2].Response)
	}

	id := events[0].ConnectionID
	if id == "" {
		t.Fatal("connection ID is empty")
	}
	for i, e := range events {
		if e.ConnectionID != id {
			t.Errorf("events[%d].ConnectionID = %q, want %q", i, e.ConnectionID, id)
		}
	}
}

// TestServerTransportClient verifies the real TCP client talks to the
// simulator end to end.
func TestServerTransportClient(t *testing.T) {
	server := startServer(t, simulator.ServerConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := transport.Dial(ctx, transport.Config{
		Address: server.Addr().String(),
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer client.Close()

	if err := client.Send(ctx, "CH2:SCALE 5.0E-2"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	reply, err := client.Query(ctx, "CH2:SCALE?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if reply != "5.0E-2" {
		t.Errorf("Query(CH2:SCALE?) = %q, want 5.0E-2", reply)
	}
}

// TestServerStartStop verifies lifecycle edges.
func TestServerStartStop(t *testing.T) {
	server := simulator.NewServer(simulator.ServerConfig{Address: "127.0.0.1:0"})

	if server.Addr() != nil {
		t.Error("Addr should be nil before Start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Start(ctx); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	if err := server.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}

	if err := server.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := server.Stop(); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}
