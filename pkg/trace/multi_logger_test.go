package trace

import (
	"sync"
	"testing"
	"time"
)

// captureLogger records events in memory for tests.
type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureLogger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}
	multi := NewMultiLogger(a, b)

	event := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-1",
		Kind:         KindQuery,
		Command:      "HORIZONTAL:MAIN:SCALE?",
		Response:     "5.000000E-04",
	}
	multi.Log(event)

	if a.count() != 1 {
		t.Errorf("first logger got %d events, want 1", a.count())
	}
	if b.count() != 1 {
		t.Errorf("second logger got %d events, want 1", b.count())
	}
	if a.events[0].Command != event.Command {
		t.Errorf("first logger Command = %q, want %q", a.events[0].Command, event.Command)
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	multi := NewMultiLogger()
	// Must not panic with no loggers configured.
	multi.Log(Event{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindConnect})
}
