package trace

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sclog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var events []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindConnect},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindQuery, Command: "*IDN?", Response: "TEKTRONIX,TDS 2024B,0,CF:91.1CT"},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindClose},
	}

	path := createTestTraceFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}

	// Verify order
	if read[0].Kind != KindConnect {
		t.Errorf("first event Kind = %v, want CONNECT", read[0].Kind)
	}
	if read[1].Command != "*IDN?" {
		t.Errorf("second event Command = %q, want *IDN?", read[1].Command)
	}
	if read[2].Kind != KindClose {
		t.Errorf("last event Kind = %v, want CLOSE", read[2].Kind)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestTraceFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderFilterByConnectionID(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), ConnectionID: "conn-A", Kind: KindCommand, Command: "CH1:COUPLING AC"},
		{Timestamp: time.Now(), ConnectionID: "conn-B", Kind: KindCommand, Command: "CH2:COUPLING DC"},
		{Timestamp: time.Now(), ConnectionID: "conn-A", Kind: KindCommand, Command: "CH1:SCALE 1.000000E+00"},
	}

	path := createTestTraceFile(t, events)

	reader, err := NewFilteredReader(path, Filter{ConnectionID: "conn-A"})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}
	for _, e := range read {
		if e.ConnectionID != "conn-A" {
			t.Errorf("event ConnectionID = %q, want conn-A", e.ConnectionID)
		}
	}
}

func TestReaderFilterByKind(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindConnect},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindCommand, Command: "SELECT:CH1 ON"},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindQuery, Command: "SELECT:CH1?", Response: "1"},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindQuery, Command: "CH1:PROBE?", Response: "1.0E1"},
	}

	path := createTestTraceFile(t, events)

	kind := KindQuery
	reader, err := NewFilteredReader(path, Filter{Kind: &kind})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}
	for _, e := range read {
		if e.Kind != KindQuery {
			t.Errorf("event Kind = %v, want QUERY", e.Kind)
		}
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, ConnectionID: "conn-1", Kind: KindCommand},
		{Timestamp: base.Add(10 * time.Second), ConnectionID: "conn-1", Kind: KindCommand},
		{Timestamp: base.Add(20 * time.Second), ConnectionID: "conn-1", Kind: KindCommand},
	}

	path := createTestTraceFile(t, events)

	start := base.Add(5 * time.Second)
	end := base.Add(15 * time.Second)
	reader, err := NewFilteredReader(path, Filter{TimeStart: &start, TimeEnd: &end})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 1 {
		t.Fatalf("got %d events, want 1", len(read))
	}
	if !read[0].Timestamp.Equal(base.Add(10 * time.Second)) {
		t.Errorf("event Timestamp = %v, want %v", read[0].Timestamp, base.Add(10*time.Second))
	}
}

func TestReaderFilterFailedOnly(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindQuery, Command: "CH1:SCALE?", Response: "2.000000E-01"},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindQuery, Command: "CH2:SCALE?", Error: "read: i/o timeout"},
		{Timestamp: time.Now(), ConnectionID: "conn-1", Kind: KindCommand, Command: "CH3:INVERT OFF"},
	}

	path := createTestTraceFile(t, events)

	reader, err := NewFilteredReader(path, Filter{FailedOnly: true})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 1 {
		t.Fatalf("got %d events, want 1", len(read))
	}
	if read[0].Command != "CH2:SCALE?" {
		t.Errorf("event Command = %q, want CH2:SCALE?", read[0].Command)
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.sclog"))
	if err == nil {
		t.Error("NewReader on missing file should fail")
	}
}
