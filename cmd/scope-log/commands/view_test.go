package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/scopesync/scopesync-go/pkg/trace"
)

func TestFormatQueryEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := trace.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
		Kind:         trace.KindQuery,
		Command:      "CH1:COUPLING?",
		Response:     "DC",
		Elapsed:      1234 * time.Microsecond,
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	// Check timestamp format
	if !strings.Contains(output, "2026-01-28T10:15:32.123456Z") {
		t.Errorf("expected microsecond timestamp, got: %s", output)
	}

	// Check connection ID (shortened)
	if !strings.Contains(output, "[conn:abc12345]") {
		t.Errorf("expected shortened connection ID, got: %s", output)
	}

	// Check kind
	if !strings.Contains(output, "QUERY") {
		t.Errorf("expected QUERY kind, got: %s", output)
	}

	// Check command and reply
	if !strings.Contains(output, "CH1:COUPLING? -> DC") {
		t.Errorf("expected command with reply, got: %s", output)
	}

	// Check round-trip time
	if !strings.Contains(output, "(1.234ms)") {
		t.Errorf("expected round-trip time, got: %s", output)
	}
}

func TestFormatCommandEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	event := trace.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
		Kind:         trace.KindCommand,
		Command:      "CH1:SCALE 2.0E-1",
		Elapsed:      800 * time.Microsecond,
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "COMMAND") {
		t.Errorf("expected COMMAND kind, got: %s", output)
	}
	if !strings.Contains(output, "CH1:SCALE 2.0E-1") {
		t.Errorf("expected command text, got: %s", output)
	}

	// Commands have no reply
	if strings.Contains(output, "->") {
		t.Errorf("expected no reply arrow for a command, got: %s", output)
	}
}

func TestFormatConnectEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 30, 0, time.UTC)
	event := trace.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
		Kind:         trace.KindConnect,
		RemoteAddr:   "192.168.1.50:5025",
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "CONNECT") {
		t.Errorf("expected CONNECT kind, got: %s", output)
	}
	if !strings.Contains(output, "192.168.1.50:5025") {
		t.Errorf("expected remote address, got: %s", output)
	}
}

func TestFormatFailedQueryEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	event := trace.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
		Kind:         trace.KindQuery,
		Command:      "BOGUS:PATH?",
		Error:        "query timeout",
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "BOGUS:PATH?") {
		t.Errorf("expected command text, got: %s", output)
	}
	if !strings.Contains(output, "Error: query timeout") {
		t.Errorf("expected error line, got: %s", output)
	}

	// No reply arrow when the query failed
	if strings.Contains(output, "->") {
		t.Errorf("expected no reply arrow for a failed query, got: %s", output)
	}
}

func TestViewFilterByKind(t *testing.T) {
	events := []trace.Event{
		{Kind: trace.KindCommand},
		{Kind: trace.KindQuery},
		{Kind: trace.KindConnect},
	}

	query := trace.KindQuery
	filter := ViewFilter{Kind: &query}

	filtered := filterEvents(events, filter)
	if len(filtered) != 1 {
		t.Errorf("expected 1 event, got %d", len(filtered))
	}
	if filtered[0].Kind != trace.KindQuery {
		t.Errorf("expected query kind, got %v", filtered[0].Kind)
	}
}

func TestViewFilterFailedOnly(t *testing.T) {
	events := []trace.Event{
		{Kind: trace.KindQuery, Response: "DC"},
		{Kind: trace.KindQuery, Error: "query timeout"},
		{Kind: trace.KindCommand},
	}

	filter := ViewFilter{FailedOnly: true}

	filtered := filterEvents(events, filter)
	if len(filtered) != 1 {
		t.Errorf("expected 1 event, got %d", len(filtered))
	}
	if filtered[0].Error != "query timeout" {
		t.Errorf("expected the failed event, got %+v", filtered[0])
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected trace.Kind
		wantErr  bool
	}{
		{"command", trace.KindCommand, false},
		{"COMMAND", trace.KindCommand, false},
		{"query", trace.KindQuery, false},
		{"QUERY", trace.KindQuery, false},
		{"connect", trace.KindConnect, false},
		{"close", trace.KindClose, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		got, err := parseKind(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseKind(%q) expected error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("parseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("parseKind(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{250 * time.Microsecond, "250.000us"},
		{1234 * time.Microsecond, "1.234ms"},
		{2500 * time.Millisecond, "2.500s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}
