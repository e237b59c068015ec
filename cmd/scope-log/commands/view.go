// Package commands implements the scope-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/scopesync/scopesync-go/pkg/trace"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Kind       *trace.Kind
	FailedOnly bool
}

// formatEvent writes a human-readable representation of the event to w.
// Exchanges are one line each: timestamp [conn:id] KIND command, with
// the reply and round-trip time appended for queries. Failures get an
// indented error line.
func formatEvent(w io.Writer, event trace.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)

	switch event.Kind {
	case trace.KindConnect, trace.KindClose:
		fmt.Fprintf(w, "%s [conn:%s] %-7s %s\n", ts, connID, event.Kind, event.RemoteAddr)
	default:
		fmt.Fprintf(w, "%s [conn:%s] %-7s %s", ts, connID, event.Kind, event.Command)
		if event.Kind == trace.KindQuery && !event.Failed() {
			fmt.Fprintf(w, " -> %s", event.Response)
		}
		if event.Elapsed > 0 {
			fmt.Fprintf(w, " (%s)", formatDuration(event.Elapsed))
		}
		fmt.Fprintln(w)
	}

	if event.Failed() {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// filterEvents returns events matching the filter criteria.
func filterEvents(events []trace.Event, filter ViewFilter) []trace.Event {
	var result []trace.Event
	for _, e := range events {
		if filter.Kind != nil && e.Kind != *filter.Kind {
			continue
		}
		if filter.FailedOnly && !e.Failed() {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ParseKindFlag parses a kind string from a command-line flag (case-insensitive).
func ParseKindFlag(s string) (trace.Kind, error) {
	return parseKind(s)
}

// parseKind parses a kind string (case-insensitive).
func parseKind(s string) (trace.Kind, error) {
	switch strings.ToLower(s) {
	case "command":
		return trace.KindCommand, nil
	case "query":
		return trace.KindQuery, nil
	case "connect":
		return trace.KindConnect, nil
	case "close":
		return trace.KindClose, nil
	default:
		return 0, fmt.Errorf("invalid kind: %s (must be command, query, connect, or close)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Apply filter
		if filter.Kind != nil && event.Kind != *filter.Kind {
			continue
		}
		if filter.FailedOnly && !event.Failed() {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
