package simulator

import (
	"context"
	"fmt"

	"github.com/scopesync/scopesync-go/pkg/transport"
)

// Loopback is an in-memory transport.Client wired straight to a State,
// so the settings engine can run against the simulator without a TCP
// server in between.
type Loopback struct {
	state *State
}

// Compile-time interface satisfaction check.
var _ transport.Client = (*Loopback)(nil)

// NewLoopback creates a loopback client over state. A nil state gets a
// fresh one at factory defaults.
func NewLoopback(state *State) *Loopback {
	if state == nil {
		state = NewState()
	}
	return &Loopback{state: state}
}

// State returns the backing state machine.
func (l *Loopback) State() *State {
	return l.state
}

// Send transmits a set command. No reply is read.
func (l *Loopback) Send(ctx context.Context, cmd string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	l.state.Handle(cmd)
	return nil
}

// Query transmits a command and returns the reply line. A query the
// instrument does not answer reports transport.ErrTimeout, matching
// what a socket read against the real instrument would do.
func (l *Loopback) Query(ctx context.Context, cmd string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("query %q: %w", cmd, err)
	}
	reply, ok := l.state.Handle(cmd)
	if !ok {
		return "", fmt.Errorf("query %q: %w", cmd, transport.ErrTimeout)
	}
	return reply, nil
}

// Close is a no-op.
func (l *Loopback) Close() error {
	return nil
}
