package scope

import (
	"context"
	"fmt"
	"strings"

	"github.com/scopesync/scopesync-go/pkg/settings"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// Topology of the instrument: fixed at construction, immutable after.
const (
	// NumChannels is the number of vertical input channels.
	NumChannels = 4

	// NumMeasurements is the number of displayed measurement slots.
	NumMeasurements = 4
)

// Instrument aggregates every settings group of one oscilloscope behind
// a single injected transport. The transport is a back-reference, not
// owned: closing it is the caller's job.
//
// A single goroutine per Instrument is assumed; see the package
// documentation for the concurrency model.
type Instrument struct {
	tr transport.Client

	channels     [NumChannels]*Channel
	trigger      *Trigger
	horizontal   *Horizontal
	immediate    *Measurement
	measurements [NumMeasurements]*Measurement
}

// New builds the fixed group topology over the given transport. No I/O
// happens until the first Read, Write or side command.
func New(tr transport.Client) *Instrument {
	inst := &Instrument{
		tr:         tr,
		trigger:    NewTrigger(tr),
		horizontal: NewHorizontal(tr, TimebaseMain),
		immediate:  NewMeasurementImmediate(tr),
	}
	for i := range inst.channels {
		inst.channels[i] = NewChannel(tr, i)
	}
	for i := range inst.measurements {
		inst.measurements[i] = NewMeasurement(tr, i)
	}
	return inst
}

// Channel returns the vertical channel with the given index, 0 to
// NumChannels-1.
func (s *Instrument) Channel(i int) *Channel {
	return s.channels[i]
}

// Trigger returns the main trigger subsystem.
func (s *Instrument) Trigger() *Trigger {
	return s.trigger
}

// HorizontalMain returns the main horizontal timebase.
func (s *Instrument) HorizontalMain() *Horizontal {
	return s.horizontal
}

// MeasurementImmediate returns the immediate measurement.
func (s *Instrument) MeasurementImmediate() *Measurement {
	return s.immediate
}

// Measurement returns the displayed measurement slot with the given
// index, 0 to NumMeasurements-1.
func (s *Instrument) Measurement(i int) *Measurement {
	return s.measurements[i]
}

// groups lists every owned settings group in the fixed traversal order
// used by ReadAll, WriteAll, Dump and Load.
func (s *Instrument) groups() []*settings.Group {
	gs := make([]*settings.Group, 0, 2+NumChannels+NumMeasurements+1)
	gs = append(gs, s.trigger.Group, s.horizontal.Group)
	for _, c := range s.channels {
		gs = append(gs, c.Group)
	}
	for _, m := range s.measurements {
		gs = append(gs, m.Group)
	}
	return append(gs, s.immediate.Group)
}

// groupKey is the nested-mapping key a group dumps under.
func groupKey(g *settings.Group) string {
	if g.Index() == settings.NoIndex {
		return g.Name()
	}
	return fmt.Sprintf("%s_%d", g.Name(), g.Index())
}

// ReadAll refreshes every group from the instrument in the fixed
// traversal order. Fail-fast: the first failing group aborts the walk,
// leaving groups read so far refreshed and the rest untouched.
func (s *Instrument) ReadAll(ctx context.Context) error {
	for _, g := range s.groups() {
		if err := g.Read(ctx); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll pushes every populated field of every group to the
// instrument in the fixed traversal order. Fail-fast, same as ReadAll:
// groups written before a failure stay applied.
func (s *Instrument) WriteAll(ctx context.Context) error {
	for _, g := range s.groups() {
		if err := g.Write(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Dump composes every group's dump under its key into one nested
// mapping. No I/O.
func (s *Instrument) Dump() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, g := range s.groups() {
		out[groupKey(g)] = g.Dump()
	}
	return out
}

// Load distributes each sub-mapping to the group owning its key.
// Unknown top-level keys are ignored, like unknown field keys within a
// group. Each group loads atomically; a validation failure aborts the
// walk and leaves that group and all later groups untouched. No I/O.
func (s *Instrument) Load(m map[string]map[string]any) error {
	for _, g := range s.groups() {
		sub, ok := m[groupKey(g)]
		if !ok {
			continue
		}
		if err := g.Load(sub); err != nil {
			return err
		}
	}
	return nil
}

// Identify queries the *IDN? identification string, returned verbatim
// apart from surrounding whitespace.
func (s *Instrument) Identify(ctx context.Context) (string, error) {
	resp, err := s.tr.Query(ctx, "*IDN?")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}
