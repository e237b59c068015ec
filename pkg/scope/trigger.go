package scope

import (
	"context"

	"github.com/scopesync/scopesync-go/pkg/scpi"
	"github.com/scopesync/scopesync-go/pkg/settings"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// triggerFields is the main trigger schema, in instrument read order.
// Video and pulse trigger sub-settings are not modeled; only the edge
// trigger has dedicated fields.
func triggerFields() []settings.Field {
	return []settings.Field{
		{Name: "type", Command: "TYPE", Codec: triggerTypeCodec},
		{Name: "mode", Command: "MODE", Codec: triggerModeCodec},
		{Name: "level", Command: "LEVEL", Codec: scpi.FloatCodec{Unit: "V", Compact: true}},
		{Name: "edge_coupling", Command: "EDGE:COUPLING", Codec: edgeCouplingCodec},
		{Name: "edge_slope", Command: "EDGE:SLOPE", Codec: edgeSlopeCodec},
		{Name: "edge_source", Command: "EDGE:SOURCE", Codec: edgeSourceCodec},
	}
}

// Trigger is the main trigger subsystem (wire prefix TRIG:MAIN).
type Trigger struct {
	*settings.Group
	tr transport.Client
}

// NewTrigger creates the settings group for the main trigger.
func NewTrigger(tr transport.Client) *Trigger {
	return &Trigger{
		Group: settings.NewGroup("trigger", "TRIG:MAIN", triggerFields(), tr),
		tr:    tr,
	}
}

// Frequency reads the trigger frequency counter in hertz.
func (t *Trigger) Frequency(ctx context.Context) (float64, error) {
	resp, err := t.tr.Query(ctx, "TRIG:MAIN:FREQ?")
	if err != nil {
		return 0, err
	}
	v, err := scpi.FloatCodec{Unit: "Hz"}.Decode(scpi.Payload(resp))
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// State reads the acquisition state of the trigger subsystem.
func (t *Trigger) State(ctx context.Context) (TriggerState, error) {
	resp, err := t.tr.Query(ctx, "TRIG:MAIN:STATE?")
	if err != nil {
		return "", err
	}
	v, err := triggerStateCodec.Decode(scpi.Payload(resp))
	if err != nil {
		return "", err
	}
	return v.(TriggerState), nil
}

// SetType selects the trigger subsystem in use.
func (t *Trigger) SetType(tt TriggerType) error {
	return t.Set("type", tt)
}

// Type reports the cached trigger type.
func (t *Trigger) Type() (TriggerType, bool) {
	v, ok := t.Get("type")
	if !ok {
		return "", false
	}
	tt, _ := v.(TriggerType)
	return tt, true
}

// SetMode selects auto or normal trigger mode.
func (t *Trigger) SetMode(m TriggerMode) error {
	return t.Set("mode", m)
}

// Mode reports the cached trigger mode.
func (t *Trigger) Mode() (TriggerMode, bool) {
	v, ok := t.Get("mode")
	if !ok {
		return "", false
	}
	m, _ := v.(TriggerMode)
	return m, true
}

// SetLevel sets the trigger level in volts.
func (t *Trigger) SetLevel(volts float64) error {
	return t.Set("level", volts)
}

// Level reports the cached trigger level in volts.
func (t *Trigger) Level() (float64, bool) {
	v, ok := t.Get("level")
	if !ok {
		return 0, false
	}
	f, _ := v.(float64)
	return f, true
}

// SetEdgeCoupling selects the edge trigger coupling.
func (t *Trigger) SetEdgeCoupling(c EdgeCoupling) error {
	return t.Set("edge_coupling", c)
}

// EdgeCoupling reports the cached edge trigger coupling.
func (t *Trigger) EdgeCoupling() (EdgeCoupling, bool) {
	v, ok := t.Get("edge_coupling")
	if !ok {
		return "", false
	}
	c, _ := v.(EdgeCoupling)
	return c, true
}

// SetEdgeSlope selects the edge the trigger arms on.
func (t *Trigger) SetEdgeSlope(s EdgeSlope) error {
	return t.Set("edge_slope", s)
}

// EdgeSlope reports the cached edge trigger slope.
func (t *Trigger) EdgeSlope() (EdgeSlope, bool) {
	v, ok := t.Get("edge_slope")
	if !ok {
		return "", false
	}
	s, _ := v.(EdgeSlope)
	return s, true
}

// SetEdgeSource selects the signal the edge trigger watches.
func (t *Trigger) SetEdgeSource(s EdgeSource) error {
	return t.Set("edge_source", s)
}

// EdgeSource reports the cached edge trigger source.
func (t *Trigger) EdgeSource() (EdgeSource, bool) {
	v, ok := t.Get("edge_source")
	if !ok {
		return "", false
	}
	s, _ := v.(EdgeSource)
	return s, true
}
