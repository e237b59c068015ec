package scope

import (
	"context"

	"github.com/scopesync/scopesync-go/pkg/scpi"
	"github.com/scopesync/scopesync-go/pkg/settings"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// measurementFields is the per-slot schema, in instrument read order.
func measurementFields() []settings.Field {
	return []settings.Field{
		{Name: "source", Command: "SOURCE", Codec: measurementSourceCodec},
		{Name: "type", Command: "TYPE", Codec: measurementTypeCodec},
	}
}

// Measurement is one automatic measurement. Slot indices 0 to 3 address
// MEAS1 to MEAS4 on the wire; the immediate measurement (IMM) is not
// shown on screen and updates faster.
type Measurement struct {
	*settings.Group
	tr transport.Client
}

// NewMeasurement creates the settings group for the displayed
// measurement slot with the given 0-based index.
func NewMeasurement(tr transport.Client, slot int) *Measurement {
	return &Measurement{
		Group: settings.NewIndexedGroup("measurement", "MEASU:MEAS", slot, measurementFields(), tr),
		tr:    tr,
	}
}

// NewMeasurementImmediate creates the settings group for the immediate
// measurement.
func NewMeasurementImmediate(tr transport.Client) *Measurement {
	return &Measurement{
		Group: settings.NewGroup("measurement_immediate", "MEASU:IMM", measurementFields(), tr),
		tr:    tr,
	}
}

// Value reads the current measurement result. The unit depends on the
// configured measurement type; see Unit.
func (m *Measurement) Value(ctx context.Context) (float64, error) {
	resp, err := m.tr.Query(ctx, m.Prefix()+":VALUE?")
	if err != nil {
		return 0, err
	}
	v, err := scpi.FloatCodec{}.Decode(scpi.Payload(resp))
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// Unit reads the unit of the current measurement result. The instrument
// answers with a quoted token; the payload extraction unquotes it.
func (m *Measurement) Unit(ctx context.Context) (MeasurementUnit, error) {
	resp, err := m.tr.Query(ctx, m.Prefix()+":UNIT?")
	if err != nil {
		return "", err
	}
	v, err := measurementUnitCodec.Decode(scpi.Payload(resp))
	if err != nil {
		return "", err
	}
	return v.(MeasurementUnit), nil
}

// SetSource selects the waveform the measurement operates on.
func (m *Measurement) SetSource(s MeasurementSource) error {
	return m.Set("source", s)
}

// Source reports the cached measurement source.
func (m *Measurement) Source() (MeasurementSource, bool) {
	v, ok := m.Get("source")
	if !ok {
		return "", false
	}
	s, _ := v.(MeasurementSource)
	return s, true
}

// SetType selects the automatic measurement to compute.
func (m *Measurement) SetType(t MeasurementType) error {
	return m.Set("type", t)
}

// Type reports the cached measurement type.
func (m *Measurement) Type() (MeasurementType, bool) {
	v, ok := m.Get("type")
	if !ok {
		return "", false
	}
	t, _ := v.(MeasurementType)
	return t, true
}
