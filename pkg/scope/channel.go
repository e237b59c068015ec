package scope

import (
	"context"
	"fmt"

	"github.com/scopesync/scopesync-go/pkg/scpi"
	"github.com/scopesync/scopesync-go/pkg/settings"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// channelFields is the per-channel schema, in instrument read order.
func channelFields() []settings.Field {
	return []settings.Field{
		{Name: "bw_filter", Command: "BANDWIDTH", Codec: scpi.BoolCodec{}},
		{Name: "coupling", Command: "COUPLING", Codec: couplingCodec},
		{Name: "invert", Command: "INVERT", Codec: scpi.BoolCodec{}},
		{Name: "position", Command: "POS", Codec: scpi.FloatCodec{Unit: "V"}},
		{Name: "attenuation", Command: "PROBE", Codec: scpi.IntCodec{}},
		{Name: "scale", Command: "SCALE", Codec: scpi.FloatCodec{Unit: "V"}},
	}
}

// Channel is one vertical input channel. Index 0 to 3 addresses CH1 to
// CH4 on the wire.
type Channel struct {
	*settings.Group
	tr transport.Client
}

// NewChannel creates the settings group for the channel with the given
// 0-based index.
func NewChannel(tr transport.Client, index int) *Channel {
	return &Channel{
		Group: settings.NewIndexedGroup("channel", "CH", index, channelFields(), tr),
		tr:    tr,
	}
}

// Enable turns the channel display on. Fire-and-forget: the display
// state is not part of the settings mapping.
func (c *Channel) Enable(ctx context.Context) error {
	return c.tr.Send(ctx, fmt.Sprintf("SELECT:%s ON", c.Prefix()))
}

// Disable turns the channel display off.
func (c *Channel) Disable(ctx context.Context) error {
	return c.tr.Send(ctx, fmt.Sprintf("SELECT:%s OFF", c.Prefix()))
}

// Displayed reports whether the channel is currently shown on screen.
func (c *Channel) Displayed(ctx context.Context) (bool, error) {
	resp, err := c.tr.Query(ctx, fmt.Sprintf("SELECT:%s?", c.Prefix()))
	if err != nil {
		return false, err
	}
	v, err := scpi.BoolCodec{}.Decode(scpi.Payload(resp))
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// SetBandwidthFilter enables or disables the 20 MHz bandwidth limit.
func (c *Channel) SetBandwidthFilter(on bool) error {
	return c.Set("bw_filter", on)
}

// BandwidthFilter reports the cached bandwidth limit state. ok is false
// until Read or Load has populated the field.
func (c *Channel) BandwidthFilter() (on, ok bool) {
	v, ok := c.Get("bw_filter")
	if !ok {
		return false, false
	}
	b, _ := v.(bool)
	return b, true
}

// SetCoupling selects the input coupling.
func (c *Channel) SetCoupling(cp Coupling) error {
	return c.Set("coupling", cp)
}

// Coupling reports the cached input coupling.
func (c *Channel) Coupling() (Coupling, bool) {
	v, ok := c.Get("coupling")
	if !ok {
		return "", false
	}
	cp, _ := v.(Coupling)
	return cp, true
}

// SetInvert enables or disables waveform inversion.
func (c *Channel) SetInvert(on bool) error {
	return c.Set("invert", on)
}

// Invert reports the cached inversion state.
func (c *Channel) Invert() (on, ok bool) {
	v, ok := c.Get("invert")
	if !ok {
		return false, false
	}
	b, _ := v.(bool)
	return b, true
}

// SetPosition sets the vertical position in volts.
func (c *Channel) SetPosition(volts float64) error {
	return c.Set("position", volts)
}

// Position reports the cached vertical position in volts.
func (c *Channel) Position() (float64, bool) {
	v, ok := c.Get("position")
	if !ok {
		return 0, false
	}
	f, _ := v.(float64)
	return f, true
}

// SetAttenuation sets the probe attenuation factor (1, 10, 20, 50, 100,
// 500 or 1000). The instrument rejects factors it does not support.
func (c *Channel) SetAttenuation(factor int) error {
	return c.Set("attenuation", factor)
}

// Attenuation reports the cached probe attenuation factor.
func (c *Channel) Attenuation() (int64, bool) {
	v, ok := c.Get("attenuation")
	if !ok {
		return 0, false
	}
	n, _ := v.(int64)
	return n, true
}

// SetScale sets the vertical scale in volts per division.
func (c *Channel) SetScale(voltsPerDiv float64) error {
	return c.Set("scale", voltsPerDiv)
}

// Scale reports the cached vertical scale in volts per division.
func (c *Channel) Scale() (float64, bool) {
	v, ok := c.Get("scale")
	if !ok {
		return 0, false
	}
	f, _ := v.(float64)
	return f, true
}
