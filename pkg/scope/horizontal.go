package scope

import (
	"strings"

	"github.com/scopesync/scopesync-go/pkg/scpi"
	"github.com/scopesync/scopesync-go/pkg/settings"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// Timebase identifiers accepted by NewHorizontal.
const (
	TimebaseMain  = "MAIN"
	TimebaseDelay = "DELAY"
)

// horizontalFields is the per-timebase schema, in instrument read order.
func horizontalFields() []settings.Field {
	return []settings.Field{
		{Name: "pos", Command: "POS", Codec: scpi.FloatCodec{Unit: "s"}},
		{Name: "scale", Command: "SCALE", Codec: scpi.FloatCodec{Unit: "s"}},
	}
}

// Horizontal is one horizontal timebase (wire prefix HOR:<id>). The
// aggregator owns the MAIN timebase; the DELAY timebase can be
// addressed standalone.
type Horizontal struct {
	*settings.Group
}

// NewHorizontal creates the settings group for the given timebase,
// TimebaseMain or TimebaseDelay.
func NewHorizontal(tr transport.Client, timebase string) *Horizontal {
	name := "horizontal_" + strings.ToLower(timebase)
	return &Horizontal{
		Group: settings.NewGroup(name, "HOR:"+timebase, horizontalFields(), tr),
	}
}

// SetPosition sets the horizontal position in seconds.
func (h *Horizontal) SetPosition(seconds float64) error {
	return h.Set("pos", seconds)
}

// Position reports the cached horizontal position in seconds.
func (h *Horizontal) Position() (float64, bool) {
	v, ok := h.Get("pos")
	if !ok {
		return 0, false
	}
	f, _ := v.(float64)
	return f, true
}

// SetScale sets the timebase scale in seconds per division.
func (h *Horizontal) SetScale(secondsPerDiv float64) error {
	return h.Set("scale", secondsPerDiv)
}

// Scale reports the cached timebase scale in seconds per division.
func (h *Horizontal) Scale() (float64, bool) {
	v, ok := h.Get("scale")
	if !ok {
		return 0, false
	}
	f, _ := v.(float64)
	return f, true
}
