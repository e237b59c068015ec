package settings

import (
	"context"
	"fmt"

	"github.com/scopesync/scopesync-go/pkg/scpi"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// NoIndex marks a singleton group that carries no wire index.
const NoIndex = -1

// Group binds a field table to one instrument subsystem instance. It
// builds command lines from the group's prefix, keeps the in-memory
// value map, and moves values over the injected transport.
type Group struct {
	name   string
	index  int
	prefix string
	fields []Field
	values map[string]any
	tr     transport.Client
}

// NewGroup creates a singleton group with the given command prefix
// (e.g. "TRIGGER:MAIN").
func NewGroup(name, prefix string, fields []Field, tr transport.Client) *Group {
	return &Group{
		name:   name,
		index:  NoIndex,
		prefix: prefix,
		fields: fields,
		values: make(map[string]any, len(fields)),
		tr:     tr,
	}
}

// NewIndexedGroup creates a group addressing instance index (0-based)
// of a numbered subsystem. The wire carries index+1: channel 0 talks
// to CH1.
func NewIndexedGroup(name, baseToken string, index int, fields []Field, tr transport.Client) *Group {
	return &Group{
		name:   name,
		index:  index,
		prefix: fmt.Sprintf("%s%d", baseToken, index+1),
		fields: fields,
		values: make(map[string]any, len(fields)),
		tr:     tr,
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Index returns the group's 0-based instance index, or NoIndex for
// singleton groups.
func (g *Group) Index() int {
	return g.index
}

// Prefix returns the group's command prefix as it appears on the wire.
func (g *Group) Prefix() string {
	return g.prefix
}

// Fields returns the group's field table in declaration order.
func (g *Group) Fields() []Field {
	out := make([]Field, len(g.fields))
	copy(out, g.fields)
	return out
}

// Read queries every field in declaration order and stores the decoded
// values. On the first failure it stops: earlier fields keep their
// fresh values, later fields keep their prior ones.
func (g *Group) Read(ctx context.Context) error {
	for _, f := range g.fields {
		reply, err := g.tr.Query(ctx, g.command(f)+"?")
		if err != nil {
			return &FieldError{Group: g.name, Index: g.index, Field: f.Name, Op: "read", Err: err}
		}
		value, err := f.Codec.Decode(scpi.Payload(reply))
		if err != nil {
			return &FieldError{Group: g.name, Index: g.index, Field: f.Name, Op: "read", Err: err}
		}
		g.values[f.Name] = value
	}
	return nil
}

// Write sends one set command per populated field, in declaration
// order. Unpopulated fields are skipped. On the first failure it
// stops; commands already sent stay sent. An encoding failure surfaces
// before the failing field's command goes out.
func (g *Group) Write(ctx context.Context) error {
	for _, f := range g.fields {
		value, ok := g.values[f.Name]
		if !ok {
			continue
		}
		token, err := f.Codec.Encode(value)
		if err != nil {
			return &FieldError{Group: g.name, Index: g.index, Field: f.Name, Op: "write", Err: err}
		}
		if err := g.tr.Send(ctx, g.command(f)+" "+token); err != nil {
			return &FieldError{Group: g.name, Index: g.index, Field: f.Name, Op: "write", Err: err}
		}
	}
	return nil
}

// Dump returns a copy of the populated values keyed by field name.
// No instrument I/O happens.
func (g *Group) Dump() map[string]any {
	out := make(map[string]any, len(g.values))
	for k, v := range g.values {
		out[k] = v
	}
	return out
}

// Load stores values from a dump-shaped mapping. Every known key is
// validated through its codec first; only when all pass is the group
// updated, so a bad value leaves the group exactly as it was. Keys
// naming no field are ignored. No instrument I/O happens.
func (g *Group) Load(m map[string]any) error {
	staged := make(map[string]any, len(m))
	for _, f := range g.fields {
		raw, ok := m[f.Name]
		if !ok {
			continue
		}
		value, err := normalize(f, raw)
		if err != nil {
			return &FieldError{Group: g.name, Index: g.index, Field: f.Name, Op: "load", Err: err}
		}
		staged[f.Name] = value
	}
	for k, v := range staged {
		g.values[k] = v
	}
	return nil
}

// Set assigns one field by name, validating immediately. The stored
// value is the canonical domain value (enum casing fixed, numerics
// widened).
func (g *Group) Set(name string, value any) error {
	f, ok := g.field(name)
	if !ok {
		return &FieldError{Group: g.name, Index: g.index, Field: name, Op: "set",
			Err: fmt.Errorf("%w: unknown field", ErrValidation)}
	}
	v, err := normalize(f, value)
	if err != nil {
		return &FieldError{Group: g.name, Index: g.index, Field: name, Op: "set", Err: err}
	}
	g.values[name] = v
	return nil
}

// Put assigns one field by name without domain validation; the value
// is checked by the field's codec at Write time instead. This is the
// raw assignment path behind typed setters: a typed constant is
// already a domain member, and a forged value surfaces as an encoding
// error at write, before anything reaches the instrument.
func (g *Group) Put(name string, value any) error {
	if _, ok := g.field(name); !ok {
		return &FieldError{Group: g.name, Index: g.index, Field: name, Op: "set",
			Err: fmt.Errorf("%w: unknown field", ErrValidation)}
	}
	g.values[name] = value
	return nil
}

// Get returns a field's value. ok is false until the field has been
// populated.
func (g *Group) Get(name string) (any, bool) {
	v, ok := g.values[name]
	return v, ok
}

// command builds the full command token for a field.
func (g *Group) command(f Field) string {
	return g.prefix + ":" + f.Command
}

// field looks a field up by name.
func (g *Group) field(name string) (Field, bool) {
	for _, f := range g.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// normalize checks raw against the field's domain and returns the
// canonical domain value.
func normalize(f Field, raw any) (any, error) {
	token, err := f.Codec.Encode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	value, err := f.Codec.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return value, nil
}
