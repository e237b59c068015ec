package scpi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Codec errors.
var (
	// ErrEncoding indicates a value outside the codec's declared domain.
	ErrEncoding = errors.New("value not encodable")

	// ErrDecoding indicates a token with no known wire representation.
	ErrDecoding = errors.New("token not decodable")
)

// Codec converts between a domain value and its wire token.
// Implementations must be pure: no I/O, no retained state, so they are
// testable without an instrument attached.
type Codec interface {
	// Encode renders a domain value as a command token.
	// Fails with ErrEncoding if the value is not a member of the domain.
	Encode(value any) (string, error)

	// Decode parses a response token into a domain value.
	// Fails with ErrDecoding if the token has no known representation.
	Decode(token string) (any, error)
}

// BoolCodec maps booleans onto the instrument's ON/OFF tokens.
// Responses are accepted in either spelled (ON/OFF) or numeric (1/0) form;
// the spelled form is what gets emitted.
type BoolCodec struct{}

// Encode renders a bool as ON or OFF.
func (BoolCodec) Encode(value any) (string, error) {
	b, ok := value.(bool)
	if !ok {
		return "", fmt.Errorf("%w: expected bool, got %T", ErrEncoding, value)
	}
	if b {
		return "ON", nil
	}
	return "OFF", nil
}

// Decode parses an ON/OFF or 1/0 token.
func (BoolCodec) Decode(token string) (any, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "ON", "1":
		return true, nil
	case "OFF", "0":
		return false, nil
	}
	return nil, fmt.Errorf("%w: %q is not a boolean token", ErrDecoding, token)
}

// FloatCodec maps physical quantities onto the instrument's numeric notation.
// The canonical domain type is float64; other numeric Go types (including the
// integers JSON and YAML decoders produce) are widened on encode.
type FloatCodec struct {
	// Unit is a display label ("V", "s"). It never reaches the wire; the
	// instrument's units are implicit per command.
	Unit string

	// Compact emits the shortest representation (%G) instead of the default
	// fixed scientific form (%E). The trigger level command expects it.
	Compact bool
}

// Encode renders a numeric value in the instrument's expected notation.
func (c FloatCodec) Encode(value any) (string, error) {
	f, ok := toFloat64(value)
	if !ok {
		return "", fmt.Errorf("%w: expected number, got %T", ErrEncoding, value)
	}
	if c.Compact {
		return fmt.Sprintf("%G", f), nil
	}
	return fmt.Sprintf("%E", f), nil
}

// Decode parses a numeric response token.
func (c FloatCodec) Decode(token string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", ErrDecoding, token)
	}
	return f, nil
}

// IntCodec maps integer-valued settings onto decimal tokens. The canonical
// domain type is int64. Floats with an integral value are accepted on encode
// (dump/load round-trips through JSON produce them); responses are parsed as
// numbers and must carry an integral value, since the instrument reports
// integer settings in scientific notation ("1.0E1").
type IntCodec struct {
	// Unit is a display label; see FloatCodec.Unit.
	Unit string
}

// Encode renders an integer value as a plain decimal token.
func (c IntCodec) Encode(value any) (string, error) {
	f, ok := toFloat64(value)
	if !ok {
		return "", fmt.Errorf("%w: expected integer, got %T", ErrEncoding, value)
	}
	n := int64(f)
	if float64(n) != f {
		return "", fmt.Errorf("%w: %v is not an integer", ErrEncoding, value)
	}
	return strconv.FormatInt(n, 10), nil
}

// Decode parses a numeric response token into an int64.
func (c IntCodec) Decode(token string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", ErrDecoding, token)
	}
	n := int64(f)
	if float64(n) != f {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrDecoding, token)
	}
	return n, nil
}

// Enum builds a codec over a closed set of wire tokens. The type parameter's
// values are the canonical tokens themselves, so an encoded member decodes
// back to the identical value. Matching is case-insensitive; the canonical
// casing from the member list is what gets emitted and returned.
func Enum[T ~string](members ...T) Codec {
	c := enumCodec[T]{
		members: members,
		index:   make(map[string]T, len(members)),
	}
	for _, m := range members {
		c.index[strings.ToUpper(string(m))] = m
	}
	return c
}

type enumCodec[T ~string] struct {
	members []T
	index   map[string]T
}

func (c enumCodec[T]) Encode(value any) (string, error) {
	var token string
	switch v := value.(type) {
	case T:
		token = string(v)
	case string:
		token = v
	default:
		return "", fmt.Errorf("%w: expected one of %s, got %T", ErrEncoding, c.memberList(), value)
	}
	m, ok := c.index[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q is not one of %s", ErrEncoding, token, c.memberList())
	}
	return string(m), nil
}

func (c enumCodec[T]) Decode(token string) (any, error) {
	m, ok := c.index[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not one of %s", ErrDecoding, token, c.memberList())
	}
	return m, nil
}

func (c enumCodec[T]) memberList() string {
	tokens := make([]string, len(c.members))
	for i, m := range c.members {
		tokens[i] = string(m)
	}
	return "{" + strings.Join(tokens, ",") + "}"
}

// toFloat64 widens any numeric Go value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Codec = BoolCodec{}
	_ Codec = FloatCodec{}
	_ Codec = IntCodec{}
)
