// Package scpi implements the token layer of the instrument's command
// protocol: pure bidirectional codecs between typed domain values and the
// textual fragments that appear in commands and responses.
//
// # Codecs
//
// A Codec renders a domain value as a wire token (Encode) and parses a
// response token back into a domain value (Decode). Four codecs cover the
// instrument's setting kinds:
//
//   - Bool: ON/OFF toggles
//   - Float: physical quantities in the instrument's scientific notation
//   - Int: integer-valued settings such as probe attenuation steps
//   - Enum: closed vocabularies (coupling modes, trigger sources, ...)
//
// Codecs are pure: no I/O, no retained state. Encoding a value outside the
// declared domain fails with ErrEncoding; parsing an unrecognized token fails
// with ErrDecoding. Both are sentinel errors usable with errors.Is.
//
// # Response payloads
//
// Depending on its HEADER mode the instrument answers a query either with the
// bare value token ("DC") or with the command header prefixed
// ("CH1:COUPLING DC"). Payload extracts the value token from either form, so
// callers never deal with header state.
package scpi
