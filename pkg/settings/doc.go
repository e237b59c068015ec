// Package settings implements the instrument settings engine.
//
// A Group binds an immutable field table to one instrument subsystem
// instance (a channel, the trigger, a timebase, a measurement slot).
// Each Field names a setting, the SCPI subcommand that carries it, and
// the codec defining its value domain. The group keeps an in-memory
// value map and moves it over an injected transport.Client.
//
// # Operations
//
//   - Read: query every field, instrument -> memory
//   - Write: send every populated field, memory -> instrument
//   - Dump / Load: memory <-> plain map, no instrument I/O
//   - Set / Get: single-field access
//
// # Population
//
// A field's value is undefined until Read, Load, Set or Put populates
// it. Write skips unpopulated fields, so a group constructed fresh and
// written immediately sends nothing.
//
// # Failure Policy
//
// Read and Write are fail-fast: the first failing field aborts the
// pass. Fields already processed keep their new state; the rest keep
// their prior state. Load is atomic instead: all keys are validated
// before any value is stored, so a bad mapping leaves the group
// untouched. Every failure is a *FieldError naming the group, index
// and field, wrapping the cause for errors.Is.
//
// # Concurrency
//
// A Group does no internal locking. One goroutine drives an instrument
// at a time; the transport below serializes the wire regardless.
package settings
