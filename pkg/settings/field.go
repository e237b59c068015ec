package settings

import "github.com/scopesync/scopesync-go/pkg/scpi"

// Field declares one instrument setting: its name in dump/load
// mappings, the SCPI subcommand relative to the group prefix, and the
// codec defining its value domain.
//
// Field tables are immutable schema shared by every group instance of
// the same kind. Declaration order is operation order.
type Field struct {
	// Name is the mapping key, unique within the group.
	Name string

	// Command is the SCPI subcommand relative to the group prefix
	// (e.g. "COUPLING" under "CH1").
	Command string

	// Codec encodes and decodes the field's values.
	Codec scpi.Codec
}
