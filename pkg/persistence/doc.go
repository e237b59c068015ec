// Package persistence stores instrument settings snapshots on disk.
//
// A snapshot wraps the nested dump/load mapping of an instrument with a
// format version and save timestamp. The file format follows the path
// extension: .yaml/.yml is YAML, everything else JSON.
package persistence
