// Package simulator is a simulated TDS2024B-class oscilloscope for
// tests and local development.
//
// The core is a State machine that answers the instrument's command
// subset: settings queries echo the last-set token, SELECT toggles
// display state, *IDN? identifies, and measurement VALUE/UNIT queries
// return canned results derived from the configured measurement type.
// Factory defaults come from an embedded manifest.
//
// Two frontends share the State:
//
//   - Loopback, an in-process transport.Client for I/O-free tests
//   - Server, a line-oriented TCP server speaking the same protocol
//     over a real socket
package simulator
