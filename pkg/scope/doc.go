// Package scope is the instrument schema for a Tektronix TDS2024B-class
// four-channel oscilloscope: typed enumerations, the settings groups of
// every subsystem, and the Instrument aggregator that composes them.
//
// # Topology
//
// An Instrument owns a fixed set of settings groups, built once over an
// injected transport:
//
//   - 4 vertical channels (CH1..CH4)
//   - the main trigger (TRIG:MAIN)
//   - the main horizontal timebase (HOR:MAIN)
//   - 4 displayed measurement slots (MEASU:MEAS1..MEAS4)
//   - the immediate measurement (MEASU:IMM)
//
// The delay timebase (HOR:DELAY) is not part of the aggregate but can
// be addressed standalone via NewHorizontal.
//
// # Usage
//
// Configure through the typed accessors, then push in one pass:
//
//	inst := scope.New(client)
//
//	ch := inst.Channel(0)
//	ch.SetCoupling(scope.CouplingDC)
//	ch.SetScale(1.0)   // V/div
//	ch.SetPosition(0)
//
//	trig := inst.Trigger()
//	trig.SetType(scope.TriggerTypeEdge)
//	trig.SetMode(scope.TriggerModeAuto)
//	trig.SetLevel(2.0) // V
//
//	if err := inst.WriteAll(ctx); err != nil {
//	    // a *settings.FieldError naming the failing group and field
//	}
//
// Dump and Load move the whole configuration to and from a nested
// mapping without touching the instrument:
//
//	snapshot := inst.Dump()
//	// ... persist, edit, reload ...
//	if err := inst.Load(snapshot); err != nil { ... }
//	if err := inst.WriteAll(ctx); err != nil { ... }
//
// # Concurrency
//
// One goroutine per Instrument. The groups keep no locks; the command
// channel is half-duplex and ordered, serialized by the transport.
package scope
