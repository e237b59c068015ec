package scope

import (
	"context"
	"reflect"
	"testing"
)

func TestTriggerWriteUsesCompactLevel(t *testing.T) {
	tr := &fakeClient{}
	trig := NewTrigger(tr)

	if err := trig.SetType(TriggerTypeEdge); err != nil {
		t.Fatalf("SetType failed: %v", err)
	}
	if err := trig.SetMode(TriggerModeAuto); err != nil {
		t.Fatalf("SetMode failed: %v", err)
	}
	if err := trig.SetLevel(2.0); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	if err := trig.SetEdgeSource(EdgeSourceCH1); err != nil {
		t.Fatalf("SetEdgeSource failed: %v", err)
	}

	if err := trig.Write(context.Background()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// The level is emitted in compact notation, not scientific.
	want := []string{
		"TRIG:MAIN:TYPE EDGE",
		"TRIG:MAIN:MODE AUTO",
		"TRIG:MAIN:LEVEL 2",
		"TRIG:MAIN:EDGE:SOURCE CH1",
	}
	if !reflect.DeepEqual(tr.sent, want) {
		t.Errorf("sent = %v, want %v", tr.sent, want)
	}
}

func TestTriggerRead(t *testing.T) {
	tr := &fakeClient{replies: map[string]string{
		"TRIG:MAIN:TYPE?":          ":TRIGGER:MAIN:TYPE EDGE",
		"TRIG:MAIN:MODE?":          "NORMAL",
		"TRIG:MAIN:LEVEL?":         "2.0E-1",
		"TRIG:MAIN:EDGE:COUPLING?": "HFREJ",
		"TRIG:MAIN:EDGE:SLOPE?":    ":TRIGGER:MAIN:EDGE:SLOPE RISE",
		"TRIG:MAIN:EDGE:SOURCE?":   "EXT5",
	}}
	trig := NewTrigger(tr)

	if err := trig.Read(context.Background()); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if tt, _ := trig.Type(); tt != TriggerTypeEdge {
		t.Errorf("Type() = %v, want EDGE", tt)
	}
	if m, _ := trig.Mode(); m != TriggerModeNormal {
		t.Errorf("Mode() = %v, want NORMAL", m)
	}
	if lvl, _ := trig.Level(); lvl != 0.2 {
		t.Errorf("Level() = %v, want 0.2", lvl)
	}
	if c, _ := trig.EdgeCoupling(); c != EdgeCouplingHFReject {
		t.Errorf("EdgeCoupling() = %v, want HFREJ", c)
	}
	if s, _ := trig.EdgeSlope(); s != EdgeSlopeRise {
		t.Errorf("EdgeSlope() = %v, want RISE", s)
	}
	if s, _ := trig.EdgeSource(); s != EdgeSourceExt5 {
		t.Errorf("EdgeSource() = %v, want EXT5", s)
	}
}

func TestTriggerFrequency(t *testing.T) {
	tr := &fakeClient{replies: map[string]string{
		"TRIG:MAIN:FREQ?": ":TRIGGER:MAIN:FREQUENCY 1.000000E+03",
	}}
	trig := NewTrigger(tr)

	f, err := trig.Frequency(context.Background())
	if err != nil {
		t.Fatalf("Frequency failed: %v", err)
	}
	if f != 1000.0 {
		t.Errorf("Frequency() = %v, want 1000", f)
	}
}

func TestTriggerState(t *testing.T) {
	tr := &fakeClient{replies: map[string]string{
		"TRIG:MAIN:STATE?": "ARMED",
	}}
	trig := NewTrigger(tr)

	st, err := trig.State(context.Background())
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if st != TriggerStateArmed {
		t.Errorf("State() = %v, want ARMED", st)
	}
}
