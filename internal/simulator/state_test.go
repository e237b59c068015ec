package simulator_test

import (
	"testing"

	"github.com/scopesync/scopesync-go/internal/simulator"
)

// TestStateFactoryDefaults verifies a fresh state answers settings
// queries with the factory tokens.
func TestStateFactoryDefaults(t *testing.T) {
	s := simulator.NewState()

	tests := []struct {
		query string
		want  string
	}{
		{"CH1:SCALE?", "1.0E0"},
		{"CH4:COUPLING?", "DC"},
		{"CH2:BANDWIDTH?", "OFF"},
		{"CH3:PROBE?", "10"},
		{"SELECT:CH1?", "1"},
		{"SELECT:CH2?", "0"},
		{"TRIG:MAIN:TYPE?", "EDGE"},
		{"TRIG:MAIN:EDGE:SLOPE?", "RISE"},
		{"TRIG:MAIN:FREQ?", "1.000000E+03"},
		{"TRIG:MAIN:STATE?", "AUTO"},
		{"HOR:MAIN:SCALE?", "2.5E-4"},
		{"HOR:DELAY:POS?", "0.0E0"},
		{"MEASU:MEAS3:SOURCE?", "CH1"},
		{"MEASU:IMM:TYPE?", "NONE"},
	}
	for _, tt := range tests {
		reply, ok := s.Handle(tt.query)
		if !ok {
			t.Errorf("Handle(%q) went unanswered", tt.query)
			continue
		}
		if reply != tt.want {
			t.Errorf("Handle(%q) = %q, want %q", tt.query, reply, tt.want)
		}
	}
}

// TestStateIdentify verifies the identity reply, which stays bare even
// in header mode.
func TestStateIdentify(t *testing.T) {
	s := simulator.NewState()

	want := "TEKTRONIX,TDS 2024B,SIM0001,CF:91.1CT FV:v22.01"
	reply, ok := s.Handle("*IDN?")
	if !ok || reply != want {
		t.Fatalf("Handle(*IDN?) = %q, %v, want %q, true", reply, ok, want)
	}

	s.Handle("HEADER ON")
	reply, _ = s.Handle("*IDN?")
	if reply != want {
		t.Errorf("Handle(*IDN?) with headers on = %q, want %q", reply, want)
	}
}

// TestStateSetEcho verifies a set token is echoed back verbatim by the
// matching query, with case-insensitive command paths.
func TestStateSetEcho(t *testing.T) {
	s := simulator.NewState()

	if _, ok := s.Handle("CH2:COUPLING AC"); ok {
		t.Error("set command should not produce a reply")
	}
	if reply, _ := s.Handle("CH2:COUPLING?"); reply != "AC" {
		t.Errorf("Handle(CH2:COUPLING?) = %q, want AC", reply)
	}

	s.Handle("ch2:scale 5.0E-1")
	if reply, _ := s.Handle("CH2:SCALE?"); reply != "5.0E-1" {
		t.Errorf("Handle(CH2:SCALE?) = %q, want 5.0E-1", reply)
	}

	// Other paths stay untouched.
	if reply, _ := s.Handle("CH1:COUPLING?"); reply != "DC" {
		t.Errorf("Handle(CH1:COUPLING?) = %q, want DC", reply)
	}
}

// TestStateSelectNormalized verifies display state tokens collapse to
// the 1/0 the instrument reports.
func TestStateSelectNormalized(t *testing.T) {
	s := simulator.NewState()

	tests := []struct {
		token string
		want  string
	}{
		{"ON", "1"},
		{"OFF", "0"},
		{"1", "1"},
		{"0", "0"},
	}
	for _, tt := range tests {
		s.Handle("SELECT:CH3 " + tt.token)
		if reply, _ := s.Handle("SELECT:CH3?"); reply != tt.want {
			t.Errorf("after SELECT:CH3 %s: reply = %q, want %q", tt.token, reply, tt.want)
		}
	}
}

// TestStateHeaders verifies header mode prefixes replies with the
// command path.
func TestStateHeaders(t *testing.T) {
	s := simulator.NewState()

	if reply, _ := s.Handle("HEADER?"); reply != "0" {
		t.Fatalf("Handle(HEADER?) = %q, want 0", reply)
	}

	s.Handle("HEADER ON")
	if reply, _ := s.Handle("CH1:COUPLING?"); reply != ":CH1:COUPLING DC" {
		t.Errorf("headered reply = %q, want :CH1:COUPLING DC", reply)
	}
	if reply, _ := s.Handle("HEADER?"); reply != ":HEADER 1" {
		t.Errorf("Handle(HEADER?) = %q, want :HEADER 1", reply)
	}

	s.Handle("HEADER OFF")
	if reply, _ := s.Handle("CH1:COUPLING?"); reply != "DC" {
		t.Errorf("bare reply = %q, want DC", reply)
	}
}

// TestStateMeasurementResults verifies VALUE and UNIT queries answer
// with canned results derived from the slot's configured type.
func TestStateMeasurementResults(t *testing.T) {
	s := simulator.NewState()

	tests := []struct {
		typeToken string
		wantValue string
		wantUnit  string
	}{
		{"PERIOD", "1.000000E-03", `"s"`},
		{"FREQUENCY", "1.000000E+03", `"Hz"`},
		{"CRMS", "7.070000E-01", `"V"`},
		{"NONE", "0.0E0", `"V"`},
	}
	for _, tt := range tests {
		s.Handle("MEASU:MEAS1:TYPE " + tt.typeToken)
		if reply, _ := s.Handle("MEASU:MEAS1:VALUE?"); reply != tt.wantValue {
			t.Errorf("type %s: VALUE? = %q, want %q", tt.typeToken, reply, tt.wantValue)
		}
		if reply, _ := s.Handle("MEASU:MEAS1:UNIT?"); reply != tt.wantUnit {
			t.Errorf("type %s: UNIT? = %q, want %q", tt.typeToken, reply, tt.wantUnit)
		}
	}

	// Results are query-only.
	s.Handle("MEASU:MEAS1:TYPE PERIOD")
	s.Handle("MEASU:MEAS1:VALUE 9.9E9")
	if reply, _ := s.Handle("MEASU:MEAS1:VALUE?"); reply != "1.000000E-03" {
		t.Errorf("VALUE? after attempted set = %q, want canned 1.000000E-03", reply)
	}
}

// TestStateUnansweredLines verifies sets, unknown queries, and junk
// produce no reply.
func TestStateUnansweredLines(t *testing.T) {
	s := simulator.NewState()

	for _, line := range []string{
		"CH1:SCALE 1.0E0",
		"MATH:DEFINE?",
		"CLEARMENU",
		"",
		"   ",
	} {
		if reply, ok := s.Handle(line); ok {
			t.Errorf("Handle(%q) = %q, want no reply", line, reply)
		}
	}
}

// TestStateReset verifies Reset restores factory defaults and turns
// header mode off.
func TestStateReset(t *testing.T) {
	s := simulator.NewState()

	s.Handle("CH1:SCALE 2.0E-3")
	s.Handle("HEADER ON")
	s.Reset()

	if reply, _ := s.Handle("CH1:SCALE?"); reply != "1.0E0" {
		t.Errorf("Handle(CH1:SCALE?) after reset = %q, want 1.0E0", reply)
	}
	if reply, _ := s.Handle("HEADER?"); reply != "0" {
		t.Errorf("Handle(HEADER?) after reset = %q, want 0", reply)
	}
}

// TestStateValue verifies the direct accessor used by tests and tools.
func TestStateValue(t *testing.T) {
	s := simulator.NewState()

	if token, ok := s.Value("ch1:coupling"); !ok || token != "DC" {
		t.Errorf("Value(ch1:coupling) = %q, %v, want DC, true", token, ok)
	}
	if _, ok := s.Value("MATH:DEFINE"); ok {
		t.Error("Value(MATH:DEFINE) should be absent")
	}
}
