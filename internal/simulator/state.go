package simulator

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// factoryDefaults mirrors defaults.yaml.
type factoryDefaults struct {
	IDN          string            `yaml:"idn"`
	Channels     map[string]string `yaml:"channels"`
	Select       map[string]string `yaml:"select"`
	Trigger      map[string]string `yaml:"trigger"`
	Horizontal   map[string]string `yaml:"horizontal"`
	Measurements map[string]string `yaml:"measurements"`
}

var (
	defaultsOnce   sync.Once
	defaultsCached *factoryDefaults
)

func loadDefaults() *factoryDefaults {
	defaultsOnce.Do(func() {
		d := &factoryDefaults{}
		if err := yaml.Unmarshal(defaultsYAML, d); err != nil {
			panic(fmt.Sprintf("simulator: malformed defaults manifest: %v", err))
		}
		defaultsCached = d
	})
	return defaultsCached
}

var (
	measurementIDs = []string{"MEAS1", "MEAS2", "MEAS3", "MEAS4", "IMM"}
	timebaseIDs    = []string{"MAIN", "DELAY"}
)

// State is the settings memory of one simulated instrument. Settings
// queries echo the last-set token; measurement VALUE and UNIT queries
// answer with canned results derived from the slot's configured type.
// Safe for concurrent use.
type State struct {
	mu      sync.Mutex
	idn     string
	headers bool
	values  map[string]string
}

// NewState creates a state at factory defaults.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores factory defaults, including header mode off.
func (s *State) Reset() {
	d := loadDefaults()

	values := make(map[string]string)
	for n := 1; n <= 4; n++ {
		ch := fmt.Sprintf("CH%d", n)
		for cmd, token := range d.Channels {
			values[ch+":"+cmd] = token
		}
		values["SELECT:"+ch] = d.Select[ch]
	}
	for cmd, token := range d.Trigger {
		values["TRIG:MAIN:"+cmd] = token
	}
	for _, tb := range timebaseIDs {
		for cmd, token := range d.Horizontal {
			values["HOR:"+tb+":"+cmd] = token
		}
	}
	for _, id := range measurementIDs {
		for cmd, token := range d.Measurements {
			values["MEASU:"+id+":"+cmd] = token
		}
	}

	s.mu.Lock()
	s.idn = d.IDN
	s.headers = false
	s.values = values
	s.mu.Unlock()
}

// Handle processes one command line. The reply is valid only when ok
// is true; set commands and unknown queries produce no reply, like the
// real instrument.
func (s *State) Handle(line string) (reply string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	if path, value, found := strings.Cut(line, " "); found {
		s.set(strings.ToUpper(path), strings.TrimSpace(value))
		return "", false
	}

	if !strings.HasSuffix(line, "?") {
		return "", false
	}
	return s.query(strings.ToUpper(strings.TrimSuffix(line, "?")))
}

// Value reports the stored token for a command path.
func (s *State) Value(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.values[strings.ToUpper(path)]
	return token, ok
}

func (s *State) set(path, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case path == "HEADER":
		s.headers = isOn(token)
	case strings.HasPrefix(path, "SELECT:"):
		if isOn(token) {
			s.values[path] = "1"
		} else {
			s.values[path] = "0"
		}
	case strings.HasPrefix(path, "MEASU:") &&
		(strings.HasSuffix(path, ":VALUE") || strings.HasSuffix(path, ":UNIT")):
		// query-only
	default:
		s.values[path] = token
	}
}

func (s *State) query(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "*IDN" {
		return s.idn, true
	}
	if path == "HEADER" {
		if s.headers {
			return s.withHeader(path, "1"), true
		}
		return "0", true
	}

	if id, found := measurementQuery(path, ":VALUE"); found {
		return s.withHeader(path, cannedValue(s.values["MEASU:"+id+":TYPE"])), true
	}
	if id, found := measurementQuery(path, ":UNIT"); found {
		return s.withHeader(path, `"`+cannedUnit(s.values["MEASU:"+id+":TYPE"])+`"`), true
	}

	token, found := s.values[path]
	if !found {
		return "", false
	}
	return s.withHeader(path, token), true
}

// withHeader prepends the command header when header mode is on. The
// caller holds mu.
func (s *State) withHeader(path, token string) string {
	if !s.headers {
		return token
	}
	return ":" + path + " " + token
}

// measurementQuery extracts the measurement id from MEASU:<id><suffix>.
func measurementQuery(path, suffix string) (string, bool) {
	rest, found := strings.CutPrefix(path, "MEASU:")
	if !found {
		return "", false
	}
	id, found := strings.CutSuffix(rest, suffix)
	if !found || id == "" || strings.Contains(id, ":") {
		return "", false
	}
	return id, true
}

func isOn(token string) bool {
	switch strings.ToUpper(token) {
	case "ON", "1":
		return true
	default:
		return false
	}
}

// Canned measurement results per configured type.
var cannedValues = map[string]string{
	"CRMS":      "7.070000E-01",
	"FALL":      "1.600000E-06",
	"RISE":      "1.600000E-06",
	"MAXI":      "1.000000E+00",
	"MAXIMUM":   "1.000000E+00",
	"MINI":      "-1.000000E+00",
	"MINIMUM":   "-1.000000E+00",
	"PERIOD":    "1.000000E-03",
	"FREQUENCY": "1.000000E+03",
	"MEAN":      "0.0E0",
	"NWIDTH":    "5.000000E-04",
	"PWIDTH":    "5.000000E-04",
	"PK2PK":     "2.000000E+00",
}

func cannedValue(typeToken string) string {
	if v, ok := cannedValues[strings.ToUpper(typeToken)]; ok {
		return v
	}
	return "0.0E0"
}

var secondsTypes = map[string]bool{
	"FALL":   true,
	"RISE":   true,
	"PERIOD": true,
	"NWIDTH": true,
	"PWIDTH": true,
}

func cannedUnit(typeToken string) string {
	t := strings.ToUpper(typeToken)
	switch {
	case secondsTypes[t]:
		return "s"
	case t == "FREQUENCY":
		return "Hz"
	default:
		return "V"
	}
}
