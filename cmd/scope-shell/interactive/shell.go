// Package interactive provides the interactive command loop for
// scope-shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/scopesync/scopesync-go/pkg/persistence"
	"github.com/scopesync/scopesync-go/pkg/scope"
	"github.com/scopesync/scopesync-go/pkg/settings"
)

// Shell handles interactive mode for scope-shell.
type Shell struct {
	inst *scope.Instrument
	rl   *readline.Instance

	// Group lookup by dump key, plus the fixed display order.
	groups  map[string]*settings.Group
	ordered []string
}

// Short forms accepted wherever a group key is expected.
var groupAliases = map[string]string{
	"trig":  "trigger",
	"hor":   "horizontal_main",
	"imm":   "measurement_immediate",
	"ch1":   "channel_0",
	"ch2":   "channel_1",
	"ch3":   "channel_2",
	"ch4":   "channel_3",
	"meas1": "measurement_0",
	"meas2": "measurement_1",
	"meas3": "measurement_2",
	"meas4": "measurement_3",
}

// New creates a new interactive shell over the instrument.
func New(inst *scope.Instrument) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "scope> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		inst:   inst,
		rl:     rl,
		groups: make(map[string]*settings.Group),
	}

	s.register("trigger", inst.Trigger().Group)
	s.register("horizontal_main", inst.HorizontalMain().Group)
	for i := 0; i < scope.NumChannels; i++ {
		s.register(fmt.Sprintf("channel_%d", i), inst.Channel(i).Group)
	}
	for i := 0; i < scope.NumMeasurements; i++ {
		s.register(fmt.Sprintf("measurement_%d", i), inst.Measurement(i).Group)
	}
	s.register("measurement_immediate", inst.MeasurementImmediate().Group)

	return s, nil
}

func (s *Shell) register(key string, g *settings.Group) {
	s.groups[key] = g
	s.ordered = append(s.ordered, key)
}

// Stdout returns a writer that coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "identify", "id":
			s.cmdIdentify(ctx)

		case "read", "r":
			s.cmdRead(ctx, args)

		case "write", "w":
			s.cmdWrite(ctx, args)

		case "show":
			s.cmdShow(args)

		case "fields":
			s.cmdFields(args)

		case "set":
			s.cmdSet(args)

		case "get":
			s.cmdGet(args)

		case "select", "sel":
			s.cmdSelect(ctx, args)

		case "measure", "m":
			s.cmdMeasure(ctx, args)

		case "freq":
			s.cmdFrequency(ctx)

		case "trigstate":
			s.cmdTriggerState(ctx)

		case "save":
			s.cmdSave(ctx, args)

		case "load":
			s.cmdLoad(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Oscilloscope Shell Commands:
  Settings:
    read [group]              - Read settings from the instrument (all groups or one)
    write [group]             - Write populated settings to the instrument
    show [group]              - Show in-memory settings
    set <group> <field> <val> - Assign a field (validated immediately)
    get <group> <field>       - Show one field
    fields [group]            - List groups and their fields

  Instrument:
    identify                  - Print the identification string
    select <n> [on|off]       - Show or change whether channel n is displayed
    measure <1-4|imm>         - Read a measurement result and unit
    freq                      - Read the trigger frequency counter
    trigstate                 - Read the trigger state

  Snapshots:
    save <file>               - Save in-memory settings to a snapshot file
    load <file>               - Load a snapshot file into memory (then 'write')

  General:
    help                      - Show this help
    quit                      - Exit shell

  Groups:
    trigger, horizontal_main, channel_0..3, measurement_0..3,
    measurement_immediate (short: trig, hor, ch1..ch4, meas1..4, imm)`)
}

// group resolves a group key or alias.
func (s *Shell) group(key string) (string, *settings.Group, bool) {
	k := strings.ToLower(key)
	if full, ok := groupAliases[k]; ok {
		k = full
	}
	g, ok := s.groups[k]
	return k, g, ok
}

// cmdIdentify handles the identify command.
func (s *Shell) cmdIdentify(ctx context.Context) {
	identity, err := s.inst.Identify(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Identify failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), identity)
}

// cmdRead handles the read command.
func (s *Shell) cmdRead(ctx context.Context, args []string) {
	if len(args) == 0 {
		if err := s.inst.ReadAll(ctx); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Read failed: %v\n", err)
			return
		}
		fmt.Fprintln(s.rl.Stdout(), "OK")
		return
	}

	key, g, ok := s.group(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown group: %s\n", args[0])
		return
	}
	if err := g.Read(ctx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Read failed: %v\n", err)
		return
	}
	s.printGroup(key, g)
}

// cmdWrite handles the write command.
func (s *Shell) cmdWrite(ctx context.Context, args []string) {
	if len(args) == 0 {
		if err := s.inst.WriteAll(ctx); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Write failed: %v\n", err)
			return
		}
		fmt.Fprintln(s.rl.Stdout(), "OK")
		return
	}

	_, g, ok := s.group(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown group: %s\n", args[0])
		return
	}
	if err := g.Write(ctx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Write failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

// cmdShow handles the show command.
func (s *Shell) cmdShow(args []string) {
	if len(args) > 0 {
		key, g, ok := s.group(args[0])
		if !ok {
			fmt.Fprintf(s.rl.Stdout(), "Unknown group: %s\n", args[0])
			return
		}
		s.printGroup(key, g)
		return
	}

	for _, key := range s.ordered {
		s.printGroup(key, s.groups[key])
	}
}

// printGroup prints one group's fields in declaration order.
// Unpopulated fields show as "-".
func (s *Shell) printGroup(key string, g *settings.Group) {
	fmt.Fprintf(s.rl.Stdout(), "%s (%s):\n", key, g.Prefix())
	for _, f := range g.Fields() {
		if v, ok := g.Get(f.Name); ok {
			fmt.Fprintf(s.rl.Stdout(), "  %-14s %v\n", f.Name+":", v)
		} else {
			fmt.Fprintf(s.rl.Stdout(), "  %-14s -\n", f.Name+":")
		}
	}
}

// cmdFields handles the fields command.
func (s *Shell) cmdFields(args []string) {
	keys := s.ordered
	if len(args) > 0 {
		key, _, ok := s.group(args[0])
		if !ok {
			fmt.Fprintf(s.rl.Stdout(), "Unknown group: %s\n", args[0])
			return
		}
		keys = []string{key}
	}

	for _, key := range keys {
		g := s.groups[key]
		fmt.Fprintf(s.rl.Stdout(), "%s (%s):\n", key, g.Prefix())
		for _, f := range g.Fields() {
			fmt.Fprintf(s.rl.Stdout(), "  %-14s %s\n", f.Name, g.Prefix()+":"+f.Command)
		}
	}
}

// cmdSet handles the set command.
func (s *Shell) cmdSet(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: set <group> <field> <value>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: set ch1 coupling DC")
		return
	}

	_, g, ok := s.group(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown group: %s\n", args[0])
		return
	}

	if err := g.Set(args[1], parseValue(strings.Join(args[2:], " "))); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Set failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK (use 'write' to push)")
}

// cmdGet handles the get command.
func (s *Shell) cmdGet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: get <group> <field>")
		return
	}

	_, g, ok := s.group(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown group: %s\n", args[0])
		return
	}

	v, ok := g.Get(args[1])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "%s.%s is not populated (use 'read')\n", args[0], args[1])
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s.%s = %v\n", args[0], args[1], v)
}

// cmdSelect handles the select command.
func (s *Shell) cmdSelect(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: select <channel 1-4> [on|off]")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > scope.NumChannels {
		fmt.Fprintf(s.rl.Stdout(), "Invalid channel: %s (1-%d)\n", args[0], scope.NumChannels)
		return
	}
	ch := s.inst.Channel(n - 1)

	if len(args) == 1 {
		displayed, err := ch.Displayed(ctx)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Query failed: %v\n", err)
			return
		}
		state := "off"
		if displayed {
			state = "on"
		}
		fmt.Fprintf(s.rl.Stdout(), "channel %d is %s\n", n, state)
		return
	}

	switch strings.ToLower(args[1]) {
	case "on":
		err = ch.Enable(ctx)
	case "off":
		err = ch.Disable(ctx)
	default:
		fmt.Fprintf(s.rl.Stdout(), "Invalid state: %s (on|off)\n", args[1])
		return
	}
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Select failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

// cmdMeasure handles the measure command.
func (s *Shell) cmdMeasure(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(s.rl.Stdout(), "Usage: measure <1-%d|imm>\n", scope.NumMeasurements)
		return
	}

	var m *scope.Measurement
	if strings.EqualFold(args[0], "imm") {
		m = s.inst.MeasurementImmediate()
	} else {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > scope.NumMeasurements {
			fmt.Fprintf(s.rl.Stdout(), "Invalid slot: %s (1-%d or imm)\n", args[0], scope.NumMeasurements)
			return
		}
		m = s.inst.Measurement(n - 1)
	}

	value, err := m.Value(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Measure failed: %v\n", err)
		return
	}
	unit, err := m.Unit(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Unit query failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s = %G %s\n", m.Prefix(), value, unit)
}

// cmdFrequency handles the freq command.
func (s *Shell) cmdFrequency(ctx context.Context) {
	f, err := s.inst.Trigger().Frequency(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Query failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%G Hz\n", f)
}

// cmdTriggerState handles the trigstate command.
func (s *Shell) cmdTriggerState(ctx context.Context) {
	state, err := s.inst.Trigger().State(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Query failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), string(state))
}

// cmdSave handles the save command.
func (s *Shell) cmdSave(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: save <file.json|file.yaml>")
		return
	}

	snap := &persistence.Snapshot{Settings: s.inst.Dump()}
	// Best effort: a snapshot without the identity line is still valid.
	if identity, err := s.inst.Identify(ctx); err == nil {
		snap.Instrument = identity
	}

	store := persistence.NewSnapshotStore(args[0])
	if err := store.Save(snap); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Saved to %s\n", store.Path())
}

// cmdLoad handles the load command.
func (s *Shell) cmdLoad(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: load <file.json|file.yaml>")
		return
	}

	store := persistence.NewSnapshotStore(args[0])
	snap, err := store.Load()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Load failed: %v\n", err)
		return
	}
	if snap == nil {
		fmt.Fprintf(s.rl.Stdout(), "No snapshot at %s\n", args[0])
		return
	}

	if err := s.inst.Load(snap.Settings); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Load failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK (use 'write' to push)")
}

// parseValue parses a field value (try int, then float, then bool,
// then the instrument's ON/OFF spelling, then string).
func parseValue(valueStr string) any {
	if v, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(valueStr); err == nil {
		return v
	}
	switch strings.ToUpper(valueStr) {
	case "ON":
		return true
	case "OFF":
		return false
	}
	return strings.Trim(valueStr, "\"'")
}
