// Command scope-conf saves and restores oscilloscope settings.
//
// A snapshot holds every synchronized setting of the instrument: the
// four vertical channels, the main trigger, the main timebase, and the
// measurement slots. Snapshots are JSON or YAML by file extension.
//
// Usage:
//
//	scope-conf <command> [flags]
//
// Commands:
//
//	save      Read all settings from the instrument into a snapshot file
//	restore   Write a snapshot file's settings to the instrument
//	show      Print a snapshot file
//	identify  Print the instrument identification string
//
// Examples:
//
//	# Save the bench scope's settings
//	scope-conf save -addr 192.168.1.20:5025 -o bench.yaml
//
//	# Restore them later, tracing the exchanges
//	scope-conf restore -addr 192.168.1.20:5025 -trace restore.sclog bench.yaml
//
//	# Inspect a snapshot offline
//	scope-conf show bench.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/scopesync/scopesync-go/pkg/persistence"
	"github.com/scopesync/scopesync-go/pkg/scope"
	"github.com/scopesync/scopesync-go/pkg/trace"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

const usage = `scope-conf - Oscilloscope settings snapshots

Usage:
  scope-conf <command> [flags]

Commands:
  save      Read all settings from the instrument into a snapshot file
  restore   Write a snapshot file's settings to the instrument
  show      Print a snapshot file
  identify  Print the instrument identification string

Use "scope-conf <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "save":
		runSave(args)
	case "restore":
		runRestore(args)
	case "show":
		runShow(args)
	case "identify":
		runIdentify(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// connectFlags are the flags shared by every command that talks to the
// instrument.
type connectFlags struct {
	addr      *string
	timeout   *time.Duration
	traceFile *string
}

func addConnectFlags(fs *flag.FlagSet) connectFlags {
	return connectFlags{
		addr:      fs.String("addr", "", "Instrument address (host:port, required)"),
		timeout:   fs.Duration("timeout", transport.DefaultTimeout, "Per-exchange timeout"),
		traceFile: fs.String("trace", "", "Write a protocol trace to this .sclog file"),
	}
}

// connect dials the instrument and turns response headers off so
// replies come back bare. The returned cleanup closes the trace file
// after the connection.
func connect(ctx context.Context, cf connectFlags) (*transport.TCPClient, func(), error) {
	if *cf.addr == "" {
		return nil, nil, fmt.Errorf("instrument address (-addr) required")
	}

	var logger trace.Logger = trace.NoopLogger{}
	closeTrace := func() {}
	if *cf.traceFile != "" {
		fl, err := trace.NewFileLogger(*cf.traceFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace file: %w", err)
		}
		logger = fl
		closeTrace = func() { fl.Close() }
	}

	client, err := transport.Dial(ctx, transport.Config{
		Address: *cf.addr,
		Timeout: *cf.timeout,
		Trace:   logger,
	})
	if err != nil {
		closeTrace()
		return nil, nil, err
	}

	if err := client.Send(ctx, "HEADER OFF"); err != nil {
		client.Close()
		closeTrace()
		return nil, nil, err
	}

	cleanup := func() {
		client.Close()
		closeTrace()
	}
	return client, cleanup, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runSave(args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `scope-conf save - Read all settings into a snapshot file

Usage:
  scope-conf save -addr <host:port> -o <file>

Flags:
`)
		fs.PrintDefaults()
	}

	cf := addConnectFlags(fs)
	output := fs.String("o", "", "Snapshot file to write (.json, .yaml or .yml, required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	client, cleanup, err := connect(ctx, cf)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	inst := scope.New(client)

	identity, err := inst.Identify(ctx)
	if err != nil {
		fail(err)
	}
	if err := inst.ReadAll(ctx); err != nil {
		fail(err)
	}

	store := persistence.NewSnapshotStore(*output)
	snap := &persistence.Snapshot{
		Instrument: identity,
		Settings:   inst.Dump(),
	}
	if err := store.Save(snap); err != nil {
		fail(err)
	}

	fmt.Printf("Saved %s to %s\n", identity, *output)
}

func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `scope-conf restore - Write a snapshot file's settings to the instrument

Usage:
  scope-conf restore -addr <host:port> <file>

Flags:
`)
		fs.PrintDefaults()
	}

	cf := addConnectFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: snapshot file path required")
		fs.Usage()
		os.Exit(1)
	}

	store := persistence.NewSnapshotStore(fs.Arg(0))
	snap, err := store.Load()
	if err != nil {
		fail(err)
	}
	if snap == nil {
		fail(fmt.Errorf("no snapshot at %s", fs.Arg(0)))
	}

	ctx := context.Background()
	client, cleanup, err := connect(ctx, cf)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	inst := scope.New(client)
	if err := inst.Load(snap.Settings); err != nil {
		fail(err)
	}
	if err := inst.WriteAll(ctx); err != nil {
		fail(err)
	}

	fmt.Printf("Restored %s from %s\n", *cf.addr, fs.Arg(0))
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `scope-conf show - Print a snapshot file

Usage:
  scope-conf show <file>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: snapshot file path required")
		fs.Usage()
		os.Exit(1)
	}

	store := persistence.NewSnapshotStore(fs.Arg(0))
	snap, err := store.Load()
	if err != nil {
		fail(err)
	}
	if snap == nil {
		fail(fmt.Errorf("no snapshot at %s", fs.Arg(0)))
	}

	printSnapshot(snap)
}

func printSnapshot(snap *persistence.Snapshot) {
	fmt.Printf("Version:    %d\n", snap.Version)
	fmt.Printf("Saved:      %s\n", snap.SavedAt.Format(time.RFC3339))
	if snap.Instrument != "" {
		fmt.Printf("Instrument: %s\n", snap.Instrument)
	}

	groups := make([]string, 0, len(snap.Settings))
	for key := range snap.Settings {
		groups = append(groups, key)
	}
	sort.Strings(groups)

	for _, key := range groups {
		fmt.Printf("\n%s:\n", key)

		fields := make([]string, 0, len(snap.Settings[key]))
		for name := range snap.Settings[key] {
			fields = append(fields, name)
		}
		sort.Strings(fields)

		for _, name := range fields {
			fmt.Printf("  %-14s %v\n", name+":", snap.Settings[key][name])
		}
	}
}

func runIdentify(args []string) {
	fs := flag.NewFlagSet("identify", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `scope-conf identify - Print the instrument identification string

Usage:
  scope-conf identify -addr <host:port>

Flags:
`)
		fs.PrintDefaults()
	}

	cf := addConnectFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx := context.Background()
	client, cleanup, err := connect(ctx, cf)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	identity, err := scope.New(client).Identify(ctx)
	if err != nil {
		fail(err)
	}

	fmt.Println(identity)
}
