// Command scope-shell is an interactive shell for a TDS2000-series
// oscilloscope.
//
// The shell connects to the instrument over TCP, turns response headers
// off and then accepts commands on a readline prompt. Settings are held
// in memory between commands: read pulls them from the instrument, set
// changes them locally with immediate validation and write pushes the
// populated ones back.
//
// Usage:
//
//	scope-shell -addr <host:port> [flags]
//
// Flags:
//
//	-addr string        Instrument address (host:port, required)
//	-timeout duration   Per-command timeout (default 5s)
//	-trace string       Write a protocol trace to this file
//
// Examples:
//
//	# Connect to a bench instrument
//	scope-shell -addr 192.168.1.50:5025
//
//	# Connect to a local simulator and record the session
//	scope-shell -addr localhost:5025 -trace session.trace
//
// Interactive Commands:
//
//	read [group]              - Read settings from the instrument
//	write [group]             - Write populated settings back
//	show [group]              - Show in-memory settings
//	set <group> <field> <val> - Assign a field
//	get <group> <field>       - Show one field
//	identify                  - Print the identification string
//	select <n> [on|off]       - Show or change channel display state
//	measure <1-4|imm>         - Read a measurement result
//	save <file> / load <file> - Snapshot the in-memory settings
//	quit                      - Exit the shell
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scopesync/scopesync-go/cmd/scope-shell/interactive"
	"github.com/scopesync/scopesync-go/pkg/scope"
	"github.com/scopesync/scopesync-go/pkg/trace"
	"github.com/scopesync/scopesync-go/pkg/transport"
)

// Config holds the shell configuration.
type Config struct {
	Address   string
	Timeout   time.Duration
	TraceFile string
}

var config Config

func init() {
	flag.StringVar(&config.Address, "addr", "", "Instrument address (host:port, required)")
	flag.DurationVar(&config.Timeout, "timeout", transport.DefaultTimeout, "Per-command timeout")
	flag.StringVar(&config.TraceFile, "trace", "", "Write a protocol trace to this file")
}

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if config.Address == "" {
		fmt.Fprintln(os.Stderr, "Error: -addr is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := transport.Config{
		Address: config.Address,
		Timeout: config.Timeout,
	}
	if config.TraceFile != "" {
		logger, err := trace.NewFileLogger(config.TraceFile)
		if err != nil {
			log.Fatalf("Failed to open trace file: %v", err)
		}
		defer logger.Close()
		cfg.Trace = logger
	}

	client, err := transport.Dial(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	// Bare replies keep the field decoders simple.
	if err := client.Send(ctx, "HEADER OFF"); err != nil {
		log.Fatalf("Failed to configure headers: %v", err)
	}

	inst := scope.New(client)

	sh, err := interactive.New(inst)
	if err != nil {
		log.Fatalf("Failed to create shell: %v", err)
	}
	// Redirect log output through readline to avoid interfering with input
	log.SetOutput(sh.Stdout())

	log.Printf("Connected to %s", config.Address)

	go sh.Run(ctx, cancel)

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
		// Context was cancelled by the quit command
	}

	cancel()

	log.SetOutput(os.Stderr)
	log.Println("Goodbye!")
}
