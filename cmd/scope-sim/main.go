// Command scope-sim runs a simulated oscilloscope on a TCP socket.
//
// The simulator answers the same line protocol as the real instrument:
// set commands get no reply, queries get one reply line. All connected
// clients share one instrument state, so a setting written by one
// client is read back by the others.
//
// Usage:
//
//	scope-sim [flags]
//
// Flags:
//
//	-addr string   Listen address (default ":5025")
//	-trace string  Write a protocol trace to this .sclog file
//
// Examples:
//
//	# Run on the conventional instrument port
//	scope-sim
//
//	# Run on an ephemeral port with a protocol trace
//	scope-sim -addr 127.0.0.1:0 -trace sim.sclog
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/scopesync/scopesync-go/internal/simulator"
	"github.com/scopesync/scopesync-go/pkg/trace"
)

// Config holds the simulator configuration.
type Config struct {
	Address   string
	TraceFile string
}

var config Config

func init() {
	flag.StringVar(&config.Address, "addr", simulator.DefaultAddress, "Listen address")
	flag.StringVar(&config.TraceFile, "trace", "", "Write a protocol trace to this .sclog file")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	var logger trace.Logger = trace.NoopLogger{}
	if config.TraceFile != "" {
		fl, err := trace.NewFileLogger(config.TraceFile)
		if err != nil {
			log.Fatalf("Failed to open trace file: %v", err)
		}
		defer fl.Close()
		logger = fl
	}

	server := simulator.NewServer(simulator.ServerConfig{
		Address: config.Address,
		Trace:   logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := server.Start(ctx); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Simulated oscilloscope")
	log.Printf("Listening on %s", server.Addr())
	if config.TraceFile != "" {
		log.Printf("Tracing to %s", config.TraceFile)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("Received signal: %v", sig)
	log.Println("Shutting down...")

	if err := server.Stop(); err != nil {
		log.Printf("Error stopping server: %v", err)
	}

	log.Println("Goodbye!")
}
