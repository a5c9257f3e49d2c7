// Package main is the entry point for the talosgen CLI.
//
// talosgen renders per-node Talos Linux machine configs from one declarative
// inventory. It synthesizes each node's network and install override, layers
// it on a shared role patch through talosctl (or the built-in Talos machinery)
// and finishes with the cluster-wide talosconfig.
//
// Commands: generate, render, validate, doctor, init, version.
//
// For detailed usage information, run:
//
//	talosgen --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/talosgen/cmd/talosgen/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Ctrl+C kills a running talosctl and still removes its temporary override.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
