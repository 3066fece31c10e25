// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command toolrouterctl is a client and inspection tool for a running
// toolrouterd instance; every subcommand except version needs the
// daemon, including seed, which loads a local fixture file. It talks to the
// daemon over the Unix socket configured by TOOLROUTER_CONFIG /
// --config; the daemon must be started with transport.socket set, since
// the default stdio transport has no side channel for a second process.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/toolrouter/lib/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	subcommand, rest := args[0], args[1:]
	switch subcommand {
	case "seed":
		return runSeed(rest)
	case "export":
		return runExport(rest)
	case "inspect":
		return runInspect(rest)
	case "version":
		fmt.Println(version.Full())
		return 0
	case "-h", "--help", "help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "toolrouterctl: unknown subcommand %q\n", subcommand)
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `toolrouterctl <subcommand> [flags]

Subcommands:
  seed     load a JSONC tool-card fixture into a running daemon
  export   dump the current catalog as zstd-compressed JSON
  inspect  interactive TUI browser over catalog/search/working-set
  version  print version information`)
}
