// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command toolrouterd is the tool-router daemon. It loads a catalog,
// search engine, working-set manager, and result reducer behind a
// newline-delimited JSON-RPC 2.0 surface on stdio, or on a Unix socket
// when transport.socket is configured.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toolrouter/internal/engine"
	"github.com/bureau-foundation/toolrouter/internal/rpc"
	"github.com/bureau-foundation/toolrouter/lib/clock"
	"github.com/bureau-foundation/toolrouter/lib/config"
	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
	"github.com/bureau-foundation/toolrouter/lib/toolsearch"
	"github.com/bureau-foundation/toolrouter/lib/version"
	"github.com/bureau-foundation/toolrouter/lib/workingset"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("toolrouterd", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to toolrouter.yaml (overrides TOOLROUTER_CONFIG)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *showVersion {
		fmt.Println(version.Full())
		return 0
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("loading configuration", "error", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}
	if err := cfg.EnsurePaths(); err != nil {
		log.Error("preparing data directories", "error", err)
		return 1
	}

	clk := clock.Real()
	catalog := toolcatalog.New(clk)

	search := toolsearch.New(catalog).
		WithParams(searchParamsFromConfig(cfg.Search)).
		WithFieldWeights(fieldWeightsFromConfig(cfg.Search.FieldWeights))

	ws := workingset.New(clk, search, catalog, workingset.Policy{
		DefaultBudgetTokens: cfg.WorkingSet.DefaultBudgetTokens,
		DefaultTTLMs:        cfg.WorkingSet.DefaultTTLMs,
		MaxEntries:          cfg.WorkingSet.MaxEntries,
		DefaultTokenCost:    cfg.WorkingSet.DefaultTokenCost,
	})

	reducerPolicy := reducerPolicyFromConfig(cfg.Reducer)

	eng := engine.New(catalog, search, ws, reducerPolicy, log)

	server := rpc.NewServer(log, cfg.Transport.MaxBatchSize)
	eng.Register(server)

	log.Info("toolrouterd starting",
		"version", version.Short(),
		"environment", string(cfg.Environment),
		"maxBatchSize", cfg.Transport.MaxBatchSize,
		"socket", cfg.Transport.Socket,
	)

	if cfg.Transport.Socket != "" {
		if err := serveSocket(cfg.Transport.Socket, server, log); err != nil {
			log.Error("serving unix socket", "error", err)
			return 1
		}
	} else if err := server.Serve(os.Stdin, os.Stdout); err != nil {
		log.Error("serving JSON-RPC requests", "error", err)
		return 1
	}

	log.Info("toolrouterd exiting")
	return 0
}

// loadConfig honors --config over TOOLROUTER_CONFIG, matching the
// teacher's determinism requirement: exactly one source of truth, no
// silent discovery.
func loadConfig(explicitPath string) (*config.Config, error) {
	if explicitPath != "" {
		return config.LoadFile(explicitPath)
	}
	return config.Load()
}
