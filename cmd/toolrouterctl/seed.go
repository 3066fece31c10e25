// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
)

// runSeed loads a JSONC file of ToolCard-shaped objects (wire format,
// camelCase, // and /* */ comments allowed) and upserts them into a
// running daemon via catalog.upsertTools. It never bypasses that entry
// point — this is a CLI convenience over the public API, not a second
// way to populate the catalog.
func runSeed(args []string) int {
	flags := pflag.NewFlagSet("toolrouterctl seed", pflag.ContinueOnError)
	file := flags.String("file", "", "path to a JSONC catalog fixture (array of tool cards)")
	configPath := flags.String("config", "", "path to toolrouter.yaml (overrides TOOLROUTER_CONFIG)")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "toolrouterctl seed: --file is required")
		return 2
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl seed: reading %s: %v\n", *file, err)
		return 1
	}

	converted := jsonc.ToJSON(raw)
	if !json.Valid(converted) {
		fmt.Fprintf(os.Stderr, "toolrouterctl seed: %s is not valid JSONC\n", *file)
		return 1
	}

	var cards []json.RawMessage
	if err := json.Unmarshal(converted, &cards); err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl seed: fixture must be a JSON array of tool cards: %v\n", err)
		return 1
	}

	client, err := dialDaemon(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl seed: %v\n", err)
		return 1
	}
	defer client.Close()

	params := struct {
		Tools []json.RawMessage `json:"tools"`
	}{Tools: cards}

	result, err := client.Call("catalog.upsertTools", params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl seed: %v\n", err)
		return 1
	}

	fmt.Printf("seeded %d tool cards from %s: %s\n", len(cards), *file, result)
	return 0
}
