// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/pflag"
)

// runExport dumps the daemon's current catalog (via catalog.export) as
// zstd-compressed JSON. This is strictly a point-in-time debug artifact —
// the daemon never reads it back; there is no persistent on-disk index.
func runExport(args []string) int {
	flags := pflag.NewFlagSet("toolrouterctl export", pflag.ContinueOnError)
	out := flags.String("out", "catalog-export.json.zst", "output file path")
	configPath := flags.String("config", "", "path to toolrouter.yaml (overrides TOOLROUTER_CONFIG)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	client, err := dialDaemon(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl export: %v\n", err)
		return 1
	}
	defer client.Close()

	result, err := client.Call("catalog.export", struct{}{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl export: %v\n", err)
		return 1
	}

	file, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl export: creating %s: %v\n", *out, err)
		return 1
	}
	defer file.Close()

	writer, err := zstd.NewWriter(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl export: %v\n", err)
		return 1
	}
	if _, err := writer.Write(result); err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl export: writing compressed output: %v\n", err)
		writer.Close()
		return 1
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl export: flushing compressed output: %v\n", err)
		return 1
	}

	fmt.Printf("exported catalog snapshot to %s\n", *out)
	return 0
}
