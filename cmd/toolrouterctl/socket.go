// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/toolrouter/internal/rpcclient"
	"github.com/bureau-foundation/toolrouter/lib/config"
)

// dialDaemon resolves the daemon's Unix socket from the same config file
// toolrouterd loads (TOOLROUTER_CONFIG, or --config when non-empty) and
// connects to it.
func dialDaemon(explicitConfigPath string) (*rpcclient.Client, error) {
	var (
		cfg *config.Config
		err error
	)
	if explicitConfigPath != "" {
		cfg, err = config.LoadFile(explicitConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Transport.Socket == "" {
		return nil, fmt.Errorf("transport.socket is not set in the daemon config; " +
			"toolrouterctl needs a Unix socket, not the default stdio transport")
	}
	return rpcclient.Dial(cfg.Transport.Socket)
}
