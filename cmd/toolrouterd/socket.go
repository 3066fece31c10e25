// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"log/slog"
	"net"
	"os"

	"github.com/bureau-foundation/toolrouter/internal/rpc"
)

// serveSocket listens on a Unix socket and serves each accepted connection
// with its own newline-delimited JSON-RPC session, concurrently. Unlike
// the stdio path (one caller for the process lifetime), a socket may serve
// several toolrouterctl invocations or MCP-gateway processes at once; the
// core components underneath (Catalog, Engine, working-set Manager) are
// already safe for concurrent use.
func serveSocket(socketPath string, server *rpc.Server, log *slog.Logger) error {
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return err
	}
	defer listener.Close()

	log.Info("listening on unix socket", "path", socketPath)
	return serveListener(listener, server, log)
}

// serveListener runs the accept loop over an already-bound listener. It is
// split out from serveSocket so tests can drive it against a listener they
// control and stop by closing it, without touching the filesystem.
func serveListener(listener net.Listener, server *rpc.Server, log *slog.Logger) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go func() {
			defer conn.Close()
			if err := server.Serve(conn, conn); err != nil {
				log.Warn("connection ended", "error", err)
			}
		}()
	}
}
