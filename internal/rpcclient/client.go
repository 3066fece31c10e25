// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpcclient is a minimal JSON-RPC 2.0 client for the toolrouterd
// Unix-socket transport, used only by cmd/toolrouterctl. It speaks the
// same newline-delimited request/response framing as internal/rpc.Server.
package rpcclient

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"

	"github.com/bureau-foundation/toolrouter/internal/rpc"
)

// Client is a single connection to a toolrouterd Unix socket. It is not
// safe for concurrent use; callers issue one request at a time.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
	nextID  int
}

// Dial connects to the toolrouterd JSON-RPC socket at socketPath.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", socketPath, err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Client{conn: conn, scanner: scanner}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Call sends a single JSON-RPC request and waits for its response. params
// is marshaled as-is; pass nil for an empty params object.
func (c *Client) Call(method string, params any) (json.RawMessage, error) {
	c.nextID++

	paramBytes, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding params for %s: %w", method, err)
	}
	if params == nil {
		paramBytes = []byte("{}")
	}

	req := struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      int             `json:"id"`
	}{JSONRPC: "2.0", Method: method, Params: paramBytes, ID: c.nextID}

	line, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request for %s: %w", method, err)
	}
	line = append(line, '\n')

	if _, err := c.conn.Write(line); err != nil {
		return nil, fmt.Errorf("writing request for %s: %w", method, err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading response for %s: %w", method, err)
		}
		return nil, fmt.Errorf("connection closed before response for %s", method)
	}

	var resp rpc.Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decoding response for %s: %w", method, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s (code %d)", method, resp.Error.Message, resp.Error.Code)
	}
	return resp.Result, nil
}
