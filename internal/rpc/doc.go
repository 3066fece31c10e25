// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpc implements a JSON-RPC 2.0 server over newline-delimited
// stdio: each line is either a single request object or a batch array,
// per the JSON-RPC 2.0 spec. Requests without an "id" are notifications
// and never receive a response, including on error.
package rpc
