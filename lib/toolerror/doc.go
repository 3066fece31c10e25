// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolerror provides the categorized error type shared across the
// catalog, search engine, working-set manager, and result reducer. Every
// error the core surfaces to a caller carries one of a small, closed set of
// categories so that a transport layer (the JSON-RPC server in
// internal/rpc) can map it to a wire error code without inspecting
// message text.
package toolerror
