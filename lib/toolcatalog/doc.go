// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolcatalog stores ToolCards keyed by toolId, derives a
// ToolSearchDoc for each on every upsert, and publishes versioned,
// consistent snapshots to the search engine. It is the authoritative store
// in the retrieval engine: every mutation bumps a monotonic version that
// the search engine watches to decide when its index is stale.
//
// The catalog performs no locking beyond what is needed to keep its own
// state consistent; callers that share one Catalog across goroutines get a
// safe (if serialized) view, per the single-writer, many-reader model of
// the wider engine.
package toolcatalog
