// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workingset implements the per-session working-set manager: a
// pinning, TTL-expiry, and token-budget-aware shortlist of tools considered
// "live" for a session. State is partitioned by sessionId; there is no
// cross-session interaction, and there are no background timers — TTL
// expiry is evaluated lazily inside Update, per the engine's synchronous,
// single-writer-many-reader concurrency model.
package workingset
