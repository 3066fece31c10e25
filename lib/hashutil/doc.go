// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashutil computes content digests for catalog snapshots using
// BLAKE3 with domain separation, so a digest computed over one kind of
// input can never collide with a digest computed over another.
package hashutil
