// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bm25 provides the pure scoring primitives of the Okapi BM25
// ranking function: inverse document frequency and the per-term score
// contribution. It holds no documents and no index; lib/toolsearch owns the
// per-field inverted index and calls into this package once per
// (query token, field) pair.
//
// Splitting the math out this way lets the field-weighted engine in
// lib/toolsearch sum contributions across nine independently-weighted
// fields without duplicating the k1/b tuning formula nine times.
package bm25
