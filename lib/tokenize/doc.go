// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenize implements the deterministic text normalization and
// tokenization shared by the catalog's search-document derivation and the
// search engine's query path. Every exported function is pure: the same
// (text, options) input produces the same output on every run and every
// platform.
//
// Known limitation, preserved rather than fixed: normalization strips any
// character outside [a-z0-9] after lowercasing, so non-ASCII input —
// including CJK text — normalizes to an empty token sequence. Callers that
// need multilingual matching must pre-process before handing text to this
// package.
package tokenize
