// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolsearch implements the search engine: a field-weighted BM25
// index over the catalog's ToolSearchDocs, plus a regex scanning mode, both
// reachable through one Engine.Query dispatcher keyed by Mode. The engine
// caches its index and rebuilds it lazily whenever the observed catalog
// snapshot version changes; callers never need to invalidate it manually.
package toolsearch
