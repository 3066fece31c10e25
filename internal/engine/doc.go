// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine is the composition root: it wires a toolcatalog.Catalog,
// a toolsearch.Engine, a workingset.Manager, and the reducer package
// together behind the ten JSON-RPC methods of the tool-router surface plus
// the supplemental catalog.export method, translating between wire JSON and each package's native types.
package engine
