// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"log/slog"

	"github.com/bureau-foundation/toolrouter/internal/rpc"
	"github.com/bureau-foundation/toolrouter/lib/reducer"
	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
	"github.com/bureau-foundation/toolrouter/lib/toolsearch"
	"github.com/bureau-foundation/toolrouter/lib/workingset"
)

// Engine is the composition root binding the catalog, search engine,
// working-set manager, and result reducer to the JSON-RPC method surface.
type Engine struct {
	catalog       *toolcatalog.Catalog
	search        *toolsearch.Engine
	workingSet    *workingset.Manager
	reducerPolicy reducer.Policy
	log           *slog.Logger
}

// New wires the four core components into an Engine.
func New(catalog *toolcatalog.Catalog, search *toolsearch.Engine, ws *workingset.Manager, reducerPolicy reducer.Policy, log *slog.Logger) *Engine {
	return &Engine{
		catalog:       catalog,
		search:        search,
		workingSet:    ws,
		reducerPolicy: reducerPolicy,
		log:           log,
	}
}

// Register installs every method the tool-router surface exposes onto
// server. Method names follow the "namespace.verb" convention of §6.
// catalog.export is the one addition beyond §6's table, used only by
// toolrouterctl export to dump a debug snapshot.
func (e *Engine) Register(server *rpc.Server) {
	server.Register("catalog.upsertTools", e.catalogUpsertTools)
	server.Register("catalog.removeTools", e.catalogRemoveTools)
	server.Register("catalog.reset", e.catalogReset)
	server.Register("catalog.stats", e.catalogStats)
	server.Register("catalog.export", e.catalogExport)
	server.Register("search.query", e.searchQuery)
	server.Register("ws.get", e.wsGet)
	server.Register("ws.update", e.wsUpdate)
	server.Register("ws.markUsed", e.wsMarkUsed)
	server.Register("ws.reset", e.wsReset)
	server.Register("result.reduce", e.resultReduce)
}
