// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolsearch

import (
	"sort"
	"strings"
	"sync"

	"github.com/bureau-foundation/toolrouter/lib/tokenize"
	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
	"github.com/bureau-foundation/toolrouter/lib/toolerror"
)

// Catalog is the subset of *toolcatalog.Catalog the engine depends on. The
// working-set manager follows the same pattern with its own narrow
// ToolLookup interface (see lib/workingset), which is the "small interface with a dispatcher" design
// note in the spec's polymorphic-search-engine guidance: the engine and its
// callers are decoupled from the concrete catalog type.
type Catalog interface {
	GetSnapshot() toolcatalog.CatalogSnapshot
	Version() int64
}

// Engine is the field-weighted BM25 + regex search engine. It caches an
// index built from the catalog's snapshot and rebuilds it lazily whenever
// the observed version changes. Engine is safe for concurrent use.
type Engine struct {
	catalog      Catalog
	tokenOpts    tokenize.Options
	params       Params
	fieldWeights map[Field]float64

	mu    sync.Mutex
	cache *index
}

// New creates an Engine over catalog using the spec's default parameters
// and field weights. Use the With* options to override before first use.
func New(catalog Catalog) *Engine {
	return &Engine{
		catalog:      catalog,
		tokenOpts:    tokenize.DefaultOptions(),
		params:       DefaultParams(),
		fieldWeights: DefaultFieldWeights(),
	}
}

// WithParams overrides the engine's default BM25 parameters.
func (e *Engine) WithParams(p Params) *Engine {
	e.params = p
	return e
}

// WithFieldWeights overrides the engine's default per-field weights.
func (e *Engine) WithFieldWeights(w map[Field]float64) *Engine {
	e.fieldWeights = w
	return e
}

// CurrentParams returns the engine's configured default BM25 parameters,
// for callers merging a partial per-query override on top of them.
func (e *Engine) CurrentParams() Params {
	return e.params
}

// CurrentFieldWeights returns the engine's configured default field
// weights, for callers merging a partial per-query override on top of
// them.
func (e *Engine) CurrentFieldWeights() map[Field]float64 {
	return e.fieldWeights
}

// currentIndex returns the cached index, rebuilding it first if the
// catalog's version has advanced since the last build. Rebuild-and-swap
// happens under the engine's lock so concurrent queries never observe a
// half-built index.
func (e *Engine) currentIndex() *index {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cache != nil && e.cache.version == e.catalog.Version() {
		return e.cache
	}

	snapshot := e.catalog.GetSnapshot()
	e.cache = buildIndex(snapshot, e.tokenOpts)
	return e.cache
}

// Query dispatches to BM25 or regex scoring based on input.Mode (default
// ModeBM25), applies filters, and returns ranked hits with candidate
// counts.
func (e *Engine) Query(input QueryInput) (QueryResult, error) {
	if input.Filters != nil {
		for _, se := range input.Filters.SideEffects {
			switch toolcatalog.SideEffect(strings.ToLower(se)) {
			case toolcatalog.SideEffectNone, toolcatalog.SideEffectRead,
				toolcatalog.SideEffectWrite, toolcatalog.SideEffectDestructive:
			default:
				return QueryResult{}, toolerror.Validation("unknown sideEffect filter value %q", se)
			}
		}
	}

	mode := input.Mode
	if mode == "" {
		mode = ModeBM25
	}

	idx := e.currentIndex()

	resolvedTopK := e.params.DefaultTopK
	if input.TopK != nil {
		resolvedTopK = *input.TopK
	}

	filtered := filterDocs(idx, input.Filters)

	switch mode {
	case ModeBM25:
		return e.queryBM25(idx, input, filtered, resolvedTopK)
	case ModeRegex:
		return queryRegex(idx, input.Query, filtered, resolvedTopK)
	default:
		return QueryResult{}, toolerror.Validation("unknown search mode %q", mode)
	}
}

// filterDocs returns the toolIDs (in idx.docOrder order) that pass the
// given filters. A nil or all-empty Filters passes everything.
func filterDocs(idx *index, filters *Filters) []string {
	if filters == nil || (len(filters.ServerIDs) == 0 && len(filters.SideEffects) == 0 && len(filters.Tags) == 0) {
		return idx.docOrder
	}

	serverIDs := lowerSet(filters.ServerIDs)
	sideEffects := lowerSet(filters.SideEffects)
	tags := lowerSet(filters.Tags)

	var out []string
	for _, id := range idx.docOrder {
		d := idx.docs[id]
		if len(serverIDs) > 0 {
			if _, ok := serverIDs[strings.ToLower(d.serverID)]; !ok {
				continue
			}
		}
		if len(sideEffects) > 0 {
			effective := d.sideEffect
			if effective == "" {
				effective = toolcatalog.SideEffectNone
			}
			if _, ok := sideEffects[strings.ToLower(string(effective))]; !ok {
				continue
			}
		}
		if len(tags) > 0 {
			if !hasAnyTag(d.tags, tags) {
				continue
			}
		}
		out = append(out, id)
	}
	return out
}

func hasAnyTag(tags []string, wanted map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := wanted[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// sortHits orders hits by score descending, ties broken by toolId
// ascending — the tie-break used by both BM25 and regex modes.
func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ToolID < hits[j].ToolID
	})
}

// truncateTopK returns hits truncated to topK. topK <= 0 always yields an
// empty (but non-nil-typed) slice; the caller still reports candidates.
func truncateTopK(hits []Hit, topK int) []Hit {
	if topK <= 0 {
		return []Hit{}
	}
	if topK < len(hits) {
		return hits[:topK]
	}
	return hits
}
