// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolcatalog

import (
	"reflect"
	"sync"
	"time"

	"github.com/bureau-foundation/toolrouter/lib/clock"
	"github.com/bureau-foundation/toolrouter/lib/hashutil"
	"github.com/bureau-foundation/toolrouter/lib/toolerror"
)

// Catalog stores ToolCards keyed by toolId and derives a ToolSearchDoc for
// each. It is safe for concurrent use; a single mutex guards both maps and
// the version counter so getSnapshot never observes a torn state.
type Catalog struct {
	clock clock.Clock

	mu        sync.RWMutex
	tools     map[string]ToolCard
	docs      map[string]ToolSearchDoc
	version   int64
	updatedAt time.Time
	digest    string
}

// recomputeDigestLocked refreshes c.digest from the current doc set.
// Caller must hold c.mu for writing.
func (c *Catalog) recomputeDigestLocked() {
	canonical := make(map[string]string, len(c.docs))
	for id, doc := range c.docs {
		canonical[id] = canonicalize(doc)
	}
	c.digest = hashutil.ETag(hashutil.DocsetDigest(canonical))
}

// New creates an empty Catalog. clk supplies UpdatedAt timestamps; pass
// clock.Real() in production and clock.Fake(...) in tests that assert on
// timestamps.
func New(clk clock.Clock) *Catalog {
	c := &Catalog{
		clock: clk,
		tools: make(map[string]ToolCard),
		docs:  make(map[string]ToolSearchDoc),
	}
	c.recomputeDigestLocked()
	return c
}

// UpsertTools inserts or overwrites entries by ToolID, rebuilding each
// affected ToolSearchDoc. Version increments and UpdatedAt refreshes only
// if at least one entry actually changed value (a no-op upsert of
// identical cards is not a state change). Returns the number of cards
// processed and a *toolerror.ToolError if any card is malformed.
func (c *Catalog) UpsertTools(cards []ToolCard) (int, error) {
	for _, card := range cards {
		if card.ToolID == "" {
			return 0, toolerror.Validation("tool card missing toolId")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for _, card := range cards {
		existing, ok := c.tools[card.ToolID]
		if !ok || !reflect.DeepEqual(existing, card) {
			changed = true
		}
		c.tools[card.ToolID] = card
		c.docs[card.ToolID] = deriveSearchDoc(card)
	}

	if changed {
		c.version++
		c.updatedAt = c.clock.Now()
		c.recomputeDigestLocked()
	}

	return len(cards), nil
}

// RemoveTools deletes entries by ToolID. Version increments only if at
// least one of the given IDs was actually present.
func (c *Catalog) RemoveTools(toolIDs []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, id := range toolIDs {
		if _, ok := c.tools[id]; ok {
			delete(c.tools, id)
			delete(c.docs, id)
			removed++
		}
	}

	if removed > 0 {
		c.version++
		c.updatedAt = c.clock.Now()
		c.recomputeDigestLocked()
	}

	return removed, nil
}

// Reset clears the catalog entirely. Version increments only if the
// catalog was non-empty beforehand.
func (c *Catalog) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.tools) == 0 {
		return nil
	}

	c.tools = make(map[string]ToolCard)
	c.docs = make(map[string]ToolSearchDoc)
	c.version++
	c.updatedAt = c.clock.Now()
	c.recomputeDigestLocked()

	return nil
}

// Stats returns the current size and last-mutation timestamp. Tools and
// IndexSize are computed from two independently maintained maps, so their
// equality is a real, testable invariant rather than one field aliased
// twice.
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Tools:     len(c.tools),
		IndexSize: len(c.docs),
		UpdatedAt: c.updatedAt,
		Digest:    c.digest,
	}
}

// GetSnapshot returns a consistent, independent copy of the catalog state.
// Mutating the returned maps does not affect the stored catalog, and
// mutating the catalog after this call does not affect the returned value.
func (c *Catalog) GetSnapshot() CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tools := make(map[string]ToolCard, len(c.tools))
	for id, card := range c.tools {
		tools[id] = card
	}
	docs := make(map[string]ToolSearchDoc, len(c.docs))
	for id, doc := range c.docs {
		docs[id] = doc
	}

	return CatalogSnapshot{
		Version:   c.version,
		UpdatedAt: c.updatedAt,
		Digest:    c.digest,
		Tools:     tools,
		Docs:      docs,
	}
}

// GetTool returns a single ToolCard by ID.
func (c *Catalog) GetTool(toolID string) (ToolCard, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	card, ok := c.tools[toolID]
	return card, ok
}

// Version returns the current snapshot version without copying the maps,
// for callers (the search engine's rebuild check) that only need to know
// whether anything changed.
func (c *Catalog) Version() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
