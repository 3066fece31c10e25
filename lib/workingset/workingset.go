// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workingset

import (
	"sync"

	"github.com/bureau-foundation/toolrouter/lib/clock"
	"github.com/bureau-foundation/toolrouter/lib/toolerror"
	"github.com/bureau-foundation/toolrouter/lib/toolsearch"
)

// SearchEngine is the narrow capability the manager needs from the search
// engine: query(input) -> result. Per the spec's polymorphic-search-engine
// design note, the manager depends on this interface, not on
// *toolsearch.Engine directly.
type SearchEngine interface {
	Query(input toolsearch.QueryInput) (toolsearch.QueryResult, error)
}

// Manager is the per-session working-set manager. It holds no catalog
// mutation capability of its own; it queries a SearchEngine and reads
// token-cost estimates from a ToolLookup.
type Manager struct {
	clock        clock.Clock
	searchEngine SearchEngine
	catalog      ToolLookup
	policy       Policy

	mu       sync.Mutex
	sessions map[string]*WorkingSetState
}

// New creates a Manager. clk supplies "now" for TTL expiry and timestamp
// ordering; searchEngine backs step 5 of Update; catalog backs token-cost
// estimation. catalog may be nil, in which case every entry gets
// policy.DefaultTokenCost.
func New(clk clock.Clock, searchEngine SearchEngine, catalog ToolLookup, policy Policy) *Manager {
	return &Manager{
		clock:        clk,
		searchEngine: searchEngine,
		catalog:      catalog,
		policy:       policy,
		sessions:     make(map[string]*WorkingSetState),
	}
}

// sessionLocked returns the session state, creating an empty one with the
// configured default budget on first access. Caller must hold m.mu.
func (m *Manager) sessionLocked(sessionID string) *WorkingSetState {
	state, ok := m.sessions[sessionID]
	if !ok {
		state = &WorkingSetState{
			SessionID:    sessionID,
			Entries:      make(map[string]WorkingSetEntry),
			BudgetTokens: m.policy.DefaultBudgetTokens,
		}
		m.sessions[sessionID] = state
	}
	return state
}

func copyState(state *WorkingSetState) WorkingSetState {
	entries := make(map[string]WorkingSetEntry, len(state.Entries))
	for id, e := range state.Entries {
		entries[id] = e
	}
	return WorkingSetState{
		SessionID:    state.SessionID,
		Entries:      entries,
		BudgetTokens: state.BudgetTokens,
		UsedTokens:   state.UsedTokens,
	}
}

// Get returns a defensive copy of the session's state, creating an empty
// one on first reference.
func (m *Manager) Get(sessionID string) WorkingSetState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(m.sessionLocked(sessionID))
}

// Reset removes all state for sessionID. A subsequent Get or Update
// creates a fresh session as if it had never been referenced.
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// MarkUsed sets both LastUsedAt and LastSelectedAt to now for toolID,
// creating a non-pinned entry if absent. It never triggers eviction or
// budget enforcement, per §4.5's explicit carve-out.
func (m *Manager) MarkUsed(sessionID, toolID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.sessionLocked(sessionID)
	now := m.clock.Now().UnixMilli()

	entry, ok := state.Entries[toolID]
	if !ok {
		entry = WorkingSetEntry{
			ToolID:    toolID,
			TokenCost: m.tokenCostFor(toolID),
			TTLMs:     m.policy.DefaultTTLMs,
		}
	}
	entry.LastUsedAt = now
	entry.LastSelectedAt = now
	state.Entries[toolID] = entry
	state.UsedTokens = sumTokenCost(state.Entries)
}

// Update executes the nine-step algorithm of §4.5 in order: resolve
// session, apply pins, apply unpins, expire by TTL, query the search
// engine, enforce the max-entries cap, enforce the token budget, compute
// selection order, and finalize added/removed/budget accounting.
func (m *Manager) Update(input UpdateInput) (UpdateResult, error) {
	if input.SessionID == "" {
		return UpdateResult{}, toolerror.Validation("update requires a sessionId")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now().UnixMilli()
	state := m.sessionLocked(input.SessionID)

	added := make(map[string]bool)
	removed := make(map[string]bool)

	// 1. Resolve session.
	state.BudgetTokens = input.BudgetTokens

	// 2. Apply pins.
	for _, id := range input.Pin {
		if entry, ok := state.Entries[id]; ok {
			entry.Pinned = true
			entry.LastSelectedAt = now
			state.Entries[id] = entry
			continue
		}
		state.Entries[id] = WorkingSetEntry{
			ToolID:         id,
			Pinned:         true,
			LastSelectedAt: now,
			TokenCost:      m.tokenCostFor(id),
			TTLMs:          m.policy.DefaultTTLMs,
		}
		added[id] = true
	}

	// 3. Apply unpins.
	for _, id := range input.Unpin {
		if entry, ok := state.Entries[id]; ok {
			entry.Pinned = false
			state.Entries[id] = entry
		}
	}

	// 4. Expire by TTL.
	for id, entry := range state.Entries {
		if entry.Pinned || entry.TTLMs <= 0 {
			continue
		}
		lastActivity := maxInt64(entry.LastUsedAt, entry.LastSelectedAt)
		if now-lastActivity > entry.TTLMs {
			delete(state.Entries, id)
			delete(added, id)
			removed[id] = true
		}
	}

	// 5. Query the search engine (no filters at this layer).
	if m.searchEngine != nil {
		result, err := m.searchEngine.Query(toolsearch.QueryInput{
			Query: input.Query,
			Mode:  toolsearch.Mode(input.Mode),
			TopK:  input.TopK,
		})
		if err != nil {
			return UpdateResult{}, err
		}
		for _, hit := range result.Hits {
			score := hit.Score
			if entry, ok := state.Entries[hit.ToolID]; ok {
				entry.LastSelectedAt = now
				entry.ScoreHint = &score
				state.Entries[hit.ToolID] = entry
				continue
			}
			state.Entries[hit.ToolID] = WorkingSetEntry{
				ToolID:         hit.ToolID,
				LastSelectedAt: now,
				TokenCost:      m.tokenCostFor(hit.ToolID),
				TTLMs:          m.policy.DefaultTTLMs,
				ScoreHint:      &score,
			}
			added[hit.ToolID] = true
		}
	}

	// 6. Enforce max-entries cap.
	if m.policy.MaxEntries > 0 {
		for len(state.Entries) > m.policy.MaxEntries {
			victim, ok := pickEvictionCandidate(state.Entries)
			if !ok {
				break
			}
			delete(state.Entries, victim)
			delete(added, victim)
			removed[victim] = true
		}
	}

	// 7. Enforce budget.
	used := sumTokenCost(state.Entries)
	for used > state.BudgetTokens {
		victim, ok := pickEvictionCandidate(state.Entries)
		if !ok {
			break
		}
		used -= state.Entries[victim].TokenCost
		delete(state.Entries, victim)
		delete(added, victim)
		removed[victim] = true
	}
	state.UsedTokens = used

	// 8. Compute selection order.
	selected := selectionOrder(state.Entries)

	// 9. Finalize.
	return UpdateResult{
		SelectedToolIDs: selected,
		AddedToolIDs:    sortedKeys(added),
		RemovedToolIDs:  sortedKeys(removed),
		BudgetUsed:      used,
		BudgetTotal:     state.BudgetTokens,
	}, nil
}
