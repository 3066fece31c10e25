// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workingset

import (
	"testing"
	"time"

	"github.com/bureau-foundation/toolrouter/lib/clock"
	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
	"github.com/bureau-foundation/toolrouter/lib/toolsearch"
)

// fakeSearchEngine returns a fixed, test-controlled result regardless of
// query text, so tests can drive Update's step 5 deterministically.
type fakeSearchEngine struct {
	result toolsearch.QueryResult
}

func (f *fakeSearchEngine) Query(toolsearch.QueryInput) (toolsearch.QueryResult, error) {
	return f.result, nil
}

// fakeCatalog returns a fixed token cost for known toolIds.
type fakeCatalog struct {
	costs map[string]int
}

func (f *fakeCatalog) GetTool(toolID string) (toolcatalog.ToolCard, bool) {
	cost, ok := f.costs[toolID]
	if !ok {
		return toolcatalog.ToolCard{}, false
	}
	// Encode the desired cost via Description length so
	// estimateToolTokens(card) reproduces it deterministically. The
	// estimated text joins ToolID, ToolName, Title, Description, the
	// effective side effect ("none") and CostHint with single spaces, so
	// it is len(toolID)+9 bytes longer than Description:
	// ceil((len+len(toolID)+9)/4) + 12 == cost  =>  len == (cost-12)*4 - len(toolID) - 9.
	length := (cost-12)*4 - len(toolID) - 9
	if length < 0 {
		length = 0
	}
	return toolcatalog.ToolCard{
		ToolID:      toolID,
		Description: string(make([]byte, length)),
	}, true
}

func newManager(t *testing.T, now time.Time, hits []toolsearch.Hit, costs map[string]int) (*Manager, *clock.FakeClock) {
	t.Helper()
	clk := clock.Fake(now)
	engine := &fakeSearchEngine{result: toolsearch.QueryResult{Hits: hits, Candidates: toolsearch.Candidates{Before: len(hits), After: len(hits)}}}
	catalog := &fakeCatalog{costs: costs}
	policy := Policy{DefaultBudgetTokens: 4000, DefaultTTLMs: 60_000, MaxEntries: 0, DefaultTokenCost: 120}
	return New(clk, engine, catalog, policy), clk
}

func TestUpdateInvariantUsedTokensEqualsSum(t *testing.T) {
	m, _ := newManager(t, time.Unix(1000, 0), []toolsearch.Hit{
		{ToolID: "a", Score: 1}, {ToolID: "b", Score: 2},
	}, map[string]int{"a": 200, "b": 200})

	result, err := m.Update(UpdateInput{SessionID: "s", Query: "x", BudgetTokens: 1000})
	if err != nil {
		t.Fatal(err)
	}

	state := m.Get("s")
	sum := 0
	for _, e := range state.Entries {
		sum += e.TokenCost
	}
	if state.UsedTokens != sum {
		t.Errorf("usedTokens=%d != sum(tokenCost)=%d", state.UsedTokens, sum)
	}
	if result.BudgetUsed != sum {
		t.Errorf("BudgetUsed=%d != sum(tokenCost)=%d", result.BudgetUsed, sum)
	}
}

func TestTokenCostFloorIsEight(t *testing.T) {
	m, _ := newManager(t, time.Unix(0, 0), nil, map[string]int{"tiny": 8})
	cost := m.tokenCostFor("tiny")
	if cost < 8 {
		t.Errorf("tokenCostFor = %d, want >= 8", cost)
	}
	unknown := m.tokenCostFor("does-not-exist")
	if unknown != 120 {
		t.Errorf("unknown tool cost = %d, want default 120", unknown)
	}
}

func TestEvictionUnderBudget(t *testing.T) {
	// A is selected alone in a first update. A second update, one second
	// later and with a 300-token budget, returns both A and B as hits, so
	// both get the same lastSelectedAt (and tie on lastUsedAt and
	// scoreHint); the two 200-token entries overflow the budget and the
	// final toolId tie-break evicts A, leaving B.
	m, clk := newManager(t, time.Unix(1000, 0), []toolsearch.Hit{{ToolID: "a", Score: 1}}, map[string]int{"a": 200, "b": 200})

	if _, err := m.Update(UpdateInput{SessionID: "s", Query: "x", BudgetTokens: 1000}); err != nil {
		t.Fatal(err)
	}

	clk.Advance(time.Second)
	m.searchEngine = &fakeSearchEngine{result: toolsearch.QueryResult{
		Hits: []toolsearch.Hit{{ToolID: "a", Score: 1}, {ToolID: "b", Score: 1}},
	}}

	result, err := m.Update(UpdateInput{SessionID: "s", Query: "x", BudgetTokens: 300})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.SelectedToolIDs) != 1 {
		t.Fatalf("selected = %v, want exactly 1 (budget=300, two 200-token tools)", result.SelectedToolIDs)
	}
	if len(result.RemovedToolIDs) != 1 {
		t.Fatalf("removed = %v, want exactly 1", result.RemovedToolIDs)
	}
	if result.BudgetUsed > 300 {
		t.Errorf("budgetUsed = %d, want <= 300", result.BudgetUsed)
	}
}

func TestPinningOverridesEviction(t *testing.T) {
	m, _ := newManager(t, time.Unix(1000, 0), nil, map[string]int{"a": 200, "b": 200})

	if _, err := m.Update(UpdateInput{SessionID: "s", Query: "", BudgetTokens: 1000, Pin: []string{"a"}}); err != nil {
		t.Fatal(err)
	}

	m.searchEngine = &fakeSearchEngine{result: toolsearch.QueryResult{
		Hits: []toolsearch.Hit{{ToolID: "b", Score: 1}},
	}}
	result, err := m.Update(UpdateInput{SessionID: "s", Query: "x", BudgetTokens: 200})
	if err != nil {
		t.Fatal(err)
	}

	foundA, foundB := false, false
	for _, id := range result.SelectedToolIDs {
		if id == "a" {
			foundA = true
		}
		if id == "b" {
			foundB = true
		}
	}
	if !foundA {
		t.Error("pinned tool 'a' should remain selected despite budget pressure")
	}
	if foundB {
		t.Error("non-pinned tool 'b' should have been evicted to respect the budget")
	}
	// Pinned entries alone (200) fit the 200 budget here, so no
	// documented overflow in this particular case; BudgetUsed should
	// not exceed budgetTotal.
	if result.BudgetUsed > result.BudgetTotal {
		t.Errorf("budgetUsed=%d > budgetTotal=%d", result.BudgetUsed, result.BudgetTotal)
	}
}

func TestPinnedNeverEvictedEvenOverBudget(t *testing.T) {
	m, _ := newManager(t, time.Unix(0, 0), nil, map[string]int{"a": 200, "b": 200})

	if _, err := m.Update(UpdateInput{SessionID: "s", BudgetTokens: 1000, Pin: []string{"a", "b"}}); err != nil {
		t.Fatal(err)
	}

	result, err := m.Update(UpdateInput{SessionID: "s", BudgetTokens: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.RemovedToolIDs) != 0 {
		t.Errorf("removed = %v, want none (both pinned)", result.RemovedToolIDs)
	}
	if len(result.SelectedToolIDs) != 2 {
		t.Errorf("selected = %v, want both pinned tools", result.SelectedToolIDs)
	}
	if result.BudgetUsed <= result.BudgetTotal {
		t.Log("documented overflow case not exercised (used <= total); acceptable but check cost assumptions if this is unexpected")
	}
}

func TestMarkUsedDoesNotEvictOrEnforceBudget(t *testing.T) {
	m, _ := newManager(t, time.Unix(0, 0), nil, map[string]int{"a": 200, "b": 200, "c": 200, "d": 200})

	if _, err := m.Update(UpdateInput{SessionID: "s", BudgetTokens: 10000, Pin: []string{"a", "b", "c", "d"}}); err != nil {
		t.Fatal(err)
	}

	state := m.Get("s")
	before := len(state.Entries)

	m.MarkUsed("s", "e") // unknown tool, no cost info, still gets added

	after := m.Get("s")
	if len(after.Entries) != before+1 {
		t.Errorf("MarkUsed should add an entry without evicting: before=%d after=%d", before, len(after.Entries))
	}
}

func TestResetRemovesSession(t *testing.T) {
	m, _ := newManager(t, time.Unix(0, 0), nil, map[string]int{"a": 200})
	if _, err := m.Update(UpdateInput{SessionID: "s", BudgetTokens: 1000, Pin: []string{"a"}}); err != nil {
		t.Fatal(err)
	}
	if len(m.Get("s").Entries) == 0 {
		t.Fatal("expected entries before reset")
	}
	m.Reset("s")
	if len(m.Get("s").Entries) != 0 {
		t.Error("expected empty state after Reset")
	}
}

func TestTTLExpiryIsLazy(t *testing.T) {
	m, clk := newManager(t, time.Unix(0, 0), []toolsearch.Hit{{ToolID: "a", Score: 1}}, map[string]int{"a": 200})
	m.policy.DefaultTTLMs = 1000

	if _, err := m.Update(UpdateInput{SessionID: "s", Query: "x", BudgetTokens: 1000}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(2 * time.Second)
	m.searchEngine = &fakeSearchEngine{}

	result, err := m.Update(UpdateInput{SessionID: "s", Query: "", BudgetTokens: 1000})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, id := range result.SelectedToolIDs {
		if id == "a" {
			found = true
		}
	}
	if found {
		t.Error("entry 'a' should have expired by TTL after 2s with a 1s TTL")
	}
}
