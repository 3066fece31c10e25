// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolsearch

import (
	"testing"
	"time"

	"github.com/bureau-foundation/toolrouter/lib/clock"
	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
)

func newSlackCatalog(t *testing.T) *toolcatalog.Catalog {
	t.Helper()
	c := toolcatalog.New(clock.Fake(time.Unix(0, 0)))
	_, err := c.UpsertTools([]toolcatalog.ToolCard{
		{
			ToolID:      "slack:post_message",
			ToolName:    "post_message",
			ServerID:    "slack",
			Description: "Send a message to a channel",
		},
		{
			ToolID:      "slack:search_messages",
			ToolName:    "search_messages",
			ServerID:    "slack",
			Description: "Search past message history in a channel",
		},
	})
	if err != nil {
		t.Fatalf("UpsertTools: %v", err)
	}
	return c
}

func topK(k int) *int { return &k }

func TestBM25ExactNameBoost(t *testing.T) {
	engine := New(newSlackCatalog(t))

	result, err := engine.Query(QueryInput{Query: "post_message", TopK: topK(2)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(result.Hits))
	}
	if result.Hits[0].ToolID != "slack:post_message" {
		t.Fatalf("top hit = %q, want slack:post_message", result.Hits[0].ToolID)
	}

	margin := result.Hits[0].Score - result.Hits[1].Score
	wantMargin := DefaultParams().ExactMatchBoost - DefaultParams().PrefixMatchBoost
	if margin < wantMargin {
		t.Errorf("margin = %v, want >= %v", margin, wantMargin)
	}
}

func TestBM25Filtering(t *testing.T) {
	engine := New(newSlackCatalog(t))

	result, err := engine.Query(QueryInput{
		Query:   "message",
		TopK:    topK(10),
		Filters: &Filters{ServerIDs: []string{"other"}},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(result.Hits) != 0 {
		t.Errorf("hits = %d, want 0", len(result.Hits))
	}
	if result.Candidates.Before != 2 {
		t.Errorf("candidates.before = %d, want 2", result.Candidates.Before)
	}
	if result.Candidates.After != 0 {
		t.Errorf("candidates.after = %d, want 0", result.Candidates.After)
	}
}

func TestBM25EmptyQueryReturnsNoHits(t *testing.T) {
	engine := New(newSlackCatalog(t))

	result, err := engine.Query(QueryInput{Query: "", TopK: topK(10)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(result.Hits) != 0 {
		t.Errorf("hits = %d, want 0", len(result.Hits))
	}
	if result.Candidates.Before != 2 {
		t.Errorf("candidates.before = %d, want 2", result.Candidates.Before)
	}
}

func TestTopKZeroReturnsEmptyHitsButCandidates(t *testing.T) {
	engine := New(newSlackCatalog(t))

	result, err := engine.Query(QueryInput{Query: "message", TopK: topK(0)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if result.Hits == nil {
		t.Error("hits should be non-nil empty slice")
	}
	if len(result.Hits) != 0 {
		t.Errorf("hits = %d, want 0", len(result.Hits))
	}
	if result.Candidates.After == 0 {
		t.Error("candidates.after should reflect documents that pass threshold even with topK=0")
	}
}

func TestBM25ScoringIsStable(t *testing.T) {
	engine := New(newSlackCatalog(t))

	first, err := engine.Query(QueryInput{Query: "message", TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Query(QueryInput{Query: "message", TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Hits) != len(second.Hits) {
		t.Fatalf("hit counts differ: %d vs %d", len(first.Hits), len(second.Hits))
	}
	for i := range first.Hits {
		if first.Hits[i] != second.Hits[i] {
			t.Errorf("hit %d differs: %+v vs %+v", i, first.Hits[i], second.Hits[i])
		}
	}
}

func TestTieBreakByToolIDAscending(t *testing.T) {
	c := toolcatalog.New(clock.Fake(time.Unix(0, 0)))
	if _, err := c.UpsertTools([]toolcatalog.ToolCard{
		{ToolID: "z:tool", ToolName: "widget", ServerID: "z"},
		{ToolID: "a:tool", ToolName: "widget", ServerID: "a"},
	}); err != nil {
		t.Fatal(err)
	}
	engine := New(c)

	result, err := engine.Query(QueryInput{Query: "widget", TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(result.Hits))
	}
	if result.Hits[0].Score != result.Hits[1].Score {
		t.Fatalf("expected tied scores, got %v vs %v", result.Hits[0].Score, result.Hits[1].Score)
	}
	if result.Hits[0].ToolID != "a:tool" {
		t.Errorf("tie-break winner = %q, want a:tool", result.Hits[0].ToolID)
	}
}

func TestRegexModeMatchesAcrossFields(t *testing.T) {
	c := toolcatalog.New(clock.Fake(time.Unix(0, 0)))
	if _, err := c.UpsertTools([]toolcatalog.ToolCard{
		{ToolID: "gh:create_issue", ToolName: "create_issue", ServerID: "gh", Title: "Create Issue", Description: "Opens a new GitHub issue"},
		{ToolID: "gh:list_repos", ToolName: "list_repos", ServerID: "gh", Description: "Lists repositories"},
	}); err != nil {
		t.Fatal(err)
	}
	engine := New(c)

	result, err := engine.Query(QueryInput{Query: "^create", Mode: ModeRegex, TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Hits) != 1 || result.Hits[0].ToolID != "gh:create_issue" {
		t.Fatalf("hits = %+v, want single hit gh:create_issue", result.Hits)
	}
}

func TestRegexModeInvalidPatternFallsBackToLiteral(t *testing.T) {
	c := toolcatalog.New(clock.Fake(time.Unix(0, 0)))
	if _, err := c.UpsertTools([]toolcatalog.ToolCard{
		{ToolID: "gh:weird", ToolName: "weird(tool", ServerID: "gh"},
	}); err != nil {
		t.Fatal(err)
	}
	engine := New(c)

	result, err := engine.Query(QueryInput{Query: "weird(tool", Mode: ModeRegex, TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Hits) != 1 {
		t.Fatalf("hits = %d, want 1 (literal fallback should match)", len(result.Hits))
	}
}

func TestIndexRebuildsOnVersionChange(t *testing.T) {
	c := toolcatalog.New(clock.Fake(time.Unix(0, 0)))
	engine := New(c)

	result, err := engine.Query(QueryInput{Query: "anything", TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Candidates.Before != 0 {
		t.Fatalf("candidates.before = %d, want 0", result.Candidates.Before)
	}

	if _, err := c.UpsertTools([]toolcatalog.ToolCard{
		{ToolID: "x:y", ToolName: "anything", ServerID: "x"},
	}); err != nil {
		t.Fatal(err)
	}

	result, err = engine.Query(QueryInput{Query: "anything", TopK: topK(10)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Candidates.Before != 1 {
		t.Fatalf("candidates.before after upsert = %d, want 1 (index should have rebuilt)", result.Candidates.Before)
	}
}
