// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolcatalog

import "time"

// SideEffect classifies the destructiveness of invoking a tool.
type SideEffect string

const (
	SideEffectNone        SideEffect = "none"
	SideEffectRead        SideEffect = "read"
	SideEffectWrite       SideEffect = "write"
	SideEffectDestructive SideEffect = "destructive"
)

// CostHint advises callers roughly how expensive a tool call is.
type CostHint string

const (
	CostLow    CostHint = "low"
	CostMedium CostHint = "medium"
	CostHigh   CostHint = "high"
)

// ToolArg describes one argument a tool accepts.
type ToolArg struct {
	Name        string
	Description string
	TypeHint    string
	Required    bool
	Example     string
}

// ToolExample is a sample query paired with an optional call hint, used
// both for documentation and as search-index content.
type ToolExample struct {
	Query    string
	CallHint string
}

// ToolCard is the catalog's structured description of one callable tool.
// ToolID uniquely identifies it, of the form "{serverId}:{toolName}".
type ToolCard struct {
	ToolID   string
	ToolName string
	ServerID string

	Title       string
	Description string

	Tags     []string
	Synonyms []string
	AuthHint []string

	Args     []ToolArg
	Examples []ToolExample

	SideEffect SideEffect

	OpenWorldHint  *bool
	IdempotentHint *bool

	CostHint CostHint

	Popularity *float64
}

// EffectiveSideEffect returns SideEffect, defaulting to SideEffectNone when
// unset, matching the filter semantics in the search engine.
func (c ToolCard) EffectiveSideEffect() SideEffect {
	if c.SideEffect == "" {
		return SideEffectNone
	}
	return c.SideEffect
}

// ToolSearchDoc is the derived, purely textual view of a ToolCard used by
// the search engine. It is recomputed on every upsert; it is never edited
// directly.
type ToolSearchDoc struct {
	ToolID string

	Name        string
	Title       string
	Description string
	Tags        string
	Synonyms    string
	ArgNames    string
	ArgDescs    string
	Examples    string
	ServerID    string

	// SideEffect and Popularity are carried alongside the textual fields
	// because the search engine's filters and popularity boost need them
	// without a second lookup into the catalog.
	SideEffect SideEffect
	Popularity *float64
}

// CatalogSnapshot is an immutable point-in-time view of the catalog. The
// set of keys in Tools and Docs is always identical.
type CatalogSnapshot struct {
	Version   int64
	UpdatedAt time.Time
	Digest    string
	Tools     map[string]ToolCard
	Docs      map[string]ToolSearchDoc
}

// Stats summarizes catalog size. Tools and IndexSize are computed from two
// independent maps so that their equality is an actual invariant check,
// not a tautology.
type Stats struct {
	Tools     int
	IndexSize int
	UpdatedAt time.Time
	Digest    string
}
