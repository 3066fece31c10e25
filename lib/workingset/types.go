// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workingset

// WorkingSetEntry is one tool's state within a session's working set.
// LastUsedAt and LastSelectedAt are monotonic millisecond timestamps; 0
// means "never". TTLMs of 0 means the entry never expires by TTL (only
// eviction or explicit unpin+cap/budget pressure can remove it).
type WorkingSetEntry struct {
	ToolID         string
	Pinned         bool
	LastUsedAt     int64
	LastSelectedAt int64
	TTLMs          int64
	TokenCost      int
	ScoreHint      *float64
}

// WorkingSetState is one session's working set.
type WorkingSetState struct {
	SessionID    string
	Entries      map[string]WorkingSetEntry
	BudgetTokens int
	UsedTokens   int
}

// Policy configures the manager's defaults. All fields are the
// "configurable, defaults given" knobs from spec §4.5.
type Policy struct {
	// DefaultBudgetTokens is used for a session's first Get before any
	// Update has set an explicit budget.
	DefaultBudgetTokens int

	// DefaultTTLMs is applied to every entry created by a pin or a
	// search hit.
	DefaultTTLMs int64

	// MaxEntries caps the number of entries per session. 0 disables the
	// cap.
	MaxEntries int

	// DefaultTokenCost is used for toolIds the catalog does not
	// recognize.
	DefaultTokenCost int
}

// DefaultPolicy returns reasonable defaults grounded in the spec's
// worked examples (§8 scenario 3 uses a 300-token budget against two
// 200-token tools).
func DefaultPolicy() Policy {
	return Policy{
		DefaultBudgetTokens: 4000,
		DefaultTTLMs:        30 * 60 * 1000,
		MaxEntries:          200,
		DefaultTokenCost:    120,
	}
}

// UpdateInput is the parameters of one Update call.
type UpdateInput struct {
	SessionID    string
	Query        string
	BudgetTokens int
	TopK         *int
	Pin          []string
	Unpin        []string
	Mode         string
}

// UpdateResult is the outcome of one Update call.
type UpdateResult struct {
	SelectedToolIDs []string
	AddedToolIDs    []string
	RemovedToolIDs  []string
	BudgetUsed      int
	BudgetTotal     int
}
