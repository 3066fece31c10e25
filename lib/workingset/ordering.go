// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workingset

import "sort"

// scoreHintValue returns e.ScoreHint dereferenced, or 0 if absent.
func scoreHintValue(e WorkingSetEntry) float64 {
	if e.ScoreHint == nil {
		return 0
	}
	return *e.ScoreHint
}

// pickEvictionCandidate returns the toolId of the worst-ranked non-pinned
// entry (eviction-candidate ranking, §4.5: lastSelectedAt asc, then
// lastUsedAt asc, then scoreHint asc, then toolId asc — the first entry in
// that order is evicted first). Returns ok=false when every entry is
// pinned.
func pickEvictionCandidate(entries map[string]WorkingSetEntry) (string, bool) {
	var candidates []WorkingSetEntry
	for _, e := range entries {
		if !e.Pinned {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.LastSelectedAt != b.LastSelectedAt {
			return a.LastSelectedAt < b.LastSelectedAt
		}
		if a.LastUsedAt != b.LastUsedAt {
			return a.LastUsedAt < b.LastUsedAt
		}
		if scoreHintValue(a) != scoreHintValue(b) {
			return scoreHintValue(a) < scoreHintValue(b)
		}
		return a.ToolID < b.ToolID
	})

	return candidates[0].ToolID, true
}

// selectionOrder returns every entry's toolId ordered for return to the
// caller: pinned first, then lastSelectedAt desc, lastUsedAt desc,
// scoreHint desc, toolId asc.
func selectionOrder(entries map[string]WorkingSetEntry) []string {
	all := make([]WorkingSetEntry, 0, len(entries))
	for _, e := range entries {
		all = append(all, e)
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Pinned != b.Pinned {
			return a.Pinned // pinned (true) sorts before non-pinned (false)
		}
		if a.LastSelectedAt != b.LastSelectedAt {
			return a.LastSelectedAt > b.LastSelectedAt
		}
		if a.LastUsedAt != b.LastUsedAt {
			return a.LastUsedAt > b.LastUsedAt
		}
		if scoreHintValue(a) != scoreHintValue(b) {
			return scoreHintValue(a) > scoreHintValue(b)
		}
		return a.ToolID < b.ToolID
	})

	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.ToolID
	}
	return ids
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sumTokenCost(entries map[string]WorkingSetEntry) int {
	total := 0
	for _, e := range entries {
		total += e.TokenCost
	}
	return total
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
