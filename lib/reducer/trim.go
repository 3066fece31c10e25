// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reducer

import "sort"

// truncatedSentinel replaces any map or array whose depth exceeds
// policy.MaxDepth. Primitive values (numbers, strings, bools) at any depth
// pass through unchanged.
const truncatedSentinel = "[Truncated]"

// trimStructured recursively bounds v by depth, and bounds each object's
// key count / array's item count, sorting object keys lexicographically
// before truncating so which keys survive is deterministic. It reports
// whether it changed anything.
func trimStructured(v any, policy Policy) (any, bool) {
	return trimDepth(v, policy, 0)
}

func trimDepth(v any, policy Policy, depth int) (any, bool) {
	switch val := v.(type) {
	case map[string]any:
		if depth > policy.MaxDepth {
			return truncatedSentinel, true
		}
		return trimObject(val, policy, depth)
	case []any:
		if depth > policy.MaxDepth {
			return truncatedSentinel, true
		}
		return trimArray(val, policy, depth)
	default:
		return v, false
	}
}

func trimObject(m map[string]any, policy Policy, depth int) (any, bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trimmed := false
	limit := len(keys)
	if policy.MaxStructuredKeys > 0 && limit > policy.MaxStructuredKeys {
		limit = policy.MaxStructuredKeys
		trimmed = true
	}

	out := make(map[string]any, limit)
	for _, k := range keys[:limit] {
		child, childTrimmed := trimDepth(m[k], policy, depth+1)
		out[k] = child
		trimmed = trimmed || childTrimmed
	}
	return out, trimmed
}

func trimArray(arr []any, policy Policy, depth int) (any, bool) {
	trimmed := false
	limit := len(arr)
	if policy.MaxStructuredItems > 0 && limit > policy.MaxStructuredItems {
		limit = policy.MaxStructuredItems
		trimmed = true
	}

	out := make([]any, limit)
	for i := 0; i < limit; i++ {
		child, childTrimmed := trimDepth(arr[i], policy, depth+1)
		out[i] = child
		trimmed = trimmed || childTrimmed
	}
	return out, trimmed
}
