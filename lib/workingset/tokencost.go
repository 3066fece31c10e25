// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workingset

import (
	"math"
	"strings"

	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
)

// ToolLookup is the narrow catalog capability the working-set manager
// needs: resolving a toolId to its card for token-cost estimation. It is
// satisfied by *toolcatalog.Catalog without workingset importing more of
// that package's surface than it uses.
type ToolLookup interface {
	GetTool(toolID string) (toolcatalog.ToolCard, bool)
}

// estimateToolTokens implements the token-cost estimate of §4.5: it
// concatenates the tool's identifying and descriptive text, computes
// ceil(utf8ByteLength/4), and floors the result at 8 plus a 12-token
// serialization overhead allowance.
func estimateToolTokens(card toolcatalog.ToolCard) int {
	var parts []string
	parts = append(parts, card.ToolID, card.ToolName, card.Title, card.Description)
	parts = append(parts, card.Tags...)
	parts = append(parts, card.Synonyms...)
	parts = append(parts, card.AuthHint...)
	for _, arg := range card.Args {
		parts = append(parts, arg.Name, arg.Description, arg.TypeHint, arg.Example)
	}
	for _, ex := range card.Examples {
		parts = append(parts, ex.Query, ex.CallHint)
	}
	parts = append(parts, string(card.EffectiveSideEffect()), string(card.CostHint))

	text := strings.Join(parts, " ")
	estimate := int(math.Ceil(float64(len(text)) / 4))

	total := estimate + 12
	if total < 8 {
		total = 8
	}
	return total
}

// tokenCostFor resolves a toolId's estimated token cost: the catalog's
// estimate when the tool is known, otherwise the configured default.
func (m *Manager) tokenCostFor(toolID string) int {
	if m.catalog != nil {
		if card, ok := m.catalog.GetTool(toolID); ok {
			return estimateToolTokens(card)
		}
	}
	return m.policy.DefaultTokenCost
}
