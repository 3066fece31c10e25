// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/bureau-foundation/toolrouter/lib/toolerror"
	"github.com/bureau-foundation/toolrouter/lib/workingset"
)

type wireWorkingSetEntry struct {
	ToolID         string   `json:"toolId"`
	Pinned         bool     `json:"pinned"`
	LastUsedAt     int64    `json:"lastUsedAt,omitempty"`
	LastSelectedAt int64    `json:"lastSelectedAt,omitempty"`
	TTLMs          int64    `json:"ttlMs,omitempty"`
	TokenCost      int      `json:"tokenCost"`
	ScoreHint      *float64 `json:"scoreHint,omitempty"`
}

type wireWorkingSetState struct {
	SessionID    string                `json:"sessionId"`
	Entries      []wireWorkingSetEntry `json:"entries"`
	BudgetTokens int                   `json:"budgetTokens"`
	UsedTokens   int                   `json:"usedTokens"`
}

func toWireState(state workingset.WorkingSetState) wireWorkingSetState {
	entries := make([]wireWorkingSetEntry, 0, len(state.Entries))
	for _, e := range state.Entries {
		entries = append(entries, wireWorkingSetEntry{
			ToolID: e.ToolID, Pinned: e.Pinned,
			LastUsedAt: e.LastUsedAt, LastSelectedAt: e.LastSelectedAt,
			TTLMs: e.TTLMs, TokenCost: e.TokenCost, ScoreHint: e.ScoreHint,
		})
	}
	return wireWorkingSetState{
		SessionID: state.SessionID, Entries: entries,
		BudgetTokens: state.BudgetTokens, UsedTokens: state.UsedTokens,
	}
}

type sessionParams struct {
	SessionID string `json:"sessionId"`
}

func (e *Engine) wsGet(raw json.RawMessage) (any, error) {
	var params sessionParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}
	if params.SessionID == "" {
		params.SessionID = uuid.NewString()
	}
	return toWireState(e.workingSet.Get(params.SessionID)), nil
}

type wsUpdateParams struct {
	SessionID    string   `json:"sessionId"`
	Query        string   `json:"query"`
	BudgetTokens int      `json:"budgetTokens"`
	TopK         *int     `json:"topK,omitempty"`
	Pin          []string `json:"pin,omitempty"`
	Unpin        []string `json:"unpin,omitempty"`
	Mode         string   `json:"mode,omitempty"`
}

type wsUpdateResult struct {
	SessionID       string   `json:"sessionId"`
	SelectedToolIDs []string `json:"selectedToolIds"`
	AddedToolIDs    []string `json:"addedToolIds"`
	RemovedToolIDs  []string `json:"removedToolIds"`
	BudgetUsed      int      `json:"budgetUsed"`
	BudgetTotal     int      `json:"budgetTotal"`
}

// wsUpdate generates a fresh sessionId when the caller omits one, so a
// client can start a working set without a prior handshake. The core
// Working-Set Manager itself treats sessionId as an opaque caller-supplied
// string; the UUID generation lives here at the transport boundary.
func (e *Engine) wsUpdate(raw json.RawMessage) (any, error) {
	var params wsUpdateParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}
	if params.SessionID == "" {
		params.SessionID = uuid.NewString()
	}

	result, err := e.workingSet.Update(workingset.UpdateInput{
		SessionID: params.SessionID, Query: params.Query,
		BudgetTokens: params.BudgetTokens, TopK: params.TopK,
		Pin: params.Pin, Unpin: params.Unpin, Mode: params.Mode,
	})
	if err != nil {
		return nil, err
	}

	return wsUpdateResult{
		SessionID:       params.SessionID,
		SelectedToolIDs: result.SelectedToolIDs,
		AddedToolIDs:    result.AddedToolIDs,
		RemovedToolIDs:  result.RemovedToolIDs,
		BudgetUsed:      result.BudgetUsed,
		BudgetTotal:     result.BudgetTotal,
	}, nil
}

type wsMarkUsedParams struct {
	SessionID string `json:"sessionId"`
	ToolID    string `json:"toolId"`
}

func (e *Engine) wsMarkUsed(raw json.RawMessage) (any, error) {
	var params wsMarkUsedParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}
	if params.SessionID == "" || params.ToolID == "" {
		return nil, toolerror.Validation("sessionId and toolId are required")
	}
	e.workingSet.MarkUsed(params.SessionID, params.ToolID)
	return toWireState(e.workingSet.Get(params.SessionID)), nil
}

func (e *Engine) wsReset(raw json.RawMessage) (any, error) {
	var params sessionParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}
	e.workingSet.Reset(params.SessionID)
	return struct{}{}, nil
}
