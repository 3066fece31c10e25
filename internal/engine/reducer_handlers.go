// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"

	"github.com/bureau-foundation/toolrouter/lib/reducer"
	"github.com/bureau-foundation/toolrouter/lib/toolerror"
)

type resultReduceParams struct {
	ToolID string `json:"toolId"`
	Raw    any    `json:"raw"`
}

type resultReduceResult struct {
	Text                  string   `json:"text"`
	Structured            any      `json:"structured,omitempty"`
	HasStructured         bool     `json:"hasStructured"`
	DroppedBytes          int      `json:"droppedBytes"`
	DroppedTokensEstimate int      `json:"droppedTokensEstimate"`
	Notes                 []string `json:"notes,omitempty"`
}

func (e *Engine) resultReduce(raw json.RawMessage) (any, error) {
	var params resultReduceParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}
	if params.ToolID == "" {
		return nil, toolerror.Validation("toolId is required")
	}

	result := reducer.Reduce(params.Raw, e.reducerPolicy)

	return resultReduceResult{
		Text:                  result.Text,
		Structured:            result.Structured,
		HasStructured:         result.HasStructured,
		DroppedBytes:          result.DroppedBytes,
		DroppedTokensEstimate: result.DroppedTokensEstimate,
		Notes:                 result.Notes,
	}, nil
}
