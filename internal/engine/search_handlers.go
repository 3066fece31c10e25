// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"

	"github.com/bureau-foundation/toolrouter/lib/toolerror"
	"github.com/bureau-foundation/toolrouter/lib/toolsearch"
)

type wireFilters struct {
	ServerIDs   []string `json:"serverIds,omitempty"`
	SideEffects []string `json:"sideEffects,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type wireSearchParams struct {
	K1               *float64 `json:"k1,omitempty"`
	B                *float64 `json:"b,omitempty"`
	ExactMatchBoost  *float64 `json:"exactMatchBoost,omitempty"`
	PrefixMatchBoost *float64 `json:"prefixMatchBoost,omitempty"`
	PopularityBoost  *float64 `json:"popularityBoost,omitempty"`
	MinScore         *float64 `json:"minScore,omitempty"`
}

type searchQueryParams struct {
	Query        string             `json:"query"`
	Mode         string             `json:"mode,omitempty"`
	TopK         *int               `json:"topK,omitempty"`
	Filters      *wireFilters       `json:"filters,omitempty"`
	Params       *wireSearchParams  `json:"params,omitempty"`
	FieldWeights map[string]float64 `json:"fieldWeights,omitempty"`
}

type wireHit struct {
	ToolID string  `json:"toolId"`
	Score  float64 `json:"score"`
}

type wireCandidates struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

type searchQueryResult struct {
	Hits       []wireHit      `json:"hits"`
	Candidates wireCandidates `json:"candidates"`
}

func (e *Engine) searchQuery(raw json.RawMessage) (any, error) {
	var params searchQueryParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}

	input := toolsearch.QueryInput{
		Query: params.Query,
		Mode:  toolsearch.Mode(params.Mode),
		TopK:  params.TopK,
	}

	if params.Filters != nil {
		input.Filters = &toolsearch.Filters{
			ServerIDs:   params.Filters.ServerIDs,
			SideEffects: params.Filters.SideEffects,
			Tags:        params.Filters.Tags,
		}
	}

	if params.Params != nil {
		merged := e.search.CurrentParams()
		if params.Params.K1 != nil {
			merged.K1 = *params.Params.K1
		}
		if params.Params.B != nil {
			merged.B = *params.Params.B
		}
		if params.Params.ExactMatchBoost != nil {
			merged.ExactMatchBoost = *params.Params.ExactMatchBoost
		}
		if params.Params.PrefixMatchBoost != nil {
			merged.PrefixMatchBoost = *params.Params.PrefixMatchBoost
		}
		if params.Params.PopularityBoost != nil {
			merged.PopularityBoost = *params.Params.PopularityBoost
		}
		if params.Params.MinScore != nil {
			merged.MinScore = *params.Params.MinScore
		}
		input.Params = &merged
	}

	if params.FieldWeights != nil {
		weights := make(map[toolsearch.Field]float64, len(params.FieldWeights))
		for k, v := range e.search.CurrentFieldWeights() {
			weights[k] = v
		}
		for k, v := range params.FieldWeights {
			weights[toolsearch.Field(k)] = v
		}
		input.FieldWeights = weights
	}

	result, err := e.search.Query(input)
	if err != nil {
		return nil, err
	}

	hits := make([]wireHit, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = wireHit{ToolID: h.ToolID, Score: h.Score}
	}

	return searchQueryResult{
		Hits: hits,
		Candidates: wireCandidates{
			Before: result.Candidates.Before,
			After:  result.Candidates.After,
		},
	}, nil
}
