// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/bureau-foundation/toolrouter/lib/config"
	"github.com/bureau-foundation/toolrouter/lib/reducer"
	"github.com/bureau-foundation/toolrouter/lib/toolsearch"
)

func searchParamsFromConfig(cfg config.SearchConfig) toolsearch.Params {
	params := toolsearch.DefaultParams()
	params.K1 = cfg.K1
	params.B = cfg.B
	params.ExactMatchBoost = cfg.ExactMatchBoost
	params.PrefixMatchBoost = cfg.PrefixMatchBoost
	params.PopularityBoost = cfg.PopularityBoost
	params.MinScore = cfg.MinScore
	return params
}

func fieldWeightsFromConfig(weights map[string]float64) map[toolsearch.Field]float64 {
	if len(weights) == 0 {
		return toolsearch.DefaultFieldWeights()
	}
	out := make(map[toolsearch.Field]float64, len(weights))
	for name, weight := range weights {
		out[toolsearch.Field(name)] = weight
	}
	return out
}

func reducerPolicyFromConfig(cfg config.ReducerConfig) reducer.Policy {
	return reducer.Policy{
		MaxTextBytes:       cfg.MaxTextBytes,
		MaxStructuredBytes: cfg.MaxStructuredBytes,
		MaxStructuredKeys:  cfg.MaxStructuredKeys,
		MaxStructuredItems: cfg.MaxStructuredItems,
		MaxDepth:           cfg.MaxDepth,
	}
}
