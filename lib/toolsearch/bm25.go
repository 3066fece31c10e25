// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolsearch

import (
	"math"
	"strings"

	"github.com/bureau-foundation/toolrouter/lib/bm25"
	"github.com/bureau-foundation/toolrouter/lib/tokenize"
)

func (e *Engine) effectiveParams(override *Params) Params {
	if override != nil {
		return *override
	}
	return e.params
}

func (e *Engine) effectiveWeights(override map[Field]float64) map[Field]float64 {
	if override != nil {
		return override
	}
	return e.fieldWeights
}

// queryBM25 scores every filtered document against the query using
// field-weighted BM25 plus exact/prefix/popularity boosts, per spec §4.3.
func (e *Engine) queryBM25(idx *index, input QueryInput, filtered []string, topK int) (QueryResult, error) {
	params := e.effectiveParams(input.Params)
	weights := e.effectiveWeights(input.FieldWeights)

	candidatesBefore := idx.totalDocs

	queryTokens := tokenize.Tokenize(input.Query, e.tokenOpts)
	if len(queryTokens) == 0 {
		return QueryResult{
			Hits:       truncateTopK(nil, topK),
			Candidates: Candidates{Before: candidatesBefore, After: 0},
		}, nil
	}

	queryTokenCounts := make(map[string]int, len(queryTokens))
	for _, tok := range queryTokens {
		queryTokenCounts[tok]++
	}

	trimmedQuery := strings.TrimSpace(input.Query)
	normalizedQuery := ""
	if trimmedQuery != "" {
		normalizedQuery = tokenize.NormalizeForMatch(trimmedQuery)
	}

	var hits []Hit
	for _, id := range filtered {
		doc := idx.docs[id]
		score := scoreDocumentBM25(idx, doc, queryTokenCounts, weights, params)

		if normalizedQuery != "" {
			normalizedName := tokenize.NormalizeForMatch(doc.name)
			switch {
			case normalizedName == normalizedQuery:
				score += params.ExactMatchBoost
			case strings.HasPrefix(normalizedName, normalizedQuery):
				score += params.PrefixMatchBoost
			}
		}

		if doc.popularity != nil {
			score += math.Log(1+math.Max(0, *doc.popularity)) * params.PopularityBoost
		}

		if score > params.MinScore {
			hits = append(hits, Hit{ToolID: id, Score: score})
		}
	}

	sortHits(hits)

	return QueryResult{
		Hits:       truncateTopK(hits, topK),
		Candidates: Candidates{Before: candidatesBefore, After: len(hits)},
	}, nil
}

func scoreDocumentBM25(idx *index, doc *docIndex, queryTokenCounts map[string]int, weights map[Field]float64, params Params) float64 {
	var score float64
	for token, qtf := range queryTokenCounts {
		df := idx.docFreq[token]
		if df == 0 {
			continue
		}
		idfValue := bm25.IDF(idx.totalDocs, df)
		qtfFactor := 1 + math.Log(float64(qtf))

		for _, f := range AllFields {
			weight := weights[f]
			if weight <= 0 {
				continue
			}
			tf := doc.fieldTermFreq[f][token]
			if tf == 0 {
				continue
			}
			termScore := bm25.TermScore(float64(tf), float64(doc.fieldLength[f]), idx.avgFieldLen[f], params.K1, params.B)
			score += weight * idfValue * qtfFactor * termScore
		}
	}
	return score
}
