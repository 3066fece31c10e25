// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolsearch

// Mode selects which search algorithm Engine.Query dispatches to.
type Mode string

const (
	ModeBM25  Mode = "bm25"
	ModeRegex Mode = "regex"
)

// Field names the nine textual fields of a ToolSearchDoc that
// participate in BM25 scoring.
type Field string

const (
	FieldName        Field = "name"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldSynonyms    Field = "synonyms"
	FieldArgNames    Field = "argNames"
	FieldArgDescs    Field = "argDescs"
	FieldExamples    Field = "examples"
	FieldServerID    Field = "serverId"
)

// AllFields lists every scored field in a fixed order, used wherever
// iteration order must be deterministic (index construction, tests).
var AllFields = []Field{
	FieldName, FieldTitle, FieldDescription, FieldTags, FieldSynonyms,
	FieldArgNames, FieldArgDescs, FieldExamples, FieldServerID,
}

// Params configures the BM25 scoring formula and its post-score
// adjustments. The zero value is not usable; start from DefaultParams.
type Params struct {
	K1               float64
	B                float64
	ExactMatchBoost  float64
	PrefixMatchBoost float64
	PopularityBoost  float64
	MinScore         float64
	DefaultTopK      int
}

// DefaultParams returns the spec-mandated defaults.
func DefaultParams() Params {
	return Params{
		K1:               1.2,
		B:                0.75,
		ExactMatchBoost:  1.5,
		PrefixMatchBoost: 0.4,
		PopularityBoost:  0.05,
		MinScore:         0,
		DefaultTopK:      20,
	}
}

// DefaultFieldWeights returns the spec-mandated per-field weights.
func DefaultFieldWeights() map[Field]float64 {
	return map[Field]float64{
		FieldName:        4.0,
		FieldTitle:       2.0,
		FieldSynonyms:    2.5,
		FieldDescription: 1.8,
		FieldArgNames:    1.4,
		FieldArgDescs:    1.2,
		FieldTags:        1.2,
		FieldExamples:    0.9,
		FieldServerID:    0.2,
	}
}

// Filters restrict the candidate set before scoring. A nil or
// zero-value Filters matches everything.
type Filters struct {
	ServerIDs   []string
	SideEffects []string
	Tags        []string
}

// Hit is one ranked search result.
type Hit struct {
	ToolID string
	Score  float64
}

// Candidates reports how many documents were considered before and after
// filtering/thresholding, independent of topK truncation.
type Candidates struct {
	Before int
	After  int
}

// QueryInput is the parameters of one search.Query call. TopK, Mode,
// Params, and FieldWeights are optional; zero values fall back to engine
// defaults (TopK falls back to Params.DefaultTopK, Mode falls back to
// ModeBM25).
type QueryInput struct {
	Query        string
	Mode         Mode
	TopK         *int
	Filters      *Filters
	Params       *Params
	FieldWeights map[Field]float64
}

// QueryResult is the outcome of one search.
type QueryResult struct {
	Hits       []Hit
	Candidates Candidates
}
