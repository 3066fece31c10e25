// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolsearch

import (
	"sort"

	"github.com/bureau-foundation/toolrouter/lib/tokenize"
	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
)

// docIndex is the per-document data the scorers and filters need: term
// frequencies and length per field, plus the raw name, title,
// description, serverId, sideEffect, popularity and tags.
type docIndex struct {
	toolID      string
	name        string
	title       string
	description string
	serverID    string
	sideEffect  toolcatalog.SideEffect
	popularity  *float64

	fieldTermFreq map[Field]map[string]int
	fieldLength   map[Field]int
	tags          []string
}

// index is the immutable, built-at-rebuild-time BM25 index over one
// catalog snapshot.
type index struct {
	version int64

	docs        map[string]*docIndex
	docOrder    []string // toolIDs in a fixed order, for iteration determinism
	docFreq     map[string]int
	avgFieldLen map[Field]float64
	totalDocs   int
}

func fieldText(doc toolcatalog.ToolSearchDoc, f Field) string {
	switch f {
	case FieldName:
		return doc.Name
	case FieldTitle:
		return doc.Title
	case FieldDescription:
		return doc.Description
	case FieldTags:
		return doc.Tags
	case FieldSynonyms:
		return doc.Synonyms
	case FieldArgNames:
		return doc.ArgNames
	case FieldArgDescs:
		return doc.ArgDescs
	case FieldExamples:
		return doc.Examples
	case FieldServerID:
		return doc.ServerID
	default:
		return ""
	}
}

// buildIndex derives the BM25 index from a catalog snapshot. Iteration
// over the snapshot's map is made deterministic by sorting toolIDs before
// use anywhere order matters.
func buildIndex(snapshot toolcatalog.CatalogSnapshot, tokenOpts tokenize.Options) *index {
	toolIDs := make([]string, 0, len(snapshot.Docs))
	for id := range snapshot.Docs {
		toolIDs = append(toolIDs, id)
	}
	sort.Strings(toolIDs)

	idx := &index{
		version:     snapshot.Version,
		docs:        make(map[string]*docIndex, len(toolIDs)),
		docOrder:    toolIDs,
		docFreq:     make(map[string]int),
		avgFieldLen: make(map[Field]float64, len(AllFields)),
		totalDocs:   len(toolIDs),
	}

	fieldLenSum := make(map[Field]int, len(AllFields))

	for _, id := range toolIDs {
		doc := snapshot.Docs[id]

		di := &docIndex{
			toolID:        id,
			name:          doc.Name,
			title:         doc.Title,
			description:   doc.Description,
			serverID:      doc.ServerID,
			sideEffect:    doc.SideEffect,
			popularity:    doc.Popularity,
			fieldTermFreq: make(map[Field]map[string]int, len(AllFields)),
			fieldLength:   make(map[Field]int, len(AllFields)),
		}

		uniqueTokens := make(map[string]struct{})

		for _, f := range AllFields {
			tokens := tokenize.Tokenize(fieldText(doc, f), tokenOpts)
			tf := make(map[string]int, len(tokens))
			for _, tok := range tokens {
				tf[tok]++
				uniqueTokens[tok] = struct{}{}
			}
			di.fieldTermFreq[f] = tf
			di.fieldLength[f] = len(tokens)
			fieldLenSum[f] += len(tokens)
		}

		if snapshot.Tools != nil {
			if card, ok := snapshot.Tools[id]; ok {
				di.tags = append([]string(nil), card.Tags...)
			}
		}

		for tok := range uniqueTokens {
			idx.docFreq[tok]++
		}

		idx.docs[id] = di
	}

	for _, f := range AllFields {
		if idx.totalDocs > 0 {
			idx.avgFieldLen[f] = float64(fieldLenSum[f]) / float64(idx.totalDocs)
		}
	}

	return idx
}
