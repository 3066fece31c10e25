// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolsearch

import "regexp"

// queryRegex implements the regex search mode (§4.4): a case-insensitive
// regular expression tested against name, title, and description
// independently. minScore does not apply here — any match is kept.
func queryRegex(idx *index, query string, filtered []string, topK int) (QueryResult, error) {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}

	candidatesBefore := idx.totalDocs

	var hits []Hit
	for _, id := range filtered {
		doc := idx.docs[id]

		matchName := re.MatchString(doc.name)
		matchTitle := re.MatchString(doc.title)
		matchDescription := re.MatchString(doc.description)

		if !matchName && !matchTitle && !matchDescription {
			continue
		}

		score := boolScore(matchName)*2.0 + boolScore(matchTitle)*1.5 + boolScore(matchDescription)*1.0
		hits = append(hits, Hit{ToolID: id, Score: score})
	}

	sortHits(hits)

	return QueryResult{
		Hits:       truncateTopK(hits, topK),
		Candidates: Candidates{Before: candidatesBefore, After: len(hits)},
	}, nil
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
