// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenize

// stopwordList is the closed set of common English function words and
// filler dropped from every tokenized field and query. It is deliberately
// fixed — not locale-aware, not configurable per corpus — so that indexing
// and querying stay deterministic across runs.
var stopwordList = []string{
	"a", "an", "the", "and", "or", "but", "nor", "so", "yet",
	"is", "am", "are", "was", "were", "be", "been", "being",
	"do", "does", "did", "doing", "done",
	"have", "has", "had", "having",
	"will", "would", "shall", "should", "can", "could", "may", "might", "must",
	"i", "you", "he", "she", "it", "we", "they",
	"me", "him", "her", "us", "them",
	"my", "your", "his", "its", "our", "their",
	"mine", "yours", "hers", "ours", "theirs",
	"this", "that", "these", "those",
	"here", "there", "where", "when", "why", "how", "what", "which", "who", "whom",
	"of", "in", "on", "at", "by", "for", "with", "about", "against", "between",
	"into", "through", "during", "before", "after", "above", "below", "to",
	"from", "up", "down", "out", "off", "over", "under", "again", "further",
	"then", "once", "not", "only", "own", "same", "than", "too", "very",
	"just", "also", "as", "if", "because", "while", "although",
	"all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
	"no", "nor", "s", "t", "d", "ll", "m", "re", "ve", "y",
	"please", "thanks", "thank", "ok", "okay",
	"etc", "eg", "ie", "via",
}

// Stopwords is the parsed set form of stopwordList, ready for use as
// Options.Stopwords.
var Stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(stopwordList))
	for _, word := range stopwordList {
		set[word] = struct{}{}
	}
	return set
}
