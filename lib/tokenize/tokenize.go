// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenize

import "strings"

// DefaultMinTokenLength is the shortest token kept by Tokenize when no
// Options are supplied.
const DefaultMinTokenLength = 2

// Options configures Tokenize. The zero value is not valid on its own;
// use DefaultOptions to get sensible defaults, then override fields.
type Options struct {
	// MinTokenLength drops tokens shorter than this many characters.
	MinTokenLength int

	// Stopwords is the set of tokens dropped regardless of length. Nil
	// means no stopword filtering.
	Stopwords map[string]struct{}
}

// DefaultOptions returns the options used by the catalog and search engine
// unless a caller overrides them: MinTokenLength 2, the built-in English
// stopword list.
func DefaultOptions() Options {
	return Options{
		MinTokenLength: DefaultMinTokenLength,
		Stopwords:      Stopwords,
	}
}

// Normalize applies the deterministic text-normalization pipeline: runs of
// '_' and '-' become a single space, camelCase and letter/digit boundaries
// are split with an inserted space, the result is lowercased, any run of
// characters outside [a-z0-9] collapses to a single space, and the result
// is trimmed.
//
// Normalize never fails and never allocates more than a small constant
// factor over len(text).
func Normalize(text string) string {
	var separated strings.Builder
	separated.Grow(len(text) * 2)

	runes := []rune(text)
	for i, r := range runes {
		if r == '_' || r == '-' {
			separated.WriteByte(' ')
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			if boundary(prev, r) {
				separated.WriteByte(' ')
			}
		}
		separated.WriteRune(r)
	}

	lower := strings.ToLower(separated.String())

	var collapsed strings.Builder
	collapsed.Grow(len(lower))
	lastWasSpace := true // treat leading run as space to avoid a leading space
	for _, r := range lower {
		if isMatchChar(r) {
			collapsed.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if !lastWasSpace {
			collapsed.WriteByte(' ')
		}
		lastWasSpace = true
	}

	return strings.TrimSpace(collapsed.String())
}

// boundary reports whether a space should be inserted between prev and cur:
// a lowercase-or-digit followed by an uppercase (camelCase split), or a
// letter/digit transition in either direction.
func boundary(prev, cur rune) bool {
	if (isLowerOrDigit(prev)) && isUpper(cur) {
		return true
	}
	if isLetter(prev) && isDigit(cur) {
		return true
	}
	if isDigit(prev) && isLetter(cur) {
		return true
	}
	return false
}

func isUpper(r rune) bool      { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool      { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isLetter(r rune) bool     { return isUpper(r) || isLower(r) }
func isLowerOrDigit(r rune) bool { return isLower(r) || isDigit(r) }
func isMatchChar(r rune) bool  { return (r >= 'a' && r <= 'z') || isDigit(r) }

// Tokenize normalizes text and splits it into tokens, dropping tokens
// shorter than opts.MinTokenLength and tokens present in opts.Stopwords.
func Tokenize(text string, opts Options) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	minLength := opts.MinTokenLength
	if minLength <= 0 {
		minLength = DefaultMinTokenLength
	}

	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < minLength {
			continue
		}
		if opts.Stopwords != nil {
			if _, stop := opts.Stopwords[field]; stop {
				continue
			}
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// NormalizeForMatch returns Normalize(text) with all internal spaces
// removed. It is used only for exact/prefix name-boost comparison in the
// search engine, never for tokenization.
func NormalizeForMatch(text string) string {
	return strings.ReplaceAll(Normalize(text), " ", "")
}
