// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toolcatalog

import (
	"fmt"
	"strings"
)

// deriveSearchDoc computes the ToolSearchDoc for a ToolCard. It is a pure
// function: given the same card it always returns the same doc, and it is
// re-run on every upsert rather than incrementally patched.
func deriveSearchDoc(card ToolCard) ToolSearchDoc {
	argNames := make([]string, 0, len(card.Args))
	argDescs := make([]string, 0, len(card.Args))
	for _, arg := range card.Args {
		if arg.Name != "" {
			argNames = append(argNames, arg.Name)
		}
		if arg.Description != "" {
			argDescs = append(argDescs, arg.Description)
		}
	}

	examples := make([]string, 0, len(card.Examples))
	for _, ex := range card.Examples {
		switch {
		case ex.Query != "" && ex.CallHint != "":
			examples = append(examples, ex.Query+" "+ex.CallHint)
		case ex.Query != "":
			examples = append(examples, ex.Query)
		case ex.CallHint != "":
			examples = append(examples, ex.CallHint)
		}
	}

	return ToolSearchDoc{
		ToolID:      card.ToolID,
		Name:        card.ToolName,
		Title:       card.Title,
		Description: card.Description,
		Tags:        strings.Join(card.Tags, " "),
		Synonyms:    strings.Join(card.Synonyms, " "),
		ArgNames:    strings.Join(argNames, " "),
		ArgDescs:    strings.Join(argDescs, " "),
		Examples:    strings.Join(examples, " "),
		ServerID:    card.ServerID,
		SideEffect:  card.EffectiveSideEffect(),
		Popularity:  card.Popularity,
	}
}

// canonicalize renders a ToolSearchDoc as a single deterministic string
// for content hashing: field order is fixed, and every field is present
// (even when empty) so two docs differing only in which field carries a
// value never canonicalize to the same string.
func canonicalize(doc ToolSearchDoc) string {
	popularity := "nil"
	if doc.Popularity != nil {
		popularity = fmt.Sprintf("%g", *doc.Popularity)
	}
	return strings.Join([]string{
		doc.Name, doc.Title, doc.Description, doc.Tags, doc.Synonyms,
		doc.ArgNames, doc.ArgDescs, doc.Examples, doc.ServerID,
		string(doc.SideEffect), popularity,
	}, "\x1f")
}
