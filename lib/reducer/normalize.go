// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reducer

import (
	"encoding/json"
	"strings"
)

// normalizeInput turns an arbitrary raw tool-call result into a
// {text, structured} pair per §4.6 step 1:
//
//   - nil becomes an empty text result.
//   - a string that also parses as JSON keeps the string as text and
//     additionally exposes the parsed value as structured (parsed_json).
//   - an object carrying a "structured" or "structuredContent" field uses
//     that field's value as structured, preferred over any derived text
//     (structured_preferred).
//   - an object carrying a string "text" field uses that directly;
//     otherwise an object carrying a "content" array (the MCP
//     tool-result shape) joins each element's text, in order, into
//     the text result. A content element may be a plain string or an
//     object with a "text" field.
//   - an object carrying "isError": true prepends "[error]" to the text
//     and records is_error.
func normalizeInput(raw any) (text string, structured any, hasStructured bool, notes []string) {
	switch v := raw.(type) {
	case nil:
		return "", nil, false, nil

	case string:
		text = v
		var parsed any
		if json.Valid([]byte(v)) && json.Unmarshal([]byte(v), &parsed) == nil {
			structured = parsed
			hasStructured = true
			notes = append(notes, NoteParsedJSON)
		}
		return text, structured, hasStructured, notes

	case map[string]any:
		return normalizeObject(v)

	default:
		return "", raw, true, nil
	}
}

func normalizeObject(obj map[string]any) (text string, structured any, hasStructured bool, notes []string) {
	if s, ok := obj["structuredContent"]; ok {
		structured, hasStructured = s, true
		notes = append(notes, NoteStructuredPreferred)
	} else if s, ok := obj["structured"]; ok {
		structured, hasStructured = s, true
		notes = append(notes, NoteStructuredPreferred)
	}

	if t, ok := obj["text"].(string); ok {
		text = t
	} else if content, ok := obj["content"].([]any); ok {
		text = joinContentText(content)
	}

	if isErr, ok := obj["isError"].(bool); ok && isErr {
		text = "[error] " + text
		notes = append(notes, NoteIsError)
	}

	return text, structured, hasStructured, notes
}

func joinContentText(items []any) string {
	var parts []string
	for _, item := range items {
		switch block := item.(type) {
		case string:
			parts = append(parts, block)
		case map[string]any:
			if t, ok := block["text"].(string); ok {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, "\n")
}
