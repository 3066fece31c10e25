// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import "github.com/bureau-foundation/toolrouter/lib/toolcatalog"

// wireToolArg/wireToolExample/wireToolCard mirror toolcatalog's types with
// JSON tags matching the wire method surface's camelCase field names.

type wireToolArg struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TypeHint    string `json:"typeHint,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Example     string `json:"example,omitempty"`
}

type wireToolExample struct {
	Query    string `json:"query,omitempty"`
	CallHint string `json:"callHint,omitempty"`
}

type wireToolCard struct {
	ToolID   string `json:"toolId"`
	ToolName string `json:"toolName"`
	ServerID string `json:"serverId"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Tags     []string `json:"tags,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
	AuthHint []string `json:"authHint,omitempty"`

	Args     []wireToolArg     `json:"args,omitempty"`
	Examples []wireToolExample `json:"examples,omitempty"`

	SideEffect string `json:"sideEffect,omitempty"`

	OpenWorldHint  *bool `json:"openWorldHint,omitempty"`
	IdempotentHint *bool `json:"idempotentHint,omitempty"`

	CostHint string `json:"costHint,omitempty"`

	Popularity *float64 `json:"popularity,omitempty"`
}

func fromCard(c toolcatalog.ToolCard) wireToolCard {
	args := make([]wireToolArg, len(c.Args))
	for i, a := range c.Args {
		args[i] = wireToolArg{
			Name: a.Name, Description: a.Description, TypeHint: a.TypeHint,
			Required: a.Required, Example: a.Example,
		}
	}
	examples := make([]wireToolExample, len(c.Examples))
	for i, e := range c.Examples {
		examples[i] = wireToolExample{Query: e.Query, CallHint: e.CallHint}
	}
	return wireToolCard{
		ToolID: c.ToolID, ToolName: c.ToolName, ServerID: c.ServerID,
		Title: c.Title, Description: c.Description,
		Tags: c.Tags, Synonyms: c.Synonyms, AuthHint: c.AuthHint,
		Args: args, Examples: examples,
		SideEffect:     string(c.SideEffect),
		OpenWorldHint:  c.OpenWorldHint,
		IdempotentHint: c.IdempotentHint,
		CostHint:       string(c.CostHint),
		Popularity:     c.Popularity,
	}
}

func (w wireToolCard) toCard() toolcatalog.ToolCard {
	args := make([]toolcatalog.ToolArg, len(w.Args))
	for i, a := range w.Args {
		args[i] = toolcatalog.ToolArg{
			Name: a.Name, Description: a.Description, TypeHint: a.TypeHint,
			Required: a.Required, Example: a.Example,
		}
	}
	examples := make([]toolcatalog.ToolExample, len(w.Examples))
	for i, e := range w.Examples {
		examples[i] = toolcatalog.ToolExample{Query: e.Query, CallHint: e.CallHint}
	}
	return toolcatalog.ToolCard{
		ToolID: w.ToolID, ToolName: w.ToolName, ServerID: w.ServerID,
		Title: w.Title, Description: w.Description,
		Tags: w.Tags, Synonyms: w.Synonyms, AuthHint: w.AuthHint,
		Args: args, Examples: examples,
		SideEffect:     toolcatalog.SideEffect(w.SideEffect),
		OpenWorldHint:  w.OpenWorldHint,
		IdempotentHint: w.IdempotentHint,
		CostHint:       toolcatalog.CostHint(w.CostHint),
		Popularity:     w.Popularity,
	}
}
