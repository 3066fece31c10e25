// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/bureau-foundation/toolrouter/lib/toolcatalog"
	"github.com/bureau-foundation/toolrouter/lib/toolerror"
)

type upsertToolsParams struct {
	Tools []wireToolCard `json:"tools"`
}

type upsertToolsResult struct {
	Count   int   `json:"count"`
	Version int64 `json:"version"`
}

func (e *Engine) catalogUpsertTools(raw json.RawMessage) (any, error) {
	var params upsertToolsParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}

	cards := make([]toolcatalog.ToolCard, len(params.Tools))
	for i, t := range params.Tools {
		cards[i] = t.toCard()
	}

	count, err := e.catalog.UpsertTools(cards)
	if err != nil {
		return nil, err
	}
	return upsertToolsResult{Count: count, Version: e.catalog.Version()}, nil
}

type removeToolsParams struct {
	ToolIDs []string `json:"toolIds"`
}

type removeToolsResult struct {
	Count   int   `json:"count"`
	Version int64 `json:"version"`
}

func (e *Engine) catalogRemoveTools(raw json.RawMessage) (any, error) {
	var params removeToolsParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, toolerror.Validation("invalid params: %v", err)
	}

	count, err := e.catalog.RemoveTools(params.ToolIDs)
	if err != nil {
		return nil, err
	}
	return removeToolsResult{Count: count, Version: e.catalog.Version()}, nil
}

type resetResult struct {
	Version int64 `json:"version"`
}

func (e *Engine) catalogReset(json.RawMessage) (any, error) {
	if err := e.catalog.Reset(); err != nil {
		return nil, err
	}
	return resetResult{Version: e.catalog.Version()}, nil
}

type catalogStatsResult struct {
	Tools     int       `json:"tools"`
	IndexSize int       `json:"indexSize"`
	UpdatedAt time.Time `json:"updatedAt"`
	Digest    string    `json:"digest"`
}

func (e *Engine) catalogStats(json.RawMessage) (any, error) {
	stats := e.catalog.Stats()
	return catalogStatsResult{
		Tools:     stats.Tools,
		IndexSize: stats.IndexSize,
		UpdatedAt: stats.UpdatedAt,
		Digest:    stats.Digest,
	}, nil
}

// catalogExportResult is a point-in-time debug dump of the catalog, used
// only by toolrouterctl export. It is not part of spec.md's wire method
// table (§6) — the core never persists or reloads this format itself.
type catalogExportResult struct {
	Version   int64          `json:"version"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Digest    string         `json:"digest"`
	Tools     []wireToolCard `json:"tools"`
}

func (e *Engine) catalogExport(json.RawMessage) (any, error) {
	snapshot := e.catalog.GetSnapshot()

	tools := make([]wireToolCard, 0, len(snapshot.Tools))
	for _, card := range snapshot.Tools {
		tools = append(tools, fromCard(card))
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].ToolID < tools[j].ToolID })

	return catalogExportResult{
		Version:   snapshot.Version,
		UpdatedAt: snapshot.UpdatedAt,
		Digest:    snapshot.Digest,
		Tools:     tools,
	}, nil
}
