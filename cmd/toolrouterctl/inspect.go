// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"github.com/yuin/goldmark"

	"github.com/bureau-foundation/toolrouter/internal/rpcclient"
)

// runInspect launches a read-only terminal browser over a running
// daemon's catalog/search/working-set/reduce surface. It calls the same
// JSON-RPC methods any client would; it has no privileged access to the
// core engine.
func runInspect(args []string) int {
	flags := pflag.NewFlagSet("toolrouterctl inspect", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to toolrouter.yaml (overrides TOOLROUTER_CONFIG)")
	sessionID := flags.String("session", "toolrouterctl-inspect", "working-set session id to browse")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	client, err := dialDaemon(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl inspect: %v\n", err)
		return 1
	}
	defer client.Close()

	model := newInspectModel(client, *sessionID)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "toolrouterctl inspect: %v\n", err)
		return 1
	}
	return 0
}

type pane int

const (
	paneSearch pane = iota
	paneWorkingSet
	panePreview
)

type searchHit struct {
	ToolID string  `json:"toolId"`
	Score  float64 `json:"score"`
}

type searchResultMsg struct {
	hits []searchHit
	err  error
}

type workingSetMsg struct {
	raw json.RawMessage
	err error
}

type reduceMsg struct {
	rendered string
	err      error
}

type inspectModel struct {
	client    *rpcclient.Client
	sessionID string

	active   pane
	queryBox textinput.Model
	cursor   int
	hits     []searchHit
	wsState  string
	preview  string
	status   string
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
var selectedStyle = lipgloss.NewStyle().Reverse(true)

func newInspectModel(client *rpcclient.Client, sessionID string) inspectModel {
	queryBox := textinput.New()
	queryBox.Placeholder = "search query"
	queryBox.Focus()
	return inspectModel{client: client, sessionID: sessionID, active: paneSearch, queryBox: queryBox}
}

func (m inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % 3
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.hits)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.active == paneSearch {
				return m, m.runSearch()
			}
			if m.active == panePreview && m.cursor < len(m.hits) {
				return m, m.runReduce(m.hits[m.cursor].ToolID)
			}
			return m, nil
		case "w":
			return m, m.refreshWorkingSet()
		}
		if m.active == paneSearch {
			var cmd tea.Cmd
			m.queryBox, cmd = m.queryBox.Update(msg)
			return m, cmd
		}
		return m, nil
	case searchResultMsg:
		if msg.err != nil {
			m.status = "search error: " + msg.err.Error()
			return m, nil
		}
		m.hits = msg.hits
		m.cursor = 0
		m.status = fmt.Sprintf("%d hits for %q", len(m.hits), m.queryBox.Value())
		return m, nil
	case workingSetMsg:
		if msg.err != nil {
			m.status = "working set error: " + msg.err.Error()
			return m, nil
		}
		m.wsState = string(msg.raw)
		return m, nil
	case reduceMsg:
		if msg.err != nil {
			m.status = "reduce error: " + msg.err.Error()
			return m, nil
		}
		m.preview = msg.rendered
		return m, nil
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("toolrouterctl inspect") + "  ")
	b.WriteString(statusStyle.Render(fmt.Sprintf("[tab] switch pane  [enter] act  [w] refresh working set  [esc] quit  session=%s", m.sessionID)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("search: ") + m.queryBox.View() + "\n")
	for i, hit := range m.hits {
		line := fmt.Sprintf("  %-40s %.3f", hit.ToolID, hit.Score)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("working set (" + m.sessionID + "):") + "\n")
	b.WriteString(m.wsState + "\n\n")

	b.WriteString(titleStyle.Render("preview:") + "\n")
	b.WriteString(m.preview + "\n\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}

	return b.String()
}

func (m inspectModel) runSearch() tea.Cmd {
	query, client := m.queryBox.Value(), m.client
	return func() tea.Msg {
		result, err := client.Call("search.query", struct {
			Query string `json:"query"`
		}{Query: query})
		if err != nil {
			return searchResultMsg{err: err}
		}
		var decoded struct {
			Hits []searchHit `json:"hits"`
		}
		if err := json.Unmarshal(result, &decoded); err != nil {
			return searchResultMsg{err: err}
		}
		return searchResultMsg{hits: decoded.Hits}
	}
}

func (m inspectModel) refreshWorkingSet() tea.Cmd {
	sessionID, client := m.sessionID, m.client
	return func() tea.Msg {
		result, err := client.Call("ws.get", struct {
			SessionID string `json:"sessionId"`
		}{SessionID: sessionID})
		if err != nil {
			return workingSetMsg{err: err}
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, result, "", "  "); err != nil {
			return workingSetMsg{raw: result}
		}
		return workingSetMsg{raw: pretty.Bytes()}
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func (m inspectModel) runReduce(toolID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Call("result.reduce", struct {
			ToolID string `json:"toolId"`
			Raw    any    `json:"raw"`
		}{ToolID: toolID, Raw: map[string]any{"status": "ok", "tool": toolID}})
		if err != nil {
			return reduceMsg{err: err}
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, result, "", "  "); err != nil {
			pretty.Write(result)
		}

		var highlighted bytes.Buffer
		if err := quick.Highlight(&highlighted, pretty.String(), "json", "terminal256", "monokai"); err != nil {
			highlighted.Write(pretty.Bytes())
		}

		var rendered bytes.Buffer
		description := fmt.Sprintf("Reduced output for **%s**", toolID)
		if err := goldmark.Convert([]byte(description), &rendered); err == nil {
			description = htmlTagPattern.ReplaceAllString(rendered.String(), "")
		}

		return reduceMsg{rendered: strings.TrimSpace(description) + "\n" + highlighted.String()}
	}
}
