// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cotsense/cotsense/internal/catalog"
	"github.com/cotsense/cotsense/internal/server"
)

// Styles for the interactive results view.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// resultColumns maps sort hotkeys to sortable fields, in display order.
var resultColumns = []struct {
	key   string
	title string
	width int
	field catalog.SortField
}{
	{"1", "Part Number", 20, catalog.SortPartNumber},
	{"2", "Manufacturer", 18, catalog.SortManufacturer},
	{"3", "Category", 16, catalog.SortCategory},
	{"4", "Match", 7, catalog.SortSpecMatch},
	{"5", "Score", 7, catalog.SortTotalScore},
	{"6", "Price", 9, catalog.SortPrice},
	{"7", "Stock", 13, catalog.SortStock},
}

// explanationMsg carries the outcome of an async explanation fetch.
type explanationMsg struct {
	componentID string
	text        string
	err         error
}

// resultsModel is the bubbletea model for browsing recommendation results.
type resultsModel struct {
	client *apiClient
	query  string

	components []catalog.Component
	sortState  catalog.SortState
	cursor     int
	expanded   bool

	// explanation state, keyed by component ID; a row is either pending
	// (fetch in flight) or explained, never both
	explanations map[string]string
	pending      map[string]bool

	spinner spinner.Model
	width   int
}

func newResultsModel(client *apiClient, query string, components []catalog.Component) resultsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return resultsModel{
		client:       client,
		query:        query,
		components:   components,
		sortState:    catalog.DefaultSortState(),
		explanations: map[string]string{},
		pending:      map[string]bool{},
		spinner:      sp,
	}
}

func (m resultsModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case explanationMsg:
		// Replies for fetches no longer pending are dropped.
		if !m.pending[msg.componentID] {
			return m, nil
		}
		delete(m.pending, msg.componentID)
		text := msg.text
		if msg.err != nil {
			// Degrade to the locally synthesized explanation.
			c, ok := m.componentByID(msg.componentID)
			if !ok {
				return m, nil
			}
			text = catalog.FallbackExplanation(c, m.query)
		}
		m.explanations[msg.componentID] = text
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m resultsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.expanded = false
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.components)-1 {
			m.cursor++
			m.expanded = false
		}
		return m, nil

	case "enter", " ":
		if m.expanded {
			m.expanded = false
			return m, nil
		}
		return m.expandSelected()

	case "e":
		return m.expandSelected()
	}

	for _, col := range resultColumns {
		if msg.String() == col.key {
			return m.sortBy(col.field), nil
		}
	}

	return m, nil
}

// sortBy re-sorts results, following the selected component across the
// reorder.
func (m resultsModel) sortBy(field catalog.SortField) resultsModel {
	var selectedID string
	if m.cursor < len(m.components) {
		selectedID = m.components[m.cursor].ID
	}

	m.sortState = m.sortState.Toggle(field)
	m.components = catalog.SortComponents(m.components, m.sortState.Field, m.sortState.Descending)

	for i, c := range m.components {
		if c.ID == selectedID {
			m.cursor = i
			break
		}
	}
	return m
}

// expandSelected opens the detail view for the selected component and, the
// first time an ID is expanded, issues exactly one explanation fetch for it.
// Fetches for different rows run concurrently.
func (m resultsModel) expandSelected() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.components) {
		return m, nil
	}
	m.expanded = true

	c := m.components[m.cursor]
	if _, ok := m.explanations[c.ID]; ok {
		return m, nil
	}
	if m.pending[c.ID] {
		return m, nil
	}

	m.pending[c.ID] = true

	client := m.client
	query := m.query
	return m, func() tea.Msg {
		var body server.ExplainBody
		err := client.postJSON("/api/explain", map[string]any{
			"component_id": c.ID,
			"query":        query,
		}, &body)
		return explanationMsg{componentID: c.ID, text: body.Explanation, err: err}
	}
}

func (m resultsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", m.query)))
	b.WriteString("\n\n")

	if len(m.components) == 0 {
		b.WriteString("No components found.\n")
		b.WriteString(helpStyle.Render("q: quit"))
		return b.String()
	}

	b.WriteString(headerStyle.Render(m.renderHeaderRow()))
	b.WriteString("\n")

	for i, c := range m.components {
		row := m.renderRow(c)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")

		if i == m.cursor && m.expanded {
			b.WriteString(m.renderDetail(c))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: select • enter: expand + explain • 1-7: sort • q: quit"))
	return b.String()
}

func (m resultsModel) renderHeaderRow() string {
	cells := make([]string, 0, len(resultColumns))
	for _, col := range resultColumns {
		title := col.title
		if col.field == m.sortState.Field {
			if m.sortState.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cells = append(cells, pad(title, col.width))
	}
	return strings.Join(cells, " ")
}

func (m resultsModel) renderRow(c catalog.Component) string {
	values := []string{
		c.PartNumber,
		c.Manufacturer,
		c.Category,
		catalog.DisplayScore(c.SpecMatch),
		catalog.DisplayScore(c.TotalScore),
		c.DisplayPrice(),
		c.DisplayStock(),
	}
	cells := make([]string, 0, len(values))
	for i, v := range values {
		cells = append(cells, pad(v, resultColumns[i].width))
	}
	return strings.Join(cells, " ")
}

func (m resultsModel) renderDetail(c catalog.Component) string {
	var b strings.Builder

	if c.Description != "" {
		b.WriteString(detailStyle.Render("Description: " + c.Description))
		b.WriteString("\n")
	}
	if c.Specifications != "" {
		b.WriteString(detailStyle.Render("Specifications: " + c.Specifications))
		b.WriteString("\n")
	}

	if text, ok := m.explanations[c.ID]; ok {
		b.WriteString(detailStyle.Render("Why: " + text))
		b.WriteString("\n")
	} else if m.pending[c.ID] {
		b.WriteString(detailStyle.Render(m.spinner.View() + " Generating explanation..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m resultsModel) componentByID(id string) (catalog.Component, bool) {
	for _, c := range m.components {
		if c.ID == id {
			return c, true
		}
	}
	return catalog.Component{}, false
}

// pad truncates or right-pads s to width.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
