// Package pager shows rendered log output in a scrollable terminal view
// with plain-text search.
package pager

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Options configure the pager.
type Options struct {
	// Title is shown on the left of the status bar, e.g. the input name.
	Title string
	// Color enables styling of the status bar.
	Color bool
}

// Model is the pager state for Bubble Tea.
type Model struct {
	keys  keyMap
	title string

	lines []string
	plain []string // lower-cased, ANSI stripped

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	statusStyle lipgloss.Style
	matchStyle  lipgloss.Style

	// Search
	searching bool
	input     textinput.Model
	query     string
	matches   []int
	matchIdx  int
}

// New returns a pager over already rendered lines.
func New(lines []string, opts Options) Model {
	plain := make([]string, len(lines))
	for i, line := range lines {
		plain[i] = strings.ToLower(ansi.Strip(line))
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search..."
	ti.CharLimit = 200

	m := Model{
		keys:        defaultKeyMap(),
		title:       opts.Title,
		lines:       lines,
		plain:       plain,
		input:       ti,
		statusStyle: lipgloss.NewStyle(),
		matchStyle:  lipgloss.NewStyle(),
	}
	if opts.Color {
		m.statusStyle = m.statusStyle.Reverse(true)
		m.matchStyle = m.matchStyle.Bold(true)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// One row for the status bar.
		h := max(msg.Height-1, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.SetContent(strings.Join(m.lines, "\n"))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.input.Width = max(msg.Width-2, 1)
		return m, nil

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.statusBar()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchInput(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.ready {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.nextMatch()
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.previousMatch()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.clearSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.input.Blur()
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.query = query
		m.findMatches()
		if len(m.matches) > 0 {
			m.matchIdx = m.firstMatchFrom(m.viewport.YOffset)
			m.scrollToMatch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape), msg.Type == tea.KeyCtrlC:
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// findMatches records every line containing the query, ignoring case and
// styling.
func (m *Model) findMatches() {
	m.matches = nil
	m.matchIdx = 0
	if m.query == "" {
		return
	}
	q := strings.ToLower(m.query)
	for i, line := range m.plain {
		if strings.Contains(line, q) {
			m.matches = append(m.matches, i)
		}
	}
}

// firstMatchFrom returns the index of the first match at or below line,
// wrapping to the first match.
func (m *Model) firstMatchFrom(line int) int {
	for i, idx := range m.matches {
		if idx >= line {
			return i
		}
	}
	return 0
}

func (m *Model) clearSearch() {
	m.query = ""
	m.matches = nil
	m.matchIdx = 0
}

func (m *Model) nextMatch() {
	if len(m.matches) == 0 {
		return
	}
	m.matchIdx = (m.matchIdx + 1) % len(m.matches)
	m.scrollToMatch()
}

func (m *Model) previousMatch() {
	if len(m.matches) == 0 {
		return
	}
	m.matchIdx = (m.matchIdx - 1 + len(m.matches)) % len(m.matches)
	m.scrollToMatch()
}

// scrollToMatch centres the current match when possible.
func (m *Model) scrollToMatch() {
	if len(m.matches) == 0 || m.matchIdx >= len(m.matches) {
		return
	}
	target := m.matches[m.matchIdx]
	m.viewport.SetYOffset(max(target-m.viewport.Height/2, 0))
}

func (m Model) statusBar() string {
	if m.searching {
		return m.input.View()
	}

	left := m.title
	if m.query != "" {
		if len(m.matches) == 0 {
			left += fmt.Sprintf("  /%s: no matches", m.query)
		} else {
			left += m.matchStyle.Render(fmt.Sprintf("  /%s: %d/%d", m.query, m.matchIdx+1, len(m.matches)))
		}
	}
	right := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return m.statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// Run shows lines until the user quits or ctx is cancelled.
func Run(ctx context.Context, lines []string, opts Options) error {
	m := New(lines, opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}
