package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/orusplay/syntax"
)

func (m *Model) openSearch() tea.Cmd {
	m.searchOpen = true
	m.layoutViewport()
	m.refreshSearch()
	return m.search.Focus()
}

// closeSearch hides the bar. With clear the term is dropped as well.
func (m *Model) closeSearch(clear bool) {
	m.searchOpen = false
	m.search.Blur()
	if clear {
		m.search.SetValue("")
	}
	m.matches = nil
	m.layoutViewport()
}

// ToggleSearch opens or closes the search bar. Closing keeps the term.
func (m Model) ToggleSearch() (Model, tea.Cmd) {
	if m.searchOpen {
		m.closeSearch(false)
		m.rebuildContent()
		return m, nil
	}
	cmd := m.openSearch()
	m.rebuildContent()
	return m, cmd
}

// SetSearchTerm replaces the search term and recomputes the matches.
func (m Model) SetSearchTerm(term string) Model {
	m.search.SetValue(term)
	m.refreshSearch()
	m.rebuildContent()
	return m
}

func (m Model) updateSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.CloseSearch):
		m.closeSearch(true)
		return m, nil
	case key.Matches(msg, km.Search):
		m.closeSearch(false)
		return m, nil
	case key.Matches(msg, km.NextMatch):
		m.nextMatch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshSearch()
	return m, cmd
}

// nextMatch selects the first match at or after the cursor, wrapping around.
func (m *Model) nextMatch() {
	if len(m.matches) == 0 {
		return
	}
	i := syntax.NextRange(m.matches, m.buf.CursorOffset())
	r := m.matches[i]
	m.buf.SelectOffsets(r.Start, r.End)
}

// matchSummary renders " i/n" after the search input.
func (m Model) matchSummary() string {
	if m.search.Value() == "" {
		return ""
	}
	if len(m.matches) == 0 {
		return "  no matches"
	}
	cur := 0
	if r, ok := m.buf.Selection(); ok {
		start := m.buf.OffsetFromPos(r.Start)
		for i, mt := range m.matches {
			if mt.Start == start {
				cur = i + 1
				break
			}
		}
	}
	if cur == 0 {
		return fmt.Sprintf("  %d matches", len(m.matches))
	}
	return fmt.Sprintf("  %d/%d", cur, len(m.matches))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
