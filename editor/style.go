package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/orusplay/syntax"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text lipgloss.Style
	// Tokens styles highlighted text by category. Missing categories use Text.
	Tokens map[syntax.Category]lipgloss.Style

	Selection lipgloss.Style
	Cursor    lipgloss.Style
	// SearchMatch and BracketMatch mark search hits and the bracket pair at
	// the cursor.
	SearchMatch  lipgloss.Style
	BracketMatch lipgloss.Style

	SearchBar   lipgloss.Style
	Placeholder lipgloss.Style
}

// Token returns the style of category c, falling back to Text.
func (s Style) Token(c syntax.Category) lipgloss.Style {
	if st, ok := s.Tokens[c]; ok {
		return st.Inherit(s.Text)
	}
	return s.Text
}

// DefaultStyle returns the playground look for a dark or light terminal.
func DefaultStyle(dark bool) Style {
	fg := lipgloss.Color("#1e1e1e")
	gutter := lipgloss.Color("#858585")
	active := lipgloss.Color("#0b216f")
	selection := lipgloss.Color("#add6ff")
	match := lipgloss.Color("#f8eb8f")
	bracket := lipgloss.Color("#d4d4d4")
	if dark {
		fg = lipgloss.Color("#d4d4d4")
		active = lipgloss.Color("#c6c6c6")
		selection = lipgloss.Color("#264f78")
		match = lipgloss.Color("#613214")
		bracket = lipgloss.Color("#515c6a")
	}

	tokens := make(map[syntax.Category]lipgloss.Style, len(syntax.Palette))
	for c, hex := range syntax.Palette {
		tokens[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	return Style{
		Gutter:        lipgloss.NewStyle().Foreground(gutter),
		LineNum:       lipgloss.NewStyle().Foreground(gutter),
		LineNumActive: lipgloss.NewStyle().Foreground(active).Bold(true),
		Text:          lipgloss.NewStyle().Foreground(fg),
		Tokens:        tokens,
		Selection:     lipgloss.NewStyle().Background(selection),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		SearchMatch:   lipgloss.NewStyle().Background(match),
		BracketMatch:  lipgloss.NewStyle().Background(bracket).Bold(true),
		SearchBar:     lipgloss.NewStyle().Foreground(gutter),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color(syntax.Palette[syntax.Comment])).Italic(true),
	}
}
