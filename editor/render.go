package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/orusplay/buffer"
	"github.com/iw2rmb/orusplay/syntax"
)

// mark is the overlay drawn on a cell. Higher marks win.
type mark uint8

const (
	markNone mark = iota
	markSearch
	markBracket
	markSelection
	markCursor
)

type runKey struct {
	mark mark
	cat  syntax.Category
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	lines := m.lines()
	digits := gutterDigits(len(lines))
	width := m.contentWidth(len(lines))
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	out := make([]string, 0, len(lines))
	lineStart := 0
	for row, line := range lines {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			sb.WriteString(m.renderGutter(row, digits))
		}
		if len(lines) == 1 && line.Text == "" && m.cfg.Placeholder != "" {
			sb.WriteString(m.renderPlaceholder(width))
		} else {
			sb.WriteString(m.renderLine(line, row, lineStart, cursor, sel, selOK, width))
		}
		out = append(out, sb.String())
		lineStart += utf8.RuneCountInString(line.Text) + 1
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderPlaceholder(width int) string {
	text := m.cfg.Placeholder
	if width > 0 {
		text = runewidth.Truncate(text, width, "")
	}
	st := m.cfg.Style
	if !m.focused {
		return st.Placeholder.Render(text)
	}
	first, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return st.Cursor.Render(" ")
	}
	return st.Cursor.Render(string(first)) + st.Placeholder.Render(text[size:])
}

// markAt resolves the overlay for rune col of row, whose first rune sits at
// document offset lineStart. si walks the sorted search matches.
func (m *Model) markAt(row, col, lineStart int, cursor buffer.Pos, sel buffer.Range, selOK bool, si *int) mark {
	if m.focused && row == cursor.Row && col == cursor.Col {
		return markCursor
	}
	p := buffer.Pos{Row: row, Col: col}
	if selOK && buffer.ComparePos(p, sel.Start) >= 0 && buffer.ComparePos(p, sel.End) < 0 {
		return markSelection
	}
	off := lineStart + col
	if m.bracketOK && (off == m.bracket.Start || off == m.bracket.End) {
		return markBracket
	}
	for *si < len(m.matches) && m.matches[*si].End <= off {
		*si++
	}
	if *si < len(m.matches) && m.matches[*si].Start <= off {
		return markSearch
	}
	return markNone
}

func (m *Model) styleFor(k runKey) lipgloss.Style {
	st := m.cfg.Style
	tok := st.Token(k.cat)
	switch k.mark {
	case markCursor:
		return st.Cursor
	case markSelection:
		return st.Selection.Inherit(tok)
	case markBracket:
		return st.BracketMatch.Inherit(tok)
	case markSearch:
		return st.SearchMatch.Inherit(tok)
	default:
		return tok
	}
}

func (m *Model) renderLine(
	line syntax.Line,
	row, lineStart int,
	cursor buffer.Pos,
	sel buffer.Range,
	selOK bool,
	width int,
) string {
	runes := []rune(line.Text)
	left := m.xOffset
	right := int(^uint(0) >> 1)
	if width > 0 {
		right = left + width
	}

	var (
		sb      strings.Builder
		run     strings.Builder
		runK    runKey
		hasRun  bool
		visible bool
		si      int
		tok     int
		cell    int
	)
	flush := func() {
		if hasRun {
			sb.WriteString(m.styleFor(runK).Render(run.String()))
			run.Reset()
			hasRun = false
		}
	}
	emit := func(k runKey, s string) {
		if hasRun && k != runK {
			flush()
		}
		runK = k
		hasRun = true
		run.WriteString(s)
	}

	for col, r := range runes {
		w := runeCells(r)
		mk := m.markAt(row, col, lineStart, cursor, sel, selOK, &si)
		for tok < len(line.Tokens) && line.Tokens[tok].End <= col {
			tok++
		}
		cat := syntax.Plain
		if tok < len(line.Tokens) && line.Tokens[tok].Start <= col {
			cat = line.Tokens[tok].Category
		}
		k := runKey{mark: mk, cat: cat}

		if w == 0 {
			// Combining runes ride along with the visible rune before them.
			if visible {
				run.WriteRune(r)
			}
			continue
		}

		start, end := cell, cell+w
		cell = end
		switch {
		case end <= left:
			visible = false
			continue
		case start >= right:
			visible = false
			flush()
			return sb.String()
		case start < left || end > right:
			// Wide rune cut by the window edge.
			visible = false
			emit(runKey{}, strings.Repeat(" ", minInt(end, right)-maxInt(start, left)))
			continue
		}

		visible = true
		if r == '\t' {
			emit(k, strings.Repeat(" ", tabCells))
		} else {
			emit(k, string(r))
		}
	}

	if m.focused && row == cursor.Row && cursor.Col >= len(runes) && cell >= left && cell < right {
		emit(runKey{mark: markCursor}, " ")
	}
	flush()
	return sb.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
