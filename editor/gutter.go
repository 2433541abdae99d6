package editor

import "fmt"

// LineNumberWidth returns the line-number gutter width for lineCount,
// including the separating space.
func LineNumberWidth(lineCount int) int {
	return gutterDigits(lineCount) + 1
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprint(lineCount))
}

func (m *Model) gutterWidth(lineCount int) int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return LineNumberWidth(lineCount)
}

// renderGutter renders the number cell of row (zero-based). The cursor line
// is emphasised while focused and lines touched by the selection are marked.
func (m *Model) renderGutter(row, digits int) string {
	st := m.cfg.Style.LineNum
	switch {
	case m.focused && row == m.currentLine-1:
		st = m.cfg.Style.LineNumActive
	case m.selLinesOK && m.selLines.Contains(row):
		st = m.cfg.Style.LineNumActive
	}
	return st.Render(fmt.Sprintf("%*d", digits, row+1)) + m.cfg.Style.Gutter.Render(" ")
}
