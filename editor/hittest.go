package editor

import "github.com/iw2rmb/orusplay/buffer"

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// (0,0) is the top-left of the visible content region. Gutter clicks map to
// column 0 and coordinates are clamped into document bounds.
func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	n := m.buf.LineCount()
	row := clampInt(m.viewport.YOffset+y, 0, n-1)
	line := []rune(m.buf.Line(row))

	gw := m.gutterWidth(n)
	if x < gw {
		return buffer.Pos{Row: row, Col: 0}
	}
	cell := x - gw + m.xOffset
	return buffer.Pos{Row: row, Col: colAtCell(line, cell)}
}

// docToScreenPos maps a document position to viewport-local coordinates.
//
// ok is false when the position is scrolled out of view.
func (m *Model) docToScreenPos(pos buffer.Pos) (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	n := m.buf.LineCount()
	row := clampInt(pos.Row, 0, n-1)
	line := []rune(m.buf.Line(row))
	col := clampInt(pos.Col, 0, len(line))

	y = row - m.viewport.YOffset
	x = cellOffset(line, col) - m.xOffset + m.gutterWidth(n)
	if y < 0 || y >= m.visibleRowCount() {
		return x, y, false
	}
	if x < 0 || x >= m.viewport.Width {
		return x, y, false
	}
	return x, y, true
}

// CursorScreenPos returns where the cursor is drawn inside the editor, for
// hosts that anchor overlays to it.
func (m Model) CursorScreenPos() (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	return m.docToScreenPos(m.buf.Cursor())
}
