package editor

import "github.com/mattn/go-runewidth"

// layoutViewport sizes the viewport, leaving one row for the search bar while
// it is open.
func (m *Model) layoutViewport() {
	h := m.height
	if m.searchOpen && h > 0 {
		h--
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m *Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}

// contentWidth is the number of text cells right of the gutter. Zero or less
// means the width is unknown and lines are not clipped.
func (m *Model) contentWidth(lineCount int) int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if w <= 0 {
		return 0
	}
	w -= m.gutterWidth(lineCount)
	if w <= 0 {
		return 1
	}
	return w
}

// followCursor scrolls vertically and horizontally until the cursor is
// visible.
func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()

	if h := m.visibleRowCount(); h > 0 {
		y := m.viewport.YOffset
		switch {
		case cur.Row < y:
			m.viewport.SetYOffset(cur.Row)
		case cur.Row >= y+h:
			m.viewport.SetYOffset(cur.Row - h + 1)
		}
	}

	w := m.contentWidth(m.buf.LineCount())
	if w <= 0 {
		if m.xOffset != 0 {
			m.xOffset = 0
			m.rebuildContent()
		}
		return
	}
	cell := cellOffset([]rune(m.buf.Line(cur.Row)), cur.Col)
	next := m.xOffset
	switch {
	case cell < next:
		next = cell
	case cell >= next+w:
		next = cell - w + 1
	}
	if next != m.xOffset {
		m.xOffset = next
		m.rebuildContent()
	}
}

const tabCells = 4

// runeCells is the display width of r. Tabs expand to a fixed width.
func runeCells(r rune) int {
	if r == '\t' {
		return tabCells
	}
	return runewidth.RuneWidth(r)
}

// cellOffset is the display column where rune column col of line starts.
func cellOffset(line []rune, col int) int {
	if col > len(line) {
		col = len(line)
	}
	n := 0
	for _, r := range line[:col] {
		n += runeCells(r)
	}
	return n
}

// colAtCell maps a display column to the rune column whose cell contains it.
// Zero-width runes stay attached to the rune before them.
func colAtCell(line []rune, cell int) int {
	if cell <= 0 {
		return 0
	}
	n := 0
	for i, r := range line {
		w := runeCells(r)
		if w > 0 && cell < n+w {
			return i
		}
		n += w
	}
	return len(line)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
