package buffer

import "github.com/iw2rmb/orusplay/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, updates selection anchor/end; if false clears selection
}

func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	nextCursor := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != nextCursor {
			nextSel = selectionState{active: true, anchor: anchor, end: nextCursor}
		}
	} else if r, ok := b.Selection(); ok && m.Unit == MoveGrapheme {
		// Collapsing a selection with left/right lands on its edge.
		switch m.Dir {
		case DirLeft:
			nextCursor = r.Start
		case DirRight:
			nextCursor = r.End
		}
	}

	if prevCursor == nextCursor && selectionStateEqual(prevSel, nextSel) {
		return
	}

	b.cursor = nextCursor
	b.sel = nextSel
	b.version++
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active && !b.active {
		return true
	}
	return a.active == b.active && a.anchor == b.anchor && a.end == b.end
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) moveGrapheme(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if row == 0 && col == 0 {
			return p
		}
		if col > 0 {
			return Pos{Row: row, Col: grapheme.Prev(b.lines[row], col)}
		}
		prevRow := row - 1
		return Pos{Row: prevRow, Col: len(b.lines[prevRow])}
	case DirRight:
		if row == lastRow && col == len(b.lines[lastRow]) {
			return p
		}
		if col < len(b.lines[row]) {
			return Pos{Row: row, Col: grapheme.Next(b.lines[row], col)}
		}
		return Pos{Row: row + 1, Col: 0}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	line := b.lines[row]

	switch dir {
	case DirLeft:
		if col == 0 && row > 0 {
			return Pos{Row: row - 1, Col: len(b.lines[row-1])}
		}
		return Pos{Row: row, Col: prevWordBoundary(line, col)}
	case DirRight:
		if col == len(line) && row < len(b.lines)-1 {
			return Pos{Row: row + 1, Col: 0}
		}
		return Pos{Row: row, Col: nextWordBoundary(line, col)}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirHome:
		return Pos{Row: row, Col: 0}
	case DirEnd:
		return Pos{Row: row, Col: len(b.lines[row])}
	case DirUp:
		if row == 0 {
			return Pos{Row: 0, Col: 0}
		}
		nr := row - 1
		return Pos{Row: nr, Col: minInt(col, len(b.lines[nr]))}
	case DirDown:
		if row == lastRow {
			return Pos{Row: row, Col: len(b.lines[row])}
		}
		nr := row + 1
		return Pos{Row: nr, Col: minInt(col, len(b.lines[nr]))}
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	lastRow := len(b.lines) - 1
	lastCol := len(b.lines[lastRow])

	switch dir {
	case DirHome, DirUp:
		return Pos{Row: 0, Col: 0}
	case DirEnd, DirDown:
		return Pos{Row: lastRow, Col: lastCol}
	default:
		return p
	}
}

// Word boundaries: skip whitespace, then skip non-whitespace. Line breaks are
// handled by the caller.
func prevWordBoundary(line []rune, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && grapheme.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []rune, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && grapheme.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !grapheme.IsSpace(line[i]) {
		i++
	}
	return i
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
