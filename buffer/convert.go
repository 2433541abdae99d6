package buffer

// Linear offsets count runes, with every line break counted as one rune. This
// matches the (text, selectionStart, selectionEnd) view used by the editing
// commands.

func (b *Buffer) docRuneLen() int {
	n := 0
	for i, line := range b.lines {
		if i > 0 {
			n++
		}
		n += len(line)
	}
	return n
}

// OffsetFromPos converts p to a linear rune offset. p is clamped into the
// document first.
func (b *Buffer) OffsetFromPos(p Pos) int {
	p = b.clampPos(p)
	off := 0
	for row := 0; row < p.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + p.Col
}

// PosFromOffset converts a linear rune offset to a position. Offsets outside
// [0, Len()] are clamped.
func (b *Buffer) PosFromOffset(off int) Pos {
	return b.posFromOffset(off)
}

func (b *Buffer) posFromOffset(off int) Pos {
	if off <= 0 {
		return Pos{}
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}
		}
		off -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}
}

// CursorOffset returns the cursor as a linear rune offset.
func (b *Buffer) CursorOffset() int {
	return b.OffsetFromPos(b.cursor)
}

// SelectionOffsets returns the selection as ordered linear offsets
// (start <= end). Without a selection both values equal the cursor offset.
func (b *Buffer) SelectionOffsets() (start, end int) {
	r, ok := b.Selection()
	if !ok {
		c := b.CursorOffset()
		return c, c
	}
	return b.OffsetFromPos(r.Start), b.OffsetFromPos(r.End)
}

// SelectOffsets sets the selection from linear offsets. The anchor stays at
// anchor and the cursor moves to cursor; equal offsets just place the cursor.
func (b *Buffer) SelectOffsets(anchor, cursor int) {
	a := b.posFromOffset(anchor)
	c := b.posFromOffset(cursor)
	if a == c {
		b.SetCursor(c)
		return
	}
	b.SetSelection(Range{Start: a, End: c})
}
