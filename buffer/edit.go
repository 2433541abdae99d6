package buffer

import "strings"

// InsertText puts s at the cursor as a single ranged edit, replacing the
// selection if there is one. The cursor lands after s. Unlike Replace, the
// recorded Change covers only the affected range.
func (b *Buffer) InsertText(s string) {
	r, ok := b.Selection()
	if !ok {
		if s == "" {
			return
		}
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.editRange(r, s)
}

// DeleteSelection removes the selected text. Without a selection it does nothing.
func (b *Buffer) DeleteSelection() {
	if r, ok := b.Selection(); ok {
		b.editRange(r, "")
	}
}

// Replace swaps the whole document for text and places the selection at the
// given rune offsets (anchor == cursor means no selection). It is recorded as a
// single undoable change.
//
// Offsets are clamped into the new document.
func (b *Buffer) Replace(text string, anchor, cursor int) {
	b.replace(ChangeSourceLocal, text, anchor, cursor)
}

// ReplaceFromHost is Replace for text supplied by the embedding application.
// The resulting Change carries ChangeSourceHost.
func (b *Buffer) ReplaceFromHost(text string, anchor, cursor int) {
	b.replace(ChangeSourceHost, text, anchor, cursor)
}

func (b *Buffer) replace(source ChangeSource, text string, anchor, cursor int) {
	prev := b.snapshot()
	change := b.beginChange(source)

	textChanged := prev.text != text
	if textChanged {
		b.lines = splitLines(text)
	}

	nextCursor := b.posFromOffset(cursor)
	nextSel := selectionState{}
	if anchor != cursor {
		a := b.posFromOffset(anchor)
		if a != nextCursor {
			nextSel = selectionState{active: true, anchor: a, end: nextCursor}
		}
	}

	if !textChanged && nextCursor == b.cursor && selectionStateEqual(b.sel, nextSel) {
		return
	}

	b.cursor = nextCursor
	b.sel = nextSel
	b.version++
	if textChanged {
		b.textVersion++
		b.recordUndo(prev)
		if applied, ok := replacementAppliedEdit(prev.text, text); ok {
			change.addAppliedEdit(applied)
		}
	}
	b.commitChange(change)
}

// editRange replaces r with text, moves the cursor to the end of the inserted
// text and records the edit.
func (b *Buffer) editRange(r Range, text string) {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	nextCursor, applied, changed := b.replaceRange(r, text)
	if !changed {
		return
	}

	b.cursor = nextCursor
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col
	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return b.cursor, AppliedEdit{}, false
	}

	prefix := append([]rune(nil), b.lines[startRow][:startCol]...)
	suffix := append([]rune(nil), b.lines[endRow][endCol:]...)

	parts := strings.Split(text, "\n")
	ins := make([][]rune, 0, len(parts))
	for _, p := range parts {
		ins = append(ins, []rune(p))
	}

	repl := make([][]rune, 0, len(ins))
	if len(ins) == 1 {
		line := make([]rune, 0, len(prefix)+len(ins[0])+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins[0]...)
		line = append(line, suffix...)
		repl = append(repl, line)
		nextCursor = Pos{Row: startRow, Col: len(prefix) + len(ins[0])}
	} else {
		first := make([]rune, 0, len(prefix)+len(ins[0]))
		first = append(first, prefix...)
		first = append(first, ins[0]...)
		repl = append(repl, first)

		for i := 1; i < len(ins)-1; i++ {
			repl = append(repl, append([]rune(nil), ins[i]...))
		}

		lastPart := ins[len(ins)-1]
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)

		nextCursor = Pos{Row: startRow + len(ins) - 1, Col: len(lastPart)}
	}

	before := b.lines[:startRow]
	after := b.lines[endRow+1:]
	out := make([][]rune, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, after...)
	if len(out) == 0 {
		out = [][]rune{nil}
	}

	b.lines = out
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter: Range{
			Start: r.Start,
			End:   nextCursor,
		},
		InsertText:  text,
		DeletedText: deletedText,
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	startRow := r.Start.Row
	endRow := r.End.Row
	startCol := r.Start.Col
	endCol := r.End.Col

	if startRow == endRow {
		return string(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(string(lines[row][partStart:partEnd]))
	}
	return sb.String()
}

// TextInRange returns the document text covered by r.
func (b *Buffer) TextInRange(r Range) string {
	return textForLinesRange(b.lines, ClampRange(r, len(b.lines), b.lineLen))
}
