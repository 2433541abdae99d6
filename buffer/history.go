package buffer

type bufferSnapshot struct {
	text   string
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text:   b.Text(),
		cursor: b.cursor,
		sel:    b.sel,
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.lines = splitLines(s.text)
	b.cursor = ClampPos(s.cursor, len(b.lines), b.lineLen)

	if !s.sel.active {
		b.sel = selectionState{}
		return
	}

	anchor := ClampPos(s.sel.anchor, len(b.lines), b.lineLen)
	end := ClampPos(s.sel.end, len(b.lines), b.lineLen)
	if NormalizeRange(Range{Start: anchor, End: end}).IsEmpty() {
		b.sel = selectionState{}
		return
	}
	b.sel = selectionState{active: true, anchor: anchor, end: end}
}

// recordUndo saves prev before a text change and drops the redo branch. A
// non-positive HistoryLimit disables history.
func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}
	b.hist.undo = pushSnapshot(b.hist.undo, prev, limit)
	b.hist.redo = nil
}

func pushSnapshot(stack []bufferSnapshot, s bufferSnapshot, limit int) []bufferSnapshot {
	stack = append(stack, s)
	if limit > 0 && len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}

// Undo restores the state before the most recent text change. It reports
// false when there is nothing to undo.
func (b *Buffer) Undo() bool {
	return b.travel(&b.hist.undo, &b.hist.redo, 0)
}

// Redo reapplies the most recently undone change.
func (b *Buffer) Redo() bool {
	return b.travel(&b.hist.redo, &b.hist.undo, b.opt.HistoryLimit)
}

// travel pops the newest snapshot off from, pushes the current state onto to
// (bounded by limit when positive) and restores the popped state as one Change.
func (b *Buffer) travel(from, to *[]bufferSnapshot, limit int) bool {
	n := len(*from)
	if n == 0 {
		return false
	}

	cur := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	target := (*from)[n-1]
	*from = (*from)[:n-1]
	*to = pushSnapshot(*to, cur, limit)

	b.restore(target)
	b.version++
	if cur.text != target.text {
		b.textVersion++
	}
	if applied, ok := replacementAppliedEdit(cur.text, target.text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
	return true
}
