package buffer

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	// ChangeSourceHost marks text pushed in by the embedding application.
	ChangeSourceHost
)

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit is one text edit. RangeBefore is in the old document and
// RangeAfter covers InsertText in the new one.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change records one effective mutation: versions, cursor and selection on
// both sides, and the text edits it made. Cursor-only changes carry no edits.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{
		Active: true,
		Range:  r,
	}
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: selectionStateFromInternal(b.sel),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
}

// replacementAppliedEdit reduces a whole-text replacement to the single span
// between the common prefix and the common suffix of the two texts.
func replacementAppliedEdit(beforeText, afterText string) (AppliedEdit, bool) {
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	before, after := []rune(beforeText), []rune(afterText)

	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	start := posAt(before, prefix)
	return AppliedEdit{
		RangeBefore: Range{Start: start, End: posAt(before, len(before)-suffix)},
		RangeAfter:  Range{Start: start, End: posAt(after, len(after)-suffix)},
		InsertText:  string(after[prefix : len(after)-suffix]),
		DeletedText: string(before[prefix : len(before)-suffix]),
	}, true
}

// posAt converts a rune offset into text to a Pos.
func posAt(text []rune, off int) Pos {
	var p Pos
	for _, r := range text[:off] {
		if r == '\n' {
			p.Row++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}
