package buffer

import "strings"

type Options struct {
	HistoryLimit int // default: 1000
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer is the pure document state: text, cursor, and selection.
type Buffer struct {
	lines       [][]rune
	version     uint64
	textVersion uint64

	cursor Pos
	sel    selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		lines:   splitLines(text),
		version: 0,
		cursor:  Pos{Row: 0, Col: 0},
		sel:     selectionState{},
		opt:     opt,
	}
}

func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Len returns the document length in runes, counting each line break as one.
func (b *Buffer) Len() int {
	return b.docRuneLen()
}

// LineCount returns the number of logical lines (at least 1).
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// Version increments on every effective mutation (text, cursor or selection).
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion increments only when the document text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor && !b.sel.active {
		return
	}
	b.cursor = next
	b.sel = selectionState{}
	b.version++
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the raw selection anchor/end without normalization.
//
// This is useful for UI layers that need to preserve the selection direction
// (e.g. shift+arrow behavior) while still treating empty selections as inactive.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.end {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.end}, true
}

// SetSelection sets the selection anchor to r.Start and its moving end (and the
// cursor) to r.End. An empty range clears the selection.
func (b *Buffer) SetSelection(r Range) {
	clamped := ClampRange(r, len(b.lines), b.lineLen)
	next := selectionState{
		active: true,
		anchor: clamped.Start,
		end:    clamped.End,
	}
	if clamped.Start == clamped.End {
		next = selectionState{}
	}

	if selectionStateEqual(b.sel, next) && b.cursor == clamped.End {
		return
	}

	b.sel = next
	b.cursor = clamped.End
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	if _, ok := b.Selection(); !ok {
		b.sel = selectionState{}
		return
	}
	b.sel = selectionState{}
	b.version++
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
