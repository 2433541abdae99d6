// Package command implements the editing commands of the code editor as pure
// transformations of (text, selection) state.
//
// Every command receives the full buffer and selection and returns the full new
// buffer with the intended selection. Offsets are rune offsets. The bool result
// reports whether the text changed; a command may move the cursor without
// changing text (for example when skipping over a closing delimiter).
package command

import "github.com/iw2rmb/orusplay/brackets"

// IndentUnit is inserted by Tab and used for one level of auto-indent.
const IndentUnit = "    "

// State is a buffer with a selection. Start == End means a plain cursor.
type State struct {
	Text  string
	Start int
	End   int
}

// Cursor returns a State with the cursor at offset and no selection.
func Cursor(text string, offset int) State {
	return State{Text: text, Start: offset, End: offset}
}

// HasSelection reports whether s selects at least one character.
func (s State) HasSelection() bool { return s.Start != s.End }

// Selected returns the selected text.
func (s State) Selected() string {
	n := s.normalize()
	return string(n.runes[n.Start:n.End])
}

// Command transforms a state.
type Command func(State) (State, bool)

type normState struct {
	runes []rune
	Start int
	End   int
}

func (s State) normalize() normState {
	runes := []rune(s.Text)
	start := clamp(s.Start, 0, len(runes))
	end := clamp(s.End, 0, len(runes))
	if start > end {
		start, end = end, start
	}
	return normState{runes: runes, Start: start, End: end}
}

// replace swaps [start, end) for ins and places the selection at
// [selStart, selEnd] relative to the new text.
func (n normState) replace(ins string, selStart, selEnd int) State {
	insRunes := []rune(ins)
	out := make([]rune, 0, len(n.runes)-(n.End-n.Start)+len(insRunes))
	out = append(out, n.runes[:n.Start]...)
	out = append(out, insRunes...)
	out = append(out, n.runes[n.End:]...)
	return State{Text: string(out), Start: selStart, End: selEnd}
}

func (n normState) at(i int) rune {
	if i < 0 || i >= len(n.runes) {
		return 0
	}
	return n.runes[i]
}

func (n normState) state() State {
	return State{Text: string(n.runes), Start: n.Start, End: n.End}
}

// Insert replaces the selection with text and puts the cursor after it.
func Insert(s State, text string) (State, bool) {
	n := s.normalize()
	if text == "" && n.Start == n.End {
		return n.state(), false
	}
	pos := n.Start + len([]rune(text))
	return n.replace(text, pos, pos), true
}

// Tab replaces the selection with one indent unit.
func Tab(s State) (State, bool) {
	return Insert(s, IndentUnit)
}

// Enter inserts a line break that keeps the indentation of the text before the
// cursor on the current line, adding one level after an opening delimiter.
// When a closing delimiter also follows the cursor, the closer moves to its own
// line at the original indentation and the cursor lands on the indented line
// between them.
func Enter(s State) (State, bool) {
	n := s.normalize()

	lineStart := n.Start
	for lineStart > 0 && n.runes[lineStart-1] != '\n' {
		lineStart--
	}
	before := n.runes[lineStart:n.Start]
	indent := string(leadingSpace(before))

	extra := ""
	if endsWithOpener(before) {
		extra = IndentUnit
	}

	ins := "\n" + indent + extra
	cursor := n.Start + 1 + len([]rune(indent)) + len([]rune(extra))
	if extra != "" && brackets.IsClose(n.at(n.Start)) {
		ins += "\n" + indent
	}
	return n.replace(ins, cursor, cursor), true
}

// Backspace deletes the selection, or the rune before the cursor. An empty
// pair around the cursor is deleted as a whole.
func Backspace(s State) (State, bool) {
	n := s.normalize()
	if n.Start != n.End {
		return n.replace("", n.Start, n.Start), true
	}
	if n.Start == 0 {
		return n.state(), false
	}

	prev, next := n.at(n.Start-1), n.at(n.Start)
	if closer, ok := autoPairs[prev]; ok && next == closer {
		n.Start--
		n.End++
		return n.replace("", n.Start, n.Start), true
	}
	n.Start--
	return n.replace("", n.Start, n.Start), true
}

// Delete deletes the selection, or the rune after the cursor.
func Delete(s State) (State, bool) {
	n := s.normalize()
	if n.Start != n.End {
		return n.replace("", n.Start, n.Start), true
	}
	if n.End >= len(n.runes) {
		return n.state(), false
	}
	n.End++
	return n.replace("", n.Start, n.Start), true
}

func leadingSpace(line []rune) []rune {
	i := 0
	for i < len(line) && line[i] != '\n' && isSpace(line[i]) {
		i++
	}
	return line[:i]
}

func endsWithOpener(line []rune) bool {
	i := len(line) - 1
	for i >= 0 && isSpace(line[i]) {
		i--
	}
	return i >= 0 && brackets.IsOpen(line[i])
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
