package command

import (
	"strings"

	"github.com/iw2rmb/orusplay/buffer"
)

const commentMarker = "//"

// ToggleComment comments or uncomments every line touched by the selection
// (or the cursor line). When all of them already start with "//" after their
// indentation, one "//" and a single following blank are removed from each;
// otherwise "// " is inserted after each line's indentation. The selection
// follows the text it covered.
func ToggleComment(s State) (State, bool) {
	n := s.normalize()
	text := string(n.runes)
	first := buffer.LineNumberAt(text, n.Start) - 1
	last := buffer.LineNumberAt(text, n.End) - 1

	lines := strings.Split(text, "\n")
	uncomment := true
	for i := first; i <= last; i++ {
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), commentMarker) {
			uncomment = false
			break
		}
	}

	// edits[i] describes the change on line first+i: at rune column col,
	// removed runes were dropped and added runes inserted.
	type lineEdit struct{ col, removed, added int }
	edits := make([]lineEdit, 0, last-first+1)
	for i := first; i <= last; i++ {
		line := []rune(lines[i])
		indent := len(leadingSpace(line))
		rest := line[indent:]
		if uncomment {
			if !strings.HasPrefix(string(rest), commentMarker) {
				edits = append(edits, lineEdit{col: indent})
				continue
			}
			drop := len([]rune(commentMarker))
			if drop < len(rest) && isBlank(rest[drop]) {
				drop++
			}
			lines[i] = string(line[:indent]) + string(rest[drop:])
			edits = append(edits, lineEdit{col: indent, removed: drop})
			continue
		}
		lines[i] = string(line[:indent]) + commentMarker + " " + string(rest)
		edits = append(edits, lineEdit{col: indent, added: len([]rune(commentMarker)) + 1})
	}

	remap := func(off int) int {
		row := buffer.LineNumberAt(text, off) - 1
		lineStart := lineStartOffset(n.runes, off)
		col := off - lineStart
		shift := 0
		for i := first; i < row && i <= last; i++ {
			shift += edits[i-first].added - edits[i-first].removed
		}
		if row < first || row > last {
			return off + shift
		}
		e := edits[row-first]
		switch {
		case e.added > 0 && col >= e.col:
			col += e.added
		case e.removed > 0 && col >= e.col+e.removed:
			col -= e.removed
		case e.removed > 0 && col > e.col:
			col = e.col
		}
		return lineStart + shift + col
	}

	return State{Text: strings.Join(lines, "\n"), Start: remap(n.Start), End: remap(n.End)}, true
}

// Duplicate copies the cursor line below itself, keeping the cursor column on
// the copy. With a selection, the selected text is inserted right after itself
// and the copy becomes the selection.
func Duplicate(s State) (State, bool) {
	n := s.normalize()
	if n.Start != n.End {
		sel := string(n.runes[n.Start:n.End])
		at := normState{runes: n.runes, Start: n.End, End: n.End}
		return at.replace(sel, n.End, n.End+(n.End-n.Start)), true
	}

	lineStart := lineStartOffset(n.runes, n.Start)
	lineEnd := n.Start
	for lineEnd < len(n.runes) && n.runes[lineEnd] != '\n' {
		lineEnd++
	}
	line := string(n.runes[lineStart:lineEnd])
	at := normState{runes: n.runes, Start: lineEnd, End: lineEnd}
	pos := n.Start + (lineEnd - lineStart) + 1
	return at.replace("\n"+line, pos, pos), true
}

func lineStartOffset(runes []rune, off int) int {
	for off > 0 && runes[off-1] != '\n' {
		off--
	}
	return off
}
