package command

import "github.com/iw2rmb/orusplay/brackets"

// autoPairs maps each auto-closed opener to its closer.
var autoPairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'"':  '"',
	'\'': '\'',
}

func isQuote(r rune) bool { return r == '"' || r == '\'' }

// Type inserts a typed rune.
//
//   - An opener or quote inserts its closer as well, with the cursor between.
//   - A closer or quote that is already the next character is skipped over.
//   - A quote typed while the text before the cursor holds an odd number of
//     unescaped quotes of that kind is inserted alone.
//   - Anything else replaces the selection.
func Type(s State, r rune) (State, bool) {
	n := s.normalize()
	noSel := n.Start == n.End

	if noSel && (isQuote(r) || brackets.IsClose(r)) && n.at(n.Start) == r {
		pos := n.Start + 1
		return State{Text: string(n.runes), Start: pos, End: pos}, false
	}

	if closer, ok := autoPairs[r]; ok {
		if !isQuote(r) || !insideString(n.runes[:n.Start], r) {
			pos := n.Start + 1
			return n.replace(string([]rune{r, closer}), pos, pos), true
		}
	}

	pos := n.Start + 1
	return n.replace(string(r), pos, pos), true
}

// insideString reports whether before ends inside an open string delimited by
// quote: the count of quote runes not preceded by a backslash is odd.
func insideString(before []rune, quote rune) bool {
	count := 0
	for i, r := range before {
		if r == quote && (i == 0 || before[i-1] != '\\') {
			count++
		}
	}
	return count%2 == 1
}
