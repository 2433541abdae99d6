// Package brackets pairs the delimiters (), [] and {} around a cursor.
//
// Matching is lexical: delimiters inside strings and comments are counted like
// any other.
package brackets

// Pair returns the partner of a delimiter rune and whether r is the closing
// one. ok is false when r is not a delimiter.
func Pair(r rune) (match rune, closing, ok bool) {
	switch r {
	case '(':
		return ')', false, true
	case ')':
		return '(', true, true
	case '[':
		return ']', false, true
	case ']':
		return '[', true, true
	case '{':
		return '}', false, true
	case '}':
		return '{', true, true
	}
	return 0, false, false
}

// IsOpen reports whether r opens a delimiter pair.
func IsOpen(r rune) bool {
	_, closing, ok := Pair(r)
	return ok && !closing
}

// IsClose reports whether r closes a delimiter pair.
func IsClose(r rune) bool {
	_, closing, ok := Pair(r)
	return ok && closing
}

// Match holds the rune offsets of two matching delimiters, Start < End.
type Match struct {
	Start int
	End   int
}

// Find looks for a delimiter at offset, or failing that just before it, and
// returns it together with its partner. It reports false when neither position
// holds a delimiter or the delimiter is unbalanced.
func Find(text string, offset int) (Match, bool) {
	return FindRunes([]rune(text), offset)
}

// FindRunes is Find over a rune slice.
func FindRunes(text []rune, offset int) (Match, bool) {
	pos := -1
	switch {
	case offset >= 0 && offset < len(text) && isDelim(text[offset]):
		pos = offset
	case offset-1 >= 0 && offset-1 < len(text) && isDelim(text[offset-1]):
		pos = offset - 1
	default:
		return Match{}, false
	}

	other, ok := counterpart(text, pos)
	if !ok {
		return Match{}, false
	}
	if other < pos {
		return Match{Start: other, End: pos}, true
	}
	return Match{Start: pos, End: other}, true
}

// Counterpart returns the offset of the partner of the delimiter at pos.
func Counterpart(text string, pos int) (int, bool) {
	runes := []rune(text)
	if pos < 0 || pos >= len(runes) {
		return 0, false
	}
	return counterpart(runes, pos)
}

func counterpart(text []rune, pos int) (int, bool) {
	r := text[pos]
	match, closing, ok := Pair(r)
	if !ok {
		return 0, false
	}

	depth := 1
	if !closing {
		for i := pos + 1; i < len(text); i++ {
			switch text[i] {
			case r:
				depth++
			case match:
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
		return 0, false
	}

	for i := pos - 1; i >= 0; i-- {
		switch text[i] {
		case r:
			depth++
		case match:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func isDelim(r rune) bool {
	_, _, ok := Pair(r)
	return ok
}
