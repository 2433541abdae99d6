// Package grapheme steps over user-perceived characters in rune-indexed lines.
package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Next returns the rune column just past the grapheme cluster that starts at
// col. It returns len(line) at or past the end of the line.
func Next(line []rune, col int) int {
	if col < 0 {
		col = 0
	}
	if col >= len(line) {
		return len(line)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(string(line[col:]), -1)
	n := len([]rune(cluster))
	if n == 0 {
		n = 1
	}
	return col + n
}

// Prev returns the rune column where the grapheme cluster ending at col
// starts. It returns 0 at or before the start of the line.
func Prev(line []rune, col int) int {
	if col > len(line) {
		col = len(line)
	}
	if col <= 0 {
		return 0
	}
	start := 0
	for start < col {
		next := Next(line, start)
		if next >= col {
			return start
		}
		start = next
	}
	return start
}

// Count returns the number of grapheme clusters in line.
func Count(line []rune) int {
	if len(line) == 0 {
		return 0
	}
	return uniseg.GraphemeClusterCount(string(line))
}

// IsSpace reports whether r is Unicode whitespace.
func IsSpace(r rune) bool { return unicode.IsSpace(r) }

// IsWord reports whether r belongs to an identifier-like word.
func IsWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
