package buffer

// LineNumberAt returns the 1-based line number containing the rune offset in
// text: one plus the number of '\n' before offset. Offsets are clamped into
// [0, len(text)], so the result is at least 1 and never decreases as offset
// grows. A "\r\n" pair counts once.
func LineNumberAt(text string, offset int) int {
	line := 1
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
		}
		i++
	}
	return line
}

// LineSpan is an inclusive range of 0-based line indexes.
type LineSpan struct {
	Start int
	End   int
}

// Contains reports whether line index row lies in s.
func (s LineSpan) Contains(row int) bool {
	return row >= s.Start && row <= s.End
}

// SelectionLines returns the lines touched by the rune range [start, end].
// It reports false when start == end (no selection). Offsets are normalized so
// Start <= End.
func SelectionLines(text string, start, end int) (LineSpan, bool) {
	if start == end {
		return LineSpan{}, false
	}
	if start > end {
		start, end = end, start
	}
	return LineSpan{
		Start: LineNumberAt(text, start) - 1,
		End:   LineNumberAt(text, end) - 1,
	}, true
}
