package syntax

import "regexp"

// Range is a half-open rune offset range [Start, End) into a whole buffer.
type Range struct {
	Start int
	End   int
}

// SearchRanges returns every non-overlapping case-insensitive occurrence of
// term in text. term is matched literally.
func SearchRanges(text, term string) []Range {
	if term == "" || text == "" {
		return nil
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		return nil
	}
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	cols := byteToRuneCols(text)
	out := make([]Range, 0, len(matches))
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		out = append(out, Range{Start: cols[m[0]], End: cols[m[1]]})
	}
	return out
}

// NextRange returns the index of the first range starting at or after offset,
// wrapping to 0. It returns -1 when ranges is empty.
func NextRange(ranges []Range, offset int) int {
	if len(ranges) == 0 {
		return -1
	}
	for i, r := range ranges {
		if r.Start >= offset {
			return i
		}
	}
	return 0
}
