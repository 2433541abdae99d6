package buffer

import "cmp"

// Pos is a 0-based document position. Col counts runes, matching the rune
// offsets used by Replace and OffsetFromPos.
type Pos struct {
	Row int
	Col int
}

// Range is half-open: [Start, End). Only NormalizeRange guarantees
// Start <= End; raw selections keep their direction.
type Range struct {
	Start Pos
	End   Pos
}

// ComparePos orders positions row first, then column.
func ComparePos(a, b Pos) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) > 0 {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

// clampInt bounds v to [lo, hi]; an inverted interval yields lo.
func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

// ClampPos moves p into a document of rowCount lines (at least one) whose
// rune lengths come from lineLen. A nil lineLen treats every line as empty.
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	row := clampInt(p.Row, 0, max(rowCount, 1)-1)
	width := 0
	if lineLen != nil {
		width = max(lineLen(row), 0)
	}
	return Pos{Row: row, Col: clampInt(p.Col, 0, width)}
}

func ClampRange(r Range, rowCount int, lineLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, lineLen),
		End:   ClampPos(r.End, rowCount, lineLen),
	}
}
