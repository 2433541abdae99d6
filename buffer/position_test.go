package buffer

import "testing"

func TestLineNumberAt(t *testing.T) {
	cases := []struct {
		text   string
		offset int
		want   int
	}{
		{"", 0, 1},
		{"", 42, 1},
		{"abc", -1, 1},
		{"a\nb", 1, 1},
		{"a\nb", 2, 2},
		{"a\nb\nc", 99, 3},
		{"a\r\nb", 3, 2},
		{"\u00e9\n\u00fc", 2, 2},
	}
	for _, tc := range cases {
		if got := LineNumberAt(tc.text, tc.offset); got != tc.want {
			t.Fatalf("LineNumberAt(%q, %d)=%d, want %d", tc.text, tc.offset, got, tc.want)
		}
	}
}

func TestLineNumberAt_Monotonic(t *testing.T) {
	text := "fn main() {\n\n    print(1)\r\n}\n"
	prev := LineNumberAt(text, 0)
	if prev != 1 {
		t.Fatalf("line at 0=%d, want 1", prev)
	}
	for o := 1; o <= len([]rune(text)); o++ {
		got := LineNumberAt(text, o)
		if got < prev {
			t.Fatalf("line at %d=%d decreased from %d", o, got, prev)
		}
		prev = got
	}
}

func TestSelectionLines(t *testing.T) {
	text := "a\nbb\nccc"

	if _, ok := SelectionLines(text, 3, 3); ok {
		t.Fatalf("expected no span for empty selection")
	}

	span, ok := SelectionLines(text, 6, 1)
	if !ok {
		t.Fatalf("expected span")
	}
	if want := (LineSpan{Start: 0, End: 2}); span != want {
		t.Fatalf("span=%v, want %v", span, want)
	}
	if !span.Contains(1) || span.Contains(3) {
		t.Fatalf("unexpected Contains result for %v", span)
	}

	span, _ = SelectionLines(text, -5, 1)
	if want := (LineSpan{Start: 0, End: 0}); span != want {
		t.Fatalf("clamped span=%v, want %v", span, want)
	}
}
