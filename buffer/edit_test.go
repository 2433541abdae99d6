package buffer

import "testing"

func TestBuffer_InsertText(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		cursor     Pos
		insert     string
		wantText   string
		wantCursor Pos
	}{
		{"middle", "ab", Pos{Col: 1}, "X", "aXb", Pos{Col: 2}},
		{"multiline", "ab", Pos{Col: 1}, "1\n22\n3", "a1\n22\n3b", Pos{Row: 2, Col: 1}},
		{"newline at end", "ab", Pos{Col: 2}, "\n", "ab\n", Pos{Row: 1, Col: 0}},
		{"non-ascii", "\u00e9", Pos{Col: 1}, "\u00fc", "\u00e9\u00fc", Pos{Col: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.text, Options{})
			b.SetCursor(tc.cursor)
			b.InsertText(tc.insert)
			if got := b.Text(); got != tc.wantText {
				t.Fatalf("text=%q, want %q", got, tc.wantText)
			}
			if got := b.Cursor(); got != tc.wantCursor {
				t.Fatalf("cursor=%v, want %v", got, tc.wantCursor)
			}
		})
	}
}

func TestBuffer_InsertReplacesSelection(t *testing.T) {
	b := New("hello world", Options{})
	b.SetSelection(Range{Start: Pos{Col: 0}, End: Pos{Col: 5}})
	b.InsertText("bye")
	if got, want := b.Text(), "bye world"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_DeleteSelection(t *testing.T) {
	b := New("ab\ncd", Options{})
	v := b.Version()
	b.DeleteSelection()
	if got := b.Version(); got != v {
		t.Fatalf("version without selection=%d, want unchanged %d", got, v)
	}

	b.SetSelection(Range{Start: Pos{Row: 1, Col: 1}, End: Pos{Row: 0, Col: 1}})
	b.DeleteSelection()
	if got, want := b.Text(), "ad"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_InsertEmptyText(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()
	b.InsertText("")
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want unchanged %d", got, v)
	}

	b.SetSelection(Range{Start: Pos{Col: 1}, End: Pos{Col: 3}})
	b.InsertText("")
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_ReplaceSetsSelectionFromOffsets(t *testing.T) {
	b := New("abc", Options{})
	b.Replace("abc\nabc", 4, 7)

	if got, want := b.Text(), "abc\nabc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection")
	}
	if want := (Range{Start: Pos{Row: 1, Col: 0}, End: Pos{Row: 1, Col: 3}}); r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}
	if !b.Undo() {
		t.Fatalf("expected replace to be undoable")
	}
	if got, want := b.Text(), "abc"; got != want {
		t.Fatalf("text after undo=%q, want %q", got, want)
	}
}

func TestBuffer_ReplaceSameTextOnlyMovesCursor(t *testing.T) {
	b := New("abc", Options{})
	tv := b.TextVersion()
	b.Replace("abc", 2, 2)
	if got, want := b.Cursor(), (Pos{Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if got := b.TextVersion(); got != tv {
		t.Fatalf("text version=%d, want unchanged %d", got, tv)
	}
	if b.Undo() {
		t.Fatalf("expected no history entry for cursor-only replace")
	}
}

func TestBuffer_ReplaceFromHostSource(t *testing.T) {
	b := New("a", Options{})
	b.ReplaceFromHost("b", 1, 1)
	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := ch.Source, ChangeSourceHost; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
}

func TestBuffer_TextInRange(t *testing.T) {
	b := New("ab\ncd\nef", Options{})
	got := b.TextInRange(Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 2, Col: 1}})
	if want := "b\ncd\ne"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
