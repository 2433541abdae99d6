package editor

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/orusplay/brackets"
	"github.com/iw2rmb/orusplay/buffer"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Text: "a\nb\nc"})
	m = m.Blur()

	m = m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	m := New(Config{
		Text:         "one\ntwo\nthree\nfour\nfive",
		ShowLineNums: true,
	})
	m = m.Blur()
	m = m.SetSize(8, 3)

	got := strings.Split(m.View(), "\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}

	want := []string{
		"1 one",
		"2 two",
		"3 three",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", want) {
		t.Fatalf("unexpected view:\n got: %q\nwant: %q", got, want)
	}
}

func TestNew_CleansInitialText(t *testing.T) {
	m := New(Config{Text: "a &amp; b\r\nc"})
	if got := m.Value(); got != "a & b\nc" {
		t.Fatalf("initial value: got %q, want %q", got, "a & b\nc")
	}
}

func TestSetValue_KeepsComparisons(t *testing.T) {
	const src = "if a<b {\n    print(a)\n}"
	m := New(Config{Text: src})
	if got := m.Value(); got != src {
		t.Fatalf("initial value: got %q, want %q", got, src)
	}
	m = m.SetValue("print(a < b)")
	if got := m.Value(); got != "print(a < b)" {
		t.Fatalf("after SetValue: got %q, want %q", got, "print(a < b)")
	}
}

func TestDerivedState_CurrentLineSelectionAndBrackets(t *testing.T) {
	m := New(Config{Text: "fn main() {\n    x\n}"})

	if got := m.CurrentLine(); got != 1 {
		t.Fatalf("current line at start: got %d, want %d", got, 1)
	}
	if _, ok := m.SelectionLines(); ok {
		t.Fatalf("selection lines without selection: got ok=true")
	}

	// Cursor right after '(' of "main(": the pair ( ) matches.
	m.Buffer().SetCursor(buffer.Pos{Row: 0, Col: 8})
	m, _ = m.Update(nil)
	got, ok := m.BracketMatch()
	if !ok || got != (brackets.Match{Start: 7, End: 8}) {
		t.Fatalf("bracket match at col 8: got %v ok=%v, want {7 8}", got, ok)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	if got := m.CurrentLine(); got != 3 {
		t.Fatalf("current line after shift+down: got %d, want %d", got, 3)
	}
	span, ok := m.SelectionLines()
	if !ok || span != (buffer.LineSpan{Start: 0, End: 2}) {
		t.Fatalf("selection lines: got %v ok=%v, want {0 2}", span, ok)
	}

	// The closing brace at the end of the document pairs with the opener.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	got, ok = m.BracketMatch()
	if !ok || got != (brackets.Match{Start: 10, End: 18}) {
		t.Fatalf("bracket match at end: got %v ok=%v, want {10 18}", got, ok)
	}
}

func TestView_PlaceholderOnEmptyBuffer(t *testing.T) {
	m := New(Config{Placeholder: "// Write your Orus code here..."})
	m = m.Blur()
	m = m.SetSize(40, 1)

	got := strings.TrimRight(stripANSI(m.View()), " ")
	if got != "// Write your Orus code here..." {
		t.Fatalf("placeholder view: got %q", got)
	}

	m = m.SetValue("x")
	got = strings.TrimRight(stripANSI(m.View()), " ")
	if got != "x" {
		t.Fatalf("view after SetValue: got %q, want %q", got, "x")
	}
}

func TestView_HorizontalScrollFollowsCursor(t *testing.T) {
	m := New(Config{Text: "0123456789abcdef", ShowLineNums: true})
	m = m.SetSize(8, 1) // gutter "1 " leaves 6 cells

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if got := m.xOffset; got != 11 {
		t.Fatalf("xoffset at line end: got %d, want %d", got, 11)
	}
	got := strings.TrimRight(stripANSI(m.View()), " ")
	if got != "1 bcdef" {
		t.Fatalf("view at line end: got %q, want %q", got, "1 bcdef")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if got := m.xOffset; got != 0 {
		t.Fatalf("xoffset at line start: got %d, want %d", got, 0)
	}
}

func TestCursorScreenPos(t *testing.T) {
	m := New(Config{Text: "ab\ncd", ShowLineNums: true})
	m = m.SetSize(10, 2)
	m.Buffer().SetCursor(buffer.Pos{Row: 1, Col: 1})

	x, y, ok := m.CursorScreenPos()
	if !ok || x != 3 || y != 1 {
		t.Fatalf("cursor screen pos: got (%d,%d,%v), want (3,1,true)", x, y, ok)
	}
}
