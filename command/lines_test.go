package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleComment(t *testing.T) {
	cases := []struct {
		name string
		in   State
		want State
	}{
		{
			name: "adds after indentation",
			in:   Cursor("    let a = 1", 8),
			want: Cursor("    // let a = 1", 11),
		},
		{
			name: "removes marker and one blank",
			in:   Cursor("    // let a = 1", 11),
			want: Cursor("    let a = 1", 8),
		},
		{
			name: "removes marker without blank",
			in:   Cursor("//x", 3),
			want: Cursor("x", 1),
		},
		{
			name: "mixed lines get commented",
			in:   State{Text: "// a\nb", Start: 0, End: 6},
			want: State{Text: "// // a\n// b", Start: 3, End: 12},
		},
		{
			name: "only touched lines",
			in:   State{Text: "a\nb\nc", Start: 2, End: 3},
			want: State{Text: "a\n// b\nc", Start: 5, End: 6},
		},
		{
			name: "cursor inside removed marker",
			in:   Cursor("  // x", 3),
			want: Cursor("  x", 2),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := ToggleComment(tc.in)
			assert.True(t, changed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToggleComment_TwiceRestores(t *testing.T) {
	inputs := []State{
		{Text: "fn main() {\n    print(1)\n\n    // note\n}", Start: 3, End: 30},
		{Text: "a\n  b\n\tc", Start: 0, End: 8},
		{Text: "// x\n// y", Start: 1, End: 8},
		Cursor("", 0),
	}
	for _, in := range inputs {
		once, _ := ToggleComment(in)
		twice, _ := ToggleComment(once)
		assert.Equal(t, in.Text, twice.Text, "input %q", in.Text)
	}
}

func TestDuplicate_Line(t *testing.T) {
	got, changed := Duplicate(Cursor("abc", 1))
	assert.True(t, changed)
	assert.Equal(t, Cursor("abc\nabc", 5), got)
	assert.Equal(t, 2, strings.Count(got.Text, "\n")+1)

	got, _ = Duplicate(Cursor("x\n  yz\nw", 4))
	assert.Equal(t, Cursor("x\n  yz\n  yz\nw", 9), got)
}

func TestDuplicate_EmptyLine(t *testing.T) {
	got, _ := Duplicate(Cursor("a\n\nb", 2))
	assert.Equal(t, Cursor("a\n\n\nb", 3), got)
}

func TestDuplicate_Selection(t *testing.T) {
	got, changed := Duplicate(State{Text: "let ab = 1", Start: 4, End: 6})
	assert.True(t, changed)
	assert.Equal(t, State{Text: "let abab = 1", Start: 6, End: 8}, got)
}
