package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokText struct {
	Text     string
	Category Category
}

func tokenTexts(line string, tokens []Token) []tokText {
	runes := []rune(line)
	out := make([]tokText, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, tokText{Text: string(runes[t.Start:t.End]), Category: t.Category})
	}
	return out
}

func TestCommentStart(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"", -1},
		{"x = 1 // note", 6},
		{`let s = "//not a comment"`, -1},
		{`let s = '//' // real`, 13},
		{`print("a\"//b") // c`, 16},
		{"// all comment", 0},
		{"a / b", -1},
		{"\"\u00e9\" // x", 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CommentStart(tc.line), "line %q", tc.line)
	}
}

func TestOrus_CommentInsideStringIsNotComment(t *testing.T) {
	line := `let s = "//not a comment"`
	for _, tok := range (Orus{}).TokenizeLine(line) {
		assert.NotEqual(t, Comment, tok.Category, "token %+v", tok)
	}
}

func TestOrus_TokenizeLine(t *testing.T) {
	line := `fn main() { let x: i32 = len("hi") + foo(2.5) // done`
	got := tokenTexts(line, (Orus{}).TokenizeLine(line))
	want := []tokText{
		{"fn", Keyword},
		{"main", Call},
		{"let", Keyword},
		{"i32", Type},
		{"len", Builtin},
		{`"hi"`, String},
		{"foo", Call},
		{"2.5", Number},
		{"// done", Comment},
	}
	assert.Equal(t, want, got)
}

func TestOrus_StringWinsOverKeyword(t *testing.T) {
	line := `print("fn let 42")`
	got := tokenTexts(line, (Orus{}).TokenizeLine(line))
	assert.Equal(t, []tokText{{"print", Builtin}, {`"fn let 42"`, String}}, got)
}

func TestOrus_CapitalizedTypeNames(t *testing.T) {
	line := "let p = Point { x: 1 }"
	got := tokenTexts(line, (Orus{}).TokenizeLine(line))
	assert.Equal(t, []tokText{{"let", Keyword}, {"Point", Type}, {"1", Number}}, got)
}

func TestOrus_UnterminatedStringRunsToEnd(t *testing.T) {
	line := `let s = "abc`
	got := tokenTexts(line, (Orus{}).TokenizeLine(line))
	assert.Equal(t, []tokText{{"let", Keyword}, {`"abc`, String}}, got)
}

func TestOrus_TokensSortedAndDisjoint(t *testing.T) {
	lines := []string{
		`struct Foo { a: Option, b: string } // x`,
		`for i in 0..10 { println(i * 2) }`,
		`let 'q' = "x" + 'y' // "z"`,
		"caf\u00e9(1)",
	}
	for _, line := range lines {
		toks := (Orus{}).TokenizeLine(line)
		n := len([]rune(line))
		for i, tok := range toks {
			require.Less(t, tok.Start, tok.End, "line %q", line)
			require.LessOrEqual(t, tok.End, n, "line %q", line)
			if i > 0 {
				require.LessOrEqual(t, toks[i-1].End, tok.Start, "line %q", line)
			}
		}
	}
}

func TestTokenize_SplitsLines(t *testing.T) {
	lines := Tokenize(Orus{}, "let a = 1\n\n// c")
	require.Len(t, lines, 3)
	assert.Equal(t, "let a = 1", lines[0].Text)
	assert.Empty(t, lines[1].Tokens)
	assert.Equal(t, []Token{{Start: 0, End: 4, Category: Comment}}, lines[2].Tokens)
}

func TestNormalize(t *testing.T) {
	got := Normalize([]Token{
		{Start: 5, End: 9, Category: Keyword},
		{Start: 0, End: 3, Category: String},
		{Start: 2, End: 6, Category: Number},
		{Start: 7, End: 7, Category: Call},
		{Start: 12, End: 10, Category: Type},
		{Start: 3, End: 4, Category: Plain},
	}, 11)
	assert.Equal(t, []Token{
		{Start: 0, End: 3, Category: String},
		{Start: 5, End: 9, Category: Keyword},
		{Start: 10, End: 11, Category: Type},
	}, got)
}

func TestCategoryAt(t *testing.T) {
	toks := []Token{{Start: 0, End: 2, Category: Keyword}, {Start: 4, End: 6, Category: String}}
	assert.Equal(t, Keyword, CategoryAt(toks, 1))
	assert.Equal(t, Plain, CategoryAt(toks, 3))
	assert.Equal(t, String, CategoryAt(toks, 4))
	assert.Equal(t, Plain, CategoryAt(toks, 6))
}
