// Package syntax turns buffer text into per-line token lists and renders them.
//
// Tokens are half-open rune column ranges within a single line. Within a line
// they are sorted by Start and never overlap. The plain text is always the
// source of truth: renderers only decorate it.
package syntax

import (
	"sort"
	"strings"
)

// Category is the style class of a token.
type Category uint8

const (
	Plain Category = iota
	Comment
	String
	Number
	Keyword
	Type
	Builtin
	Call
)

var categoryNames = [...]string{
	Plain:   "plain",
	Comment: "comment",
	String:  "string",
	Number:  "number",
	Keyword: "keyword",
	Type:    "type",
	Builtin: "builtin",
	Call:    "call",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "plain"
}

// Token styles the rune columns [Start, End) of one line.
type Token struct {
	Start    int
	End      int
	Category Category
}

// Line is one line of text together with its tokens.
type Line struct {
	Text   string
	Tokens []Token
}

// Highlighter produces the tokens of a single line.
type Highlighter interface {
	TokenizeLine(line string) []Token
}

// HighlighterFunc adapts a plain function to Highlighter.
type HighlighterFunc func(line string) []Token

func (f HighlighterFunc) TokenizeLine(line string) []Token { return f(line) }

// Tokenize splits text on '\n' and tokenizes each line with h. A nil h yields
// lines without tokens.
func Tokenize(h Highlighter, text string) []Line {
	parts := strings.Split(text, "\n")
	out := make([]Line, 0, len(parts))
	for _, p := range parts {
		l := Line{Text: p}
		if h != nil {
			l.Tokens = Normalize(h.TokenizeLine(p), len([]rune(p)))
		}
		out = append(out, l)
	}
	return out
}

// Normalize clamps tokens into [0, lineLen], drops empty and Plain tokens,
// sorts them and drops any token overlapping an earlier one.
func Normalize(tokens []Token, lineLen int) []Token {
	if len(tokens) == 0 {
		return nil
	}
	if lineLen < 0 {
		lineLen = 0
	}

	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		start := clampInt(tok.Start, 0, lineLen)
		end := clampInt(tok.End, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end || tok.Category == Plain {
			continue
		}
		out = append(out, Token{Start: start, End: end, Category: tok.Category})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})

	merged := out[:0]
	for _, tok := range out {
		if n := len(merged); n > 0 && tok.Start < merged[n-1].End {
			continue
		}
		merged = append(merged, tok)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// CategoryAt returns the category covering rune column col of a line.
func CategoryAt(tokens []Token, col int) Category {
	i := sort.Search(len(tokens), func(i int) bool { return tokens[i].End > col })
	if i < len(tokens) && tokens[i].Start <= col {
		return tokens[i].Category
	}
	return Plain
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
