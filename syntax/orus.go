package syntax

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Keywords, type names and builtins of the Orus language.
var (
	Keywords = []string{
		"fn", "let", "mut", "const", "static", "struct", "impl", "if", "elif", "else",
		"match", "for", "while", "in", "return", "use", "pub", "try", "catch", "as",
		"break", "continue", "true", "false", "nil", "loop", "enum",
	}
	TypeNames = []string{
		"i32", "i64", "u32", "u64", "f64", "bool", "string", "void", "self", "Option", "Result",
	}
	Builtins = []string{
		"print", "println", "input", "len", "push", "pop", "reserve", "type_of", "timestamp",
		"int", "float", "read_file", "write_file", "split", "join", "trim", "upper", "lower",
		"contains", "starts_with", "ends_with", "abs", "sqrt", "pow", "sin", "cos", "tan",
		"floor", "ceil", "round", "random", "random_int", "sleep", "sort", "reverse",
		"insert", "remove",
	}
)

type rule struct {
	re       *regexp.Regexp
	category Category
	// group selects the submatch that becomes the token; 0 is the whole match.
	group int
}

// Order is priority: a later rule never claims text an earlier rule took.
var orusRules = []rule{
	{re: regexp.MustCompile(`"(?:[^"\\]|\\.)*"?|'(?:[^'\\]|\\.)*'?`), category: String},
	{re: regexp.MustCompile(`\b\d+(?:\.\d+)?\b`), category: Number},
	{re: wordsRegexp(Keywords), category: Keyword},
	{re: wordsRegexp(TypeNames), category: Type},
	{re: regexp.MustCompile(`\b(` + strings.Join(Builtins, "|") + `)\s*\(`), category: Builtin, group: 1},
	{re: regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`), category: Call, group: 1},
	{re: regexp.MustCompile(`\b[A-Z][A-Za-z0-9_]*\b`), category: Type},
}

func wordsRegexp(words []string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + strings.Join(words, "|") + `)\b`)
}

// Orus is the built-in highlighter for Orus source.
type Orus struct{}

// TokenizeLine splits line at its first real comment marker, tokenizes the code
// before it and styles the rest as a single Comment token.
func (Orus) TokenizeLine(line string) []Token {
	if line == "" {
		return nil
	}

	code := line
	commentCol := CommentStart(line)
	if commentCol >= 0 {
		code = string([]rune(line)[:commentCol])
	}

	tokens := tokenizeCode(code)
	if commentCol >= 0 {
		tokens = append(tokens, Token{Start: commentCol, End: len([]rune(line)), Category: Comment})
	}
	return tokens
}

type byteSpan struct {
	start, end int
	cat        Category
}

func tokenizeCode(code string) []Token {
	if strings.TrimSpace(code) == "" {
		return nil
	}

	claimed := make([]bool, len(code))
	var spans []byteSpan

	for _, r := range orusRules {
		for _, m := range r.re.FindAllStringSubmatchIndex(code, -1) {
			start, end := m[2*r.group], m[2*r.group+1]
			if start < 0 || start == end || overlaps(claimed, start, end) {
				continue
			}
			for i := start; i < end; i++ {
				claimed[i] = true
			}
			spans = append(spans, byteSpan{start: start, end: end, cat: r.category})
		}
	}
	if len(spans) == 0 {
		return nil
	}

	cols := byteToRuneCols(code)
	tokens := make([]Token, 0, len(spans))
	for _, sp := range spans {
		tokens = append(tokens, Token{Start: cols[sp.start], End: cols[sp.end], Category: sp.cat})
	}
	return Normalize(tokens, cols[len(code)])
}

func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// byteToRuneCols maps every byte offset of s (and len(s)) to a rune column.
func byteToRuneCols(s string) []int {
	cols := make([]int, len(s)+1)
	col := 0
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		for j := 0; j < size; j++ {
			cols[i+j] = col
		}
		i += size
		col++
	}
	cols[len(s)] = col
	return cols
}

// CommentStart returns the rune column of the first "//" in line that is not
// inside a single- or double-quoted string, or -1. Backslash escapes inside
// strings are honoured.
func CommentStart(line string) int {
	runes := []rune(line)
	var quote rune
	escaped := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				return i
			}
		}
	}
	return -1
}
