package syntax

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ForLanguage returns the highlighter for a language tag. The empty tag and
// "orus" select Orus; any language chroma knows gets a chroma-backed
// highlighter; everything else is left unstyled.
func ForLanguage(lang string) Highlighter {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == "orus" {
		return Orus{}
	}
	if l := lexers.Get(lang); l != nil {
		return NewChroma(l)
	}
	return Plaintext()
}

// ForFile picks a highlighter from a file name.
func ForFile(name string) Highlighter {
	if strings.EqualFold(filepath.Ext(name), ".orus") {
		return Orus{}
	}
	if l := lexers.Match(filepath.Base(name)); l != nil {
		return NewChroma(l)
	}
	return Plaintext()
}

// Plaintext returns a highlighter that produces no tokens.
func Plaintext() Highlighter {
	return HighlighterFunc(func(string) []Token { return nil })
}

// Chroma adapts a chroma lexer to Highlighter. Lines are lexed independently,
// so constructs spanning lines are not recognised.
type Chroma struct {
	lexer chroma.Lexer
}

func NewChroma(l chroma.Lexer) *Chroma {
	return &Chroma{lexer: chroma.Coalesce(l)}
}

func (c *Chroma) TokenizeLine(line string) []Token {
	if line == "" {
		return nil
	}
	it, err := c.lexer.Tokenise(nil, line+"\n")
	if err != nil {
		return nil
	}

	var out []Token
	col := 0
	for _, tok := range it.Tokens() {
		n := len([]rune(strings.TrimSuffix(tok.Value, "\n")))
		if n == 0 {
			continue
		}
		if cat := categoryFromChroma(tok.Type); cat != Plain {
			out = append(out, Token{Start: col, End: col + n, Category: cat})
		}
		col += n
	}
	return out
}

func categoryFromChroma(tt chroma.TokenType) Category {
	switch {
	case tt.InCategory(chroma.Comment):
		return Comment
	case tt.InSubCategory(chroma.LiteralString):
		return String
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number
	case tt == chroma.KeywordType:
		return Type
	case tt.InCategory(chroma.Keyword):
		return Keyword
	case tt == chroma.NameBuiltin:
		return Builtin
	case tt == chroma.NameFunction:
		return Call
	case tt == chroma.NameClass:
		return Type
	default:
		return Plain
	}
}
