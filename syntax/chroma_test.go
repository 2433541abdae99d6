package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForLanguage(t *testing.T) {
	assert.IsType(t, Orus{}, ForLanguage(""))
	assert.IsType(t, Orus{}, ForLanguage(" Orus "))
	assert.IsType(t, &Chroma{}, ForLanguage("go"))
	assert.Nil(t, ForLanguage("no-such-language-xyz").TokenizeLine("let x = 1"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, Orus{}, ForFile("examples/main.orus"))
	assert.IsType(t, &Chroma{}, ForFile("script.py"))
}

func TestChroma_TokenizeLine(t *testing.T) {
	line := "func main() {} // hi"
	toks := Normalize(ForLanguage("go").TokenizeLine(line), len([]rune(line)))
	require.NotEmpty(t, toks)

	got := tokenTexts(line, toks)
	assert.Equal(t, tokText{Text: "func", Category: Keyword}, got[0])
	assert.Equal(t, tokText{Text: "// hi", Category: Comment}, got[len(got)-1])
}
