package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/orusplay/editor"
	"github.com/iw2rmb/orusplay/playground"
	"github.com/iw2rmb/orusplay/syntax"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func TestReadProgram(t *testing.T) {
	name, code, err := readProgram(nil, "", strings.NewReader("a &amp; b\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "stdin", name)
	assert.Equal(t, "a & b\n", code)

	path := filepath.Join(t.TempDir(), "hello.orus")
	require.NoError(t, os.WriteFile(path, []byte("print(1)"), 0o644))
	name, code, err = readProgram([]string{path}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello.orus", name)
	assert.Equal(t, "print(1)", code)

	ex := playground.Examples()[0]
	name, _, err = readProgram([]string{path}, ex.Title, nil)
	require.NoError(t, err)
	assert.Equal(t, ex.Title, name)

	_, _, err = readProgram(nil, "No Such Example", nil)
	assert.ErrorIs(t, err, playground.ErrNoSuchExample)
}

func TestRenderANSI_KeepsText(t *testing.T) {
	code := "fn main() {\n    print(\"hi\") // greet\n}"
	lines := syntax.Tokenize(syntax.Orus{}, code)

	got := ansiRE.ReplaceAllString(renderANSI(lines, editor.DefaultStyle(true), false), "")
	assert.Equal(t, code, got)

	got = ansiRE.ReplaceAllString(renderANSI(lines, editor.DefaultStyle(true), true), "")
	assert.Equal(t, "1 fn main() {\n2     print(\"hi\") // greet\n3 }", got)
}

func TestPickHighlighter(t *testing.T) {
	assert.IsType(t, syntax.Orus{}, pickHighlighter("", []string{"x.orus"}, "go"))
	assert.IsType(t, syntax.Orus{}, pickHighlighter("orus", []string{"x.go"}, "go"))
	assert.IsType(t, &syntax.Chroma{}, pickHighlighter("", []string{"-"}, "go"))
}

func TestDecodeShareURL(t *testing.T) {
	link, err := playground.ShareURL("https://orus.dev/playground", "print(\"a b\") // 100%")
	require.NoError(t, err)

	code, err := decodeShareURL(link)
	require.NoError(t, err)
	assert.Equal(t, "print(\"a b\") // 100%", code)

	_, err = decodeShareURL("https://orus.dev/playground")
	assert.Error(t, err)

	_, err = decodeShareURL("https://orus.dev/playground?code=%3Cscript%3E")
	assert.ErrorIs(t, err, playground.ErrInvalidParameter)
}

func TestPrintResult_MarksErrorLines(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	printResult(&buf, playground.Result{Output: "a\nError: b"})
	assert.Equal(t, "a\nError: b\n", buf.String())
}

func executeRoot(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	color.NoColor = true
	t.Setenv("ORUSPLAY_LOG_PATH", filepath.Join(t.TempDir(), "orusplay.log"))
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestCLI_Examples(t *testing.T) {
	out := executeRoot(t, "", "examples")
	for _, ex := range playground.Examples() {
		assert.Contains(t, out, ex.Title)
	}

	ex := playground.Examples()[0]
	out = executeRoot(t, "", "examples", "--plain", ex.Title)
	assert.Equal(t, ex.Code+"\n", out)
}

func TestCLI_Share(t *testing.T) {
	out := executeRoot(t, "print(1)", "share")
	assert.Equal(t, "https://orus.dev/playground?code=print%281%29\n", out)

	out = executeRoot(t, "", "share", "--decode", strings.TrimSpace(out))
	assert.Equal(t, "print(1)\n", out)
}

func TestCLI_HighlightHTML(t *testing.T) {
	out := executeRoot(t, "let x = 1", "highlight", "--html", "-")
	assert.Contains(t, out, `<span class="tok-keyword">let</span>`)
}

func TestCLI_Version(t *testing.T) {
	out := executeRoot(t, "", "version")
	assert.True(t, strings.HasPrefix(out, "orusplay v"), out)
}
