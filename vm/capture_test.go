package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapture_Print(t *testing.T) {
	var c Capture
	c.Print("a")
	c.Print("")
	c.Print("b\n")
	c.PrintErr("bad")
	assert.Equal(t, "a\nb\nError: bad\n", c.String())
	assert.Equal(t, len("a\nb\nError: bad\n"), c.Len())

	c.Reset()
	assert.Equal(t, "", c.String())
}

func TestLineWriter_SplitsLines(t *testing.T) {
	var got []string
	w := newLineWriter(func(s string) { got = append(got, s) })

	n, err := w.Write([]byte("one\ntw"))
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []string{"one"}, got)

	_, _ = w.Write([]byte("o\n\nthree"))
	assert.Equal(t, []string{"one", "two", ""}, got)

	w.Flush()
	assert.Equal(t, []string{"one", "two", "", "three"}, got)

	w.Flush()
	assert.Len(t, got, 4)
}

func TestLineWriter_IntoCapture(t *testing.T) {
	var c Capture
	out := newLineWriter(c.Print)
	errs := newLineWriter(c.PrintErr)

	_, _ = out.Write([]byte("x = 1\n\n"))
	_, _ = errs.Write([]byte("undefined variable\n"))
	assert.Equal(t, "x = 1\nError: undefined variable\n", c.String())
}
