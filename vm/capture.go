package vm

import (
	"bytes"
	"strings"
	"sync"
)

// Capture accumulates runtime output. Every print ends with a newline and
// error prints are prefixed with "Error: ", so failures travel in the same
// stream as regular output.
type Capture struct {
	mu  sync.Mutex
	buf strings.Builder
}

// Print appends text, adding a trailing newline if it has none. Empty text is
// ignored.
func (c *Capture) Print(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		c.buf.WriteByte('\n')
	}
}

// PrintErr appends text as an error line.
func (c *Capture) PrintErr(text string) {
	c.Print("Error: " + text)
}

func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}

// lineWriter turns a byte stream into one print call per line. A trailing
// partial line is held until the next newline or Flush.
type lineWriter struct {
	mu      sync.Mutex
	print   func(string)
	pending []byte
}

func newLineWriter(print func(string)) *lineWriter {
	return &lineWriter{print: print}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.print(string(w.pending[:i]))
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Flush prints any buffered partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) > 0 {
		w.print(string(w.pending))
		w.pending = nil
	}
}
