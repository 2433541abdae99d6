// Package editor provides a Bubble Tea code editor component for Orus source,
// backed by the buffer package.
//
// Edits that involve indentation, auto-pairing, comments or duplication go
// through the command package, so the widget only translates keys into
// commands and writes the result back to the buffer. After every event the
// model recomputes its derived view state: the current line, the lines
// touched by the selection, the bracket pair at the cursor and the search
// matches.
//
// The host reads the document through Config.OnChange, which receives the
// whole buffer after each text mutation, and pushes documents in with
// SetValue.
package editor
