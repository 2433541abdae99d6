package editor

import "github.com/iw2rmb/orusplay/syntax"

// Config configures the editor Model.
type Config struct {
	// Initial text. It is cleaned with buffer.Clean before use.
	Text string

	// OnChange is called synchronously with the complete buffer after every
	// text mutation. Cursor and selection moves do not call it.
	OnChange func(text string)
	// OnEvent is called alongside OnChange with the full change payload.
	OnEvent func(ChangeEvent)

	// Language picks the highlighter when Highlighter is nil ("" means Orus).
	Language string
	// Height is the preferred number of rows; SetSize overrides it.
	Height int
	// Dark is a hint for hosts choosing a Style.
	Dark bool

	ShowLineNums bool
	ReadOnly     bool
	KeyMap       KeyMap
	Style        Style
	ScrollPolicy ScrollPolicy

	Highlighter syntax.Highlighter
	Clipboard   Clipboard

	// Placeholder is shown, styled as a comment, while the buffer is empty.
	Placeholder string

	// Forwarded to buffer.Options.
	HistoryLimit int
}
