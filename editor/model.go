package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/orusplay/brackets"
	"github.com/iw2rmb/orusplay/buffer"
	"github.com/iw2rmb/orusplay/syntax"
)

// Model is a Bubble Tea component that renders and edits a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	hl  syntax.Highlighter

	focused bool

	width, height int
	viewport      viewport.Model
	xOffset       int

	search     textinput.Model
	searchOpen bool
	matches    []syntax.Range

	// Derived view state, recomputed after every event.
	currentLine int
	selLines    buffer.LineSpan
	selLinesOK  bool
	bracket     brackets.Match
	bracketOK   bool

	tokens            []syntax.Line
	tokensTextVersion uint64

	lastTextVersion uint64
	lastBufVersion  uint64
	lastCursor      buffer.Pos

	mouseAnchor   buffer.Pos
	mouseDragging bool
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	hl := cfg.Highlighter
	if hl == nil {
		hl = syntax.ForLanguage(cfg.Language)
	}

	search := textinput.New()
	search.Prompt = "Find: "
	search.Placeholder = "search"
	search.CharLimit = 256

	m := Model{
		cfg:      cfg,
		buf:      buffer.New(buffer.Clean(cfg.Text), buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		hl:       hl,
		focused:  true,
		height:   cfg.Height,
		viewport: viewport.New(0, cfg.Height),
		search:   search,
	}
	m.lastTextVersion = m.buf.TextVersion()
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.tokensTextVersion = ^uint64(0)
	m.refresh()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Value returns the buffer text.
func (m Model) Value() string { return m.buf.Text() }

// SetValue replaces the buffer with text supplied by the host. The text is
// cleaned first; an unchanged buffer is left alone. OnChange is not called
// for host replacements.
func (m Model) SetValue(text string) Model {
	text = buffer.Clean(text)
	if text == m.buf.Text() {
		return m
	}
	off := m.buf.CursorOffset()
	m.buf.ReplaceFromHost(text, off, off)
	m.lastTextVersion = m.buf.TextVersion()
	m.refresh()
	m.sync()
	m.followCursor()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.layoutViewport()

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// CurrentLine is the 1-based line holding the cursor.
func (m Model) CurrentLine() int { return m.currentLine }

// SelectionLines returns the zero-based lines touched by the selection.
func (m Model) SelectionLines() (buffer.LineSpan, bool) { return m.selLines, m.selLinesOK }

// BracketMatch returns the delimiter pair adjacent to the cursor.
func (m Model) BracketMatch() (brackets.Match, bool) { return m.bracket, m.bracketOK }

// SearchOpen reports whether the search bar is shown.
func (m Model) SearchOpen() bool { return m.searchOpen }

func (m Model) SearchTerm() string { return m.search.Value() }

// SearchMatches returns the matches of the search term while the bar is open.
func (m Model) SearchMatches() []syntax.Range { return m.matches }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	follow := false
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
		follow = true
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	default:
		if m.searchOpen {
			m.search, cmd = m.search.Update(msg)
		}
	}
	m.afterEvent(follow)
	return m, cmd
}

func (m Model) View() string {
	if !m.searchOpen {
		return m.viewport.View()
	}
	bar := m.cfg.Style.SearchBar.Render(m.search.View() + m.matchSummary())
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), bar)
}

// afterEvent notifies the host of text changes and refreshes derived state.
// It also picks up edits made directly on the buffer by the host.
func (m *Model) afterEvent(follow bool) {
	if m.buf == nil {
		return
	}
	if tv := m.buf.TextVersion(); tv != m.lastTextVersion {
		m.lastTextVersion = tv
		m.notifyChange()
	}
	cursorChanged := m.sync()
	if follow || cursorChanged {
		m.followCursor()
	}
}

func (m *Model) notifyChange() {
	if m.cfg.OnChange == nil && m.cfg.OnEvent == nil {
		return
	}
	ev := buildChangeEvent(m.buf)
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(ev.Text)
	}
	if m.cfg.OnEvent != nil {
		m.cfg.OnEvent(ev)
	}
}

// sync rebuilds derived state and content when the buffer moved on since the
// last render.
func (m *Model) sync() (cursorChanged bool) {
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		m.refreshSearch()
		m.rebuildContent()
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.refresh()
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) refresh() {
	text := m.buf.Text()
	off := m.buf.CursorOffset()
	m.currentLine = buffer.LineNumberAt(text, off)
	start, end := m.buf.SelectionOffsets()
	m.selLines, m.selLinesOK = buffer.SelectionLines(text, start, end)
	m.bracket, m.bracketOK = brackets.Find(text, off)
	m.refreshSearch()
}

func (m *Model) refreshSearch() {
	if !m.searchOpen {
		m.matches = nil
		return
	}
	m.matches = syntax.SearchRanges(m.buf.Text(), m.search.Value())
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// lines returns the tokenized document, re-tokenizing only after text edits.
func (m *Model) lines() []syntax.Line {
	if tv := m.buf.TextVersion(); tv != m.tokensTextVersion || m.tokens == nil {
		m.tokens = syntax.Tokenize(m.hl, m.buf.Text())
		m.tokensTextVersion = tv
	}
	return m.tokens
}
