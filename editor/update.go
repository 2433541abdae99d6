package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/orusplay/buffer"
	"github.com/iw2rmb/orusplay/command"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	if m.searchOpen {
		return m.updateSearchKey(msg)
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.insert(string(msg.Runes))
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Search):
		return m, m.openSearch()

	case key.Matches(msg, km.Left):
		m.move(buffer.MoveGrapheme, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		m.move(buffer.MoveGrapheme, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		m.move(buffer.MoveLine, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		m.move(buffer.MoveLine, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		m.move(buffer.MoveGrapheme, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		m.move(buffer.MoveGrapheme, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		m.move(buffer.MoveLine, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		m.move(buffer.MoveLine, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		m.move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		m.move(buffer.MoveWord, buffer.DirRight, false)
	case key.Matches(msg, km.ShiftWordLeft):
		m.move(buffer.MoveWord, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftWordRight):
		m.move(buffer.MoveWord, buffer.DirRight, true)

	case key.Matches(msg, km.Home):
		m.move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		m.move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		m.move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		m.move(buffer.MoveDoc, buffer.DirEnd, false)
	case key.Matches(msg, km.SelectAll):
		m.buf.SelectOffsets(0, m.buf.Len())
	case key.Matches(msg, km.ClearSelection):
		m.buf.ClearSelection()

	case key.Matches(msg, km.Backspace):
		m.run(command.Backspace)
	case key.Matches(msg, km.Delete):
		m.run(command.Delete)
	case key.Matches(msg, km.Enter):
		m.run(command.Enter)
	case key.Matches(msg, km.Tab):
		m.run(command.Tab)
	case key.Matches(msg, km.ToggleComment):
		m.run(command.ToggleComment)
	case key.Matches(msg, km.Duplicate):
		m.run(command.Duplicate)

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Redo()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if len(msg.Runes) == 1 {
				r := msg.Runes[0]
				m.run(func(s command.State) (command.State, bool) { return command.Type(s, r) })
			} else {
				m.insert(string(msg.Runes))
			}
		} else if msg.Type == tea.KeySpace {
			m.run(func(s command.State) (command.State, bool) { return command.Type(s, ' ') })
		}
	}

	return m, nil
}

func (m *Model) move(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
	m.buf.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
}

// state captures the buffer as a command input, keeping the selection
// direction: Start is the anchor and End the cursor.
func (m *Model) state() command.State {
	st := command.Cursor(m.buf.Text(), m.buf.CursorOffset())
	if raw, ok := m.buf.SelectionRaw(); ok {
		st.Start = m.buf.OffsetFromPos(raw.Start)
		st.End = m.buf.OffsetFromPos(raw.End)
	}
	return st
}

// run applies cmd to the buffer. Text changes become one undoable step with
// the command's selection; cursor-only results just move the selection.
func (m *Model) run(cmd command.Command) {
	if m.cfg.ReadOnly {
		return
	}
	next, changed := cmd(m.state())
	if changed {
		m.buf.Replace(next.Text, next.Start, next.End)
		return
	}
	m.buf.SelectOffsets(next.Start, next.End)
}

// insert replaces the selection with text verbatim, without auto-pairing.
// It goes through the buffer's ranged edit so the change record stays local.
func (m *Model) insert(text string) {
	if m.cfg.ReadOnly {
		return
	}
	m.buf.InsertText(normalizeNewlines(text))
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil || m.buf == nil {
		return
	}
	r, ok := m.buf.Selection()
	if !ok {
		return
	}
	if s := m.buf.TextInRange(r); s != "" {
		_ = m.cfg.Clipboard.WriteText(s)
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil || m.buf == nil {
		return
	}
	r, ok := m.buf.Selection()
	if !ok {
		return
	}
	if s := m.buf.TextInRange(r); s != "" {
		_ = m.cfg.Clipboard.WriteText(s)
	}
	m.buf.DeleteSelection()
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.cfg.ReadOnly {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.insert(s)
}
