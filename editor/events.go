package editor

import "github.com/iw2rmb/orusplay/buffer"

// ChangeEvent describes the buffer right after a text mutation.
type ChangeEvent struct {
	Version     uint64
	TextVersion uint64
	Cursor      buffer.Pos
	Selection   buffer.SelectionState

	Text string

	// Change is the buffer's record of the mutation, when it kept one.
	Change    buffer.Change
	HasChange bool
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	ev := ChangeEvent{
		Version:     b.Version(),
		TextVersion: b.TextVersion(),
		Cursor:      b.Cursor(),
		Text:        b.Text(),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection = buffer.SelectionState{Active: true, Range: r}
	}
	ev.Change, ev.HasChange = b.LastChange()
	return ev
}
