// Package editor executes buffer commands: it routes each command to the
// text buffer, records edits into the undo engine, and raises events for
// the rest of the application. It returns follow-up commands instead of
// calling back into the dispatcher, so command processing stays a flat
// queue with no recursion.
package editor

import (
	"errors"
	"fmt"

	"github.com/fennwick/scribe/internal/buffer"
	"github.com/fennwick/scribe/internal/clipboard"
	"github.com/fennwick/scribe/internal/command"
	"github.com/fennwick/scribe/internal/event"
	"github.com/fennwick/scribe/internal/history"
	"github.com/fennwick/scribe/internal/logger"
)

// Editor binds one buffer to its undo history and clipboard.
type Editor struct {
	buf    *buffer.TextBuffer
	hist   *history.Engine
	events *event.Manager
	clip   *clipboard.Clipboard

	viewHeight int
	scrollOff  int
}

// New creates an editor over a buffer.
func New(buf *buffer.TextBuffer, hist *history.Engine, events *event.Manager, clip *clipboard.Clipboard, scrollOff int) *Editor {
	return &Editor{
		buf:        buf,
		hist:       hist,
		events:     events,
		clip:       clip,
		viewHeight: 1,
		scrollOff:  scrollOff,
	}
}

// Buffer returns the edited buffer.
func (e *Editor) Buffer() *buffer.TextBuffer { return e.buf }

// SetViewHeight tells the editor how many text rows are visible, for paging
// and scroll clamping.
func (e *Editor) SetViewHeight(h int) {
	if h < 1 {
		h = 1
	}
	e.viewHeight = h
}

// Execute runs one command against the buffer and returns follow-up
// commands for the dispatcher queue.
func (e *Editor) Execute(cmd command.Command) []command.Command {
	switch cmd.Kind {

	// Edits.
	case command.KindInsertRune:
		e.insertText(string(cmd.Rune), cmd.Replay)
	case command.KindInsertText:
		e.insertText(cmd.Text, cmd.Replay)
	case command.KindBackspace:
		e.backspace(cmd.Replay)
	case command.KindDelete:
		e.deleteForward(cmd.Replay)
	case command.KindDeleteSpan:
		e.deleteSpan(cmd.N, cmd.Replay)
	case command.KindCutLine:
		e.cutLine(cmd.Replay)
	case command.KindPasteClipboard:
		if text := e.clip.Read(); text != "" {
			e.insertText(text, cmd.Replay)
		}

	// Motion.
	case command.KindMoveLeft:
		e.buf.MoveLeft()
	case command.KindMoveRight:
		e.buf.MoveRight()
	case command.KindMoveUp:
		e.buf.MoveUp()
	case command.KindMoveDown:
		e.buf.MoveDown()
	case command.KindPageUp:
		e.buf.PageUp(e.viewHeight)
	case command.KindPageDown:
		e.buf.PageDown(e.viewHeight)
	case command.KindWordLeft:
		e.buf.WordLeft()
	case command.KindWordRight:
		e.buf.WordRight()
	case command.KindLineStart:
		e.buf.GotoStartOfLine()
	case command.KindLineEnd:
		e.buf.GotoEndOfLine()
	case command.KindTop:
		e.buf.GotoTop()
	case command.KindBottom:
		e.buf.GotoBottom()
	case command.KindJump:
		e.buf.SetPosition(cmd.Pos)
	case command.KindSetCursor:
		e.buf.SetViewportCursorPos(cmd.X, cmd.Y)
	case command.KindScrollUp:
		e.buf.ScrollUp(max(cmd.N, 1))
		return nil // viewport only, cursor stays
	case command.KindScrollDown:
		e.buf.ScrollDown(max(cmd.N, 1))
		return nil

	// Find.
	case command.KindFind:
		return e.find(cmd.Text)
	case command.KindNextMatch:
		if !e.buf.JumpNextHighlight() {
			return notify("No matches", command.LevelError)
		}
	case command.KindPrevMatch:
		if !e.buf.JumpPreviousHighlight() {
			return notify("No matches", command.LevelError)
		}

	// History.
	case command.KindUndo:
		return e.undo()
	case command.KindRedo:
		return e.redo()

	// Persistence.
	case command.KindSave:
		return e.save()
	case command.KindSaveAs:
		if cmd.Text == "" {
			// No target path; the save-as panel opens at the app layer.
			return nil
		}
		e.buf.SetPath(cmd.Text)
		return e.save()

	default:
		logger.Debugf("editor: unhandled command kind %v", cmd.Kind)
		return nil
	}

	e.ensureCursorVisible()
	cur := e.buf.Cursor()
	e.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{X: cur.X, Y: cur.Y})
	return nil
}

// --- Edits ---

func (e *Editor) insertText(text string, replay bool) {
	if text == "" {
		return
	}
	before := e.buf.Position()
	fromLine := e.buf.LineForOffset(before)
	e.buf.InsertString(text)
	after := e.buf.Position()
	if !replay {
		e.hist.Record(before, after,
			command.Command{Kind: command.KindInsertText, Text: text},
			command.Command{Kind: command.KindDeleteSpan, N: len(text)})
	}
	e.modified(fromLine)
}

func (e *Editor) backspace(replay bool) {
	before := e.buf.Position()
	removed := e.buf.Backspace()
	if removed == "" {
		return
	}
	after := e.buf.Position()
	if !replay {
		e.hist.Record(before, after,
			command.Command{Kind: command.KindBackspace},
			command.Command{Kind: command.KindInsertText, Text: removed})
	}
	e.modified(e.buf.LineForOffset(after))
}

func (e *Editor) deleteForward(replay bool) {
	pos := e.buf.Position()
	removed := e.buf.Delete()
	if removed == "" {
		return
	}
	if !replay {
		e.hist.Record(pos, pos,
			command.Command{Kind: command.KindDelete},
			command.Command{Kind: command.KindInsertText, Text: removed})
	}
	e.modified(e.buf.LineForOffset(pos))
}

func (e *Editor) deleteSpan(n int, replay bool) {
	start := e.buf.Position()
	removed := e.buf.Drain(start, start+n)
	if removed == "" {
		return
	}
	if !replay {
		e.hist.Record(start, start,
			command.Command{Kind: command.KindDeleteSpan, N: n},
			command.Command{Kind: command.KindInsertText, Text: removed})
	}
	e.modified(e.buf.LineForOffset(start))
}

func (e *Editor) cutLine(replay bool) {
	before := e.buf.Position()
	fromLine := e.buf.Cursor().Y
	removed, _ := e.buf.CutLine()
	if removed == "" {
		return
	}
	after := e.buf.Position()
	if !replay {
		e.clip.Write(removed)
		e.hist.Record(before, after,
			command.Command{Kind: command.KindCutLine},
			command.Command{Kind: command.KindInsertText, Text: removed})
	}
	e.modified(fromLine)
}

// modified raises the invalidation event. The bound is the top visible line
// rather than the precise edited line: cheap to compute, always at or above
// the edit, and everything below it gets restyled on the next draw anyway.
// Replay can edit above the viewport, so the edit line still caps the bound.
func (e *Editor) modified(editLine int) {
	bound := e.buf.Top()
	if editLine < bound {
		bound = editLine
	}
	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{FromLine: bound})
}

// --- Find ---

// find re-runs the query and lands on the first match at or after the
// cursor, so retyping an incremental query does not drift forward. Explicit
// next/prev match navigation stays strictly directional.
func (e *Editor) find(query string) []command.Command {
	n := e.buf.Find(query)
	e.events.Dispatch(event.TypeFindUpdated, event.FindUpdatedData{Matches: n})
	if query == "" {
		return nil
	}
	if n == 0 {
		return notify("No matches", command.LevelError)
	}
	pos := e.buf.Position()
	target := e.buf.Highlights()[0].Start
	for _, h := range e.buf.Highlights() {
		if h.Start >= pos {
			target = h.Start
			break
		}
	}
	e.buf.SetPosition(target)
	e.ensureCursorVisible()
	return nil
}

// --- History ---

// undo rolls back the newest group. Each recorded action replays its
// inverse from a known byte offset, then the cursor is restored to where it
// stood before the original edit.
func (e *Editor) undo() []command.Command {
	replays := e.hist.Undo()
	if len(replays) == 0 {
		return notify("Nothing to undo", command.LevelInfo)
	}
	e.applyReplays(replays)
	return nil
}

func (e *Editor) redo() []command.Command {
	replays := e.hist.Redo()
	if len(replays) == 0 {
		return notify("Nothing to redo", command.LevelInfo)
	}
	e.applyReplays(replays)
	return nil
}

func (e *Editor) applyReplays(replays []history.Replay) {
	e.hist.SetInhibited(true)
	defer e.hist.SetInhibited(false)
	for _, r := range replays {
		e.buf.SetPosition(r.Pos)
		cmd := r.Cmd
		cmd.Replay = true
		e.Execute(cmd)
		e.buf.SetPosition(r.End)
	}
	e.ensureCursorVisible()
}

// --- Persistence ---

func (e *Editor) save() []command.Command {
	err := e.buf.Save()
	switch {
	case err == nil:
		e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{Path: e.buf.Path()})
		return notify(fmt.Sprintf("Saved %s", e.buf.Name()), command.LevelSuccess)
	case errors.Is(err, buffer.ErrNoPath):
		// Hand off to the save-as panel.
		return []command.Command{{Kind: command.KindSaveAs}}
	case errors.Is(err, buffer.ErrReadOnly), errors.Is(err, buffer.ErrOpenedReadOnly):
		return notify("Buffer is read-only", command.LevelError)
	default:
		logger.Errorf("editor: save failed: %v", err)
		return notify(fmt.Sprintf("Save failed: %v", err), command.LevelError)
	}
}

// --- Viewport ---

// ensureCursorVisible scrolls the viewport so the cursor stays at least
// scrollOff lines away from the edges where possible.
func (e *Editor) ensureCursorVisible() {
	y := e.buf.Cursor().Y
	top := e.buf.Top()
	off := e.scrollOff
	if off*2 >= e.viewHeight {
		off = 0
	}
	if y < top+off {
		e.buf.SetTop(y - off)
	} else if y > top+e.viewHeight-1-off {
		e.buf.SetTop(y - e.viewHeight + 1 + off)
	}
}

func notify(text string, level command.Level) []command.Command {
	return []command.Command{{Kind: command.KindNotify, Text: text, Level: level}}
}
