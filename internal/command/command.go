// Package command defines the discrete operations fed into the editor core.
//
// Every interaction with the buffer is expressed as a Command value: key
// presses translate to commands, panels consume or transform commands, and
// undo/redo replay is a list of commands re-dispatched through the same path.
package command

// Kind identifies the operation a Command performs.
type Kind int

const (
	KindNone Kind = iota

	// Edits
	KindInsertRune // Rune
	KindInsertText // Text (paste / insert_str)
	KindBackspace
	KindDelete
	KindDeleteSpan // N bytes ahead of the cursor; inverse of an insert
	KindCutLine
	KindPasteClipboard

	// Motion
	KindMoveLeft
	KindMoveRight
	KindMoveUp
	KindMoveDown
	KindPageUp
	KindPageDown
	KindWordLeft
	KindWordRight
	KindLineStart
	KindLineEnd
	KindTop
	KindBottom
	KindJump      // Pos: absolute byte offset
	KindSetCursor // X, Y: viewport coordinates (mouse click)
	KindScrollUp
	KindScrollDown

	// Find
	KindFind // Text: literal query
	KindNextMatch
	KindPrevMatch

	// History
	KindUndo
	KindRedo

	// Persistence & lifecycle
	KindSave
	KindSaveAs // Text: path
	KindQuit
	KindForceQuit

	// Panels & UI
	KindOpenFind
	KindOpenHelp
	KindClosePanel
	KindNotify // Text, Level
	KindToggleWhitespace
)

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Command is a single discrete operation. Unused fields are zero.
type Command struct {
	Kind  Kind
	Rune  rune
	Text  string
	Pos   int // byte offset for KindJump
	N     int // byte count for KindDeleteSpan
	X, Y  int // viewport coordinates for KindSetCursor
	Level Level

	// Replay marks commands re-dispatched by undo/redo; the editor executes
	// them with history recording inhibited so replay never re-records.
	Replay bool
}

// Queue is a FIFO of pending commands. An operation may return follow-up
// commands; the controller loop drains the queue until it is empty, which
// bounds what would otherwise be recursive dispatch.
type Queue struct {
	items []Command
}

// Push appends a single command.
func (q *Queue) Push(cmd Command) {
	q.items = append(q.items, cmd)
}

// PushAll appends a batch of commands in order.
func (q *Queue) PushAll(cmds []Command) {
	q.items = append(q.items, cmds...)
}

// Pop removes and returns the oldest command. ok is false when empty.
func (q *Queue) Pop() (Command, bool) {
	if len(q.items) == 0 {
		return Command{}, false
	}
	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd, true
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	return len(q.items)
}
