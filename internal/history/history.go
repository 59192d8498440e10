// Package history provides time-grouped undo/redo for buffer operations.
//
// Every reversible operation is recorded as an action: the command that
// performed it, the command that reverses it, and the byte positions of the
// cursor before and after. Actions recorded within GroupWindow of the start
// of the most recent group merge into it, so a burst of keystrokes undoes as
// one logical edit. Undo and redo return replay lists; the controller
// re-dispatches them with recording inhibited so that replaying an edit never
// pollutes the history it came from.
package history

import (
	"time"

	"github.com/fennwick/scribe/internal/command"
	"github.com/fennwick/scribe/internal/logger"
)

// DefaultGroupWindow is the grouping time span used when none is configured.
const DefaultGroupWindow = 500 * time.Millisecond

// Action is a single reversible operation.
type Action struct {
	Do      command.Command // re-performs the operation
	Inverse command.Command // reverses the operation
	Before  int             // byte position of the cursor before the operation
	After   int             // byte position of the cursor after the operation
}

// Group is a batch of actions performed in a short time span,
// undone and redone as one unit.
type Group struct {
	start   time.Time
	actions []Action
}

// Replay is one step of an undo or redo: place the cursor at Pos, dispatch
// Cmd with recording inhibited, then place the cursor at End. Carrying both
// offsets makes cursor restoration exact by construction.
type Replay struct {
	Pos int
	Cmd command.Command
	End int
}

// Engine owns the group history and the redo index.
type Engine struct {
	history   []Group
	index     int // index of the next group slot; groups at >= index are redoable
	inhibited bool
	window    time.Duration
	now       func() time.Time // injectable for tests
}

// NewEngine creates an undo engine with the given grouping window.
func NewEngine(window time.Duration) *Engine {
	if window <= 0 {
		window = DefaultGroupWindow
	}
	return &Engine{
		window: window,
		now:    time.Now,
	}
}

// Record adds a reversible action. No-op while inhibited (replaying).
// Any redoable future is discarded the moment a new edit is recorded.
func (e *Engine) Record(before, after int, do, inverse command.Command) {
	if e.inhibited {
		return
	}

	e.burn()

	act := Action{Do: do, Inverse: inverse, Before: before, After: after}

	// Merge with the most recent group if it started within the window.
	if e.index > 0 {
		last := &e.history[e.index-1]
		if e.now().Sub(last.start) < e.window {
			last.actions = append(last.actions, act)
			return
		}
	}

	e.history = append(e.history, Group{
		start:   e.now(),
		actions: []Action{act},
	})
	e.index++
	logger.Debugf("History: new group %d (%d total)", e.index-1, len(e.history))
}

// burn truncates any redoable future.
func (e *Engine) burn() {
	if e.index < len(e.history) {
		e.history = e.history[:e.index]
	}
}

// Undo returns the replay steps reverting the most recent group, in reverse
// action order, and steps the index back. An empty history returns an empty
// list; that is a defined no-op, not an error.
func (e *Engine) Undo() []Replay {
	if e.index <= 0 {
		return nil
	}
	e.index--
	group := e.history[e.index]

	replays := make([]Replay, 0, len(group.actions))
	for i := len(group.actions) - 1; i >= 0; i-- {
		a := group.actions[i]
		// The inverse applies at the lower of the two recorded offsets:
		// inserts undo at the insertion point, backspaces undo at the point
		// the removed cluster started. The cursor must land exactly where it
		// was before the original operation.
		pos := a.Before
		if a.After < pos {
			pos = a.After
		}
		replays = append(replays, Replay{Pos: pos, Cmd: a.Inverse, End: a.Before})
	}
	return replays
}

// Redo returns the replay steps re-applying the next group, in forward
// action order, and advances the index. Empty when there is no future.
func (e *Engine) Redo() []Replay {
	if e.index >= len(e.history) {
		return nil
	}
	group := e.history[e.index]
	e.index++

	replays := make([]Replay, 0, len(group.actions))
	for _, a := range group.actions {
		replays = append(replays, Replay{Pos: a.Before, Cmd: a.Do, End: a.After})
	}
	return replays
}

// SetInhibited toggles recording; the controller sets it around replay dispatch.
func (e *Engine) SetInhibited(inhibited bool) {
	e.inhibited = inhibited
}

// Inhibited reports whether recording is currently suppressed.
func (e *Engine) Inhibited() bool {
	return e.inhibited
}

// CanUndo reports whether a group exists before the index.
func (e *Engine) CanUndo() bool {
	return e.index > 0
}

// CanRedo reports whether a redoable group exists at the index.
func (e *Engine) CanRedo() bool {
	return e.index < len(e.history)
}
