package editor

import (
	"strings"
	"testing"
	"time"

	"github.com/fennwick/scribe/internal/buffer"
	"github.com/fennwick/scribe/internal/clipboard"
	"github.com/fennwick/scribe/internal/command"
	"github.com/fennwick/scribe/internal/event"
	"github.com/fennwick/scribe/internal/history"
)

// newEditor builds an editor whose undo groups never merge, so every edit
// is its own undo step.
func newEditor(content string) *Editor {
	buf := buffer.New(4)
	buf.InsertString(content)
	buf.GotoTop()
	e := New(buf, history.NewEngine(time.Nanosecond), event.NewManager(), clipboard.New(false), 0)
	e.SetViewHeight(24)
	return e
}

// newGroupingEditor merges all edits into one undo group.
func newGroupingEditor(content string) *Editor {
	buf := buffer.New(4)
	buf.InsertString(content)
	buf.GotoTop()
	e := New(buf, history.NewEngine(time.Hour), event.NewManager(), clipboard.New(false), 0)
	e.SetViewHeight(24)
	return e
}

func run(e *Editor, cmds ...command.Command) []command.Command {
	var last []command.Command
	for _, c := range cmds {
		last = e.Execute(c)
	}
	return last
}

func TestTypingThenUndoStepsBack(t *testing.T) {
	e := newEditor("")
	run(e,
		command.Command{Kind: command.KindInsertRune, Rune: 'a'},
		command.Command{Kind: command.KindInsertRune, Rune: 'b'},
		command.Command{Kind: command.KindInsertRune, Rune: 'c'},
	)
	if e.Buffer().String() != "abc" {
		t.Fatalf("content = %q, want %q", e.Buffer().String(), "abc")
	}
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().String() != "ab" || e.Buffer().Position() != 2 {
		t.Fatalf("after undo: content=%q pos=%d, want %q pos=2",
			e.Buffer().String(), e.Buffer().Position(), "ab")
	}
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().String() != "a" || e.Buffer().Position() != 1 {
		t.Fatalf("after second undo: content=%q pos=%d", e.Buffer().String(), e.Buffer().Position())
	}
}

func TestUndoBackspaceMidDocument(t *testing.T) {
	e := newEditor("hello")
	e.Buffer().SetPosition(3)
	run(e, command.Command{Kind: command.KindBackspace})
	if e.Buffer().String() != "helo" || e.Buffer().Position() != 2 {
		t.Fatalf("after backspace: content=%q pos=%d", e.Buffer().String(), e.Buffer().Position())
	}
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().String() != "hello" {
		t.Fatalf("after undo: content = %q, want %q", e.Buffer().String(), "hello")
	}
	if e.Buffer().Position() != 3 {
		t.Fatalf("after undo: pos = %d, want 3", e.Buffer().Position())
	}
}

func TestUndoDeleteRestoresInPlace(t *testing.T) {
	e := newEditor("abc")
	e.Buffer().SetPosition(1)
	run(e, command.Command{Kind: command.KindDelete})
	if e.Buffer().String() != "ac" || e.Buffer().Position() != 1 {
		t.Fatalf("after delete: content=%q pos=%d", e.Buffer().String(), e.Buffer().Position())
	}
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().String() != "abc" || e.Buffer().Position() != 1 {
		t.Fatalf("after undo: content=%q pos=%d, want %q pos=1",
			e.Buffer().String(), e.Buffer().Position(), "abc")
	}
}

func TestRedoReappliesEdit(t *testing.T) {
	e := newEditor("")
	run(e, command.Command{Kind: command.KindInsertText, Text: "here is ☃ snowman"})
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().Len() != 0 {
		t.Fatalf("after undo: content = %q, want empty", e.Buffer().String())
	}
	run(e, command.Command{Kind: command.KindRedo})
	if e.Buffer().String() != "here is ☃ snowman" {
		t.Fatalf("after redo: content = %q", e.Buffer().String())
	}
	if e.Buffer().Position() != e.Buffer().Len() {
		t.Fatalf("after redo: pos = %d, want %d", e.Buffer().Position(), e.Buffer().Len())
	}
}

func TestUndoOnEmptyHistoryIsNoOp(t *testing.T) {
	e := newEditor("abc")
	e.Buffer().SetPosition(2)
	followups := run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().String() != "abc" || e.Buffer().Position() != 2 {
		t.Fatalf("undo with no history changed state: content=%q pos=%d",
			e.Buffer().String(), e.Buffer().Position())
	}
	if len(followups) != 1 || followups[0].Kind != command.KindNotify {
		t.Fatalf("followups = %v, want a single notification", followups)
	}
}

func TestGroupedTypingUndoesAsOne(t *testing.T) {
	e := newGroupingEditor("")
	run(e,
		command.Command{Kind: command.KindInsertRune, Rune: 'h'},
		command.Command{Kind: command.KindInsertRune, Rune: 'i'},
	)
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().Len() != 0 {
		t.Fatalf("grouped undo left %q", e.Buffer().String())
	}
	run(e, command.Command{Kind: command.KindRedo})
	if e.Buffer().String() != "hi" {
		t.Fatalf("grouped redo produced %q, want %q", e.Buffer().String(), "hi")
	}
}

func TestCutLineUndoRestoresCursor(t *testing.T) {
	e := newEditor("one\ntwo\nthree")
	e.Buffer().SetPosition(5)
	run(e, command.Command{Kind: command.KindCutLine})
	if e.Buffer().String() != "one\nthree" {
		t.Fatalf("after cut: content = %q", e.Buffer().String())
	}
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().String() != "one\ntwo\nthree" || e.Buffer().Position() != 5 {
		t.Fatalf("after undo: content=%q pos=%d, want pos=5",
			e.Buffer().String(), e.Buffer().Position())
	}
}

func TestCutLineFeedsClipboardAndPastes(t *testing.T) {
	e := newEditor("one\ntwo\nthree")
	e.Buffer().SetPosition(4)
	run(e, command.Command{Kind: command.KindCutLine})
	run(e, command.Command{Kind: command.KindBottom})
	run(e, command.Command{Kind: command.KindPasteClipboard})
	if e.Buffer().String() != "one\nthreetwo\n" {
		t.Fatalf("content = %q", e.Buffer().String())
	}
}

func TestUndoDoesNotPolluteHistory(t *testing.T) {
	e := newEditor("")
	run(e, command.Command{Kind: command.KindInsertText, Text: "x"})
	run(e, command.Command{Kind: command.KindUndo})
	run(e, command.Command{Kind: command.KindRedo})
	// Undo again: replaying must not have recorded new actions.
	run(e, command.Command{Kind: command.KindUndo})
	if e.Buffer().Len() != 0 {
		t.Fatalf("content = %q, want empty", e.Buffer().String())
	}
	followups := run(e, command.Command{Kind: command.KindUndo})
	if len(followups) != 1 || followups[0].Kind != command.KindNotify {
		t.Fatalf("history should be exhausted, got %v", followups)
	}
}

func TestNewEditBurnsRedo(t *testing.T) {
	e := newEditor("")
	run(e, command.Command{Kind: command.KindInsertText, Text: "abc"})
	run(e, command.Command{Kind: command.KindUndo})
	run(e, command.Command{Kind: command.KindInsertText, Text: "xyz"})
	followups := run(e, command.Command{Kind: command.KindRedo})
	if len(followups) != 1 || followups[0].Kind != command.KindNotify {
		t.Fatalf("redo after new edit should be empty, got %v", followups)
	}
	if e.Buffer().String() != "xyz" {
		t.Fatalf("content = %q, want %q", e.Buffer().String(), "xyz")
	}
}

func TestFindJumpsToFirstMatchAtOrAfterCursor(t *testing.T) {
	e := newEditor("abcabc")
	run(e, command.Command{Kind: command.KindFind, Text: "bc"})
	if e.Buffer().Position() != 1 {
		t.Fatalf("pos = %d, want 1", e.Buffer().Position())
	}
	// Re-running the query from inside a match stays put.
	run(e, command.Command{Kind: command.KindFind, Text: "bc"})
	if e.Buffer().Position() != 1 {
		t.Fatalf("pos after requery = %d, want 1", e.Buffer().Position())
	}
	run(e, command.Command{Kind: command.KindNextMatch})
	if e.Buffer().Position() != 4 {
		t.Fatalf("pos = %d, want 4", e.Buffer().Position())
	}
}

func TestFindWithoutMatchesNotifies(t *testing.T) {
	e := newEditor("abc")
	followups := run(e, command.Command{Kind: command.KindFind, Text: "zz"})
	if len(followups) != 1 || followups[0].Kind != command.KindNotify || followups[0].Level != command.LevelError {
		t.Fatalf("followups = %v, want an error notification", followups)
	}
}

func TestSaveWithoutPathOpensSaveAs(t *testing.T) {
	e := newEditor("data")
	followups := run(e, command.Command{Kind: command.KindSave})
	if len(followups) != 1 || followups[0].Kind != command.KindSaveAs || followups[0].Text != "" {
		t.Fatalf("followups = %v, want a save-as handoff", followups)
	}
}

func TestBufferModifiedCarriesInvalidationBound(t *testing.T) {
	e := newEditor(strings.Repeat("line\n", 40))
	e.SetViewHeight(3)
	var from []int
	// Re-wire events so the test can observe them.
	events := event.NewManager()
	events.Subscribe(event.TypeBufferModified, func(ev event.Event) bool {
		from = append(from, ev.Data.(event.BufferModifiedData).FromLine)
		return false
	})
	e.events = events

	// Scroll so the viewport starts at line 28, then edit on line 30. The
	// bound is the top visible line, not the edited line.
	run(e, command.Command{Kind: command.KindJump, Pos: 30 * 5})
	run(e, command.Command{Kind: command.KindInsertRune, Rune: 'x'})

	// Editing above the viewport caps the bound at the edit line.
	e.Buffer().SetPosition(0)
	run(e, command.Command{Kind: command.KindDelete})

	want := []int{28, 0}
	if len(from) != len(want) || from[0] != want[0] || from[1] != want[1] {
		t.Fatalf("invalidation bounds = %v, want %v", from, want)
	}
}

func TestScrollLeavesCursorAlone(t *testing.T) {
	e := newEditor("a\nb\nc\nd\ne\nf\ng\nh")
	e.SetViewHeight(3)
	run(e, command.Command{Kind: command.KindScrollDown, N: 2})
	if e.Buffer().Top() != 2 {
		t.Fatalf("top = %d, want 2", e.Buffer().Top())
	}
	if e.Buffer().Position() != 0 {
		t.Fatalf("pos = %d, want 0", e.Buffer().Position())
	}
}

func TestCursorMotionKeepsViewport(t *testing.T) {
	e := newEditor("a\nb\nc\nd\ne\nf\ng\nh")
	e.SetViewHeight(3)
	for i := 0; i < 5; i++ {
		run(e, command.Command{Kind: command.KindMoveDown})
	}
	top := e.Buffer().Top()
	y := e.Buffer().Cursor().Y
	if y < top || y > top+2 {
		t.Fatalf("cursor line %d outside viewport [%d,%d]", y, top, top+2)
	}
}
