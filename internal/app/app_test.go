package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennwick/scribe/internal/command"
	"github.com/fennwick/scribe/internal/config"
	"github.com/fennwick/scribe/internal/highlight"
)

func newTestApp(t *testing.T, path, content string) *App {
	t.Helper()
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	a, err := New(config.NewDefaultConfig(), path, false)
	if err != nil {
		t.Fatal(err)
	}
	a.editor.SetViewHeight(24)
	return a
}

func (a *App) push(cmds ...command.Command) {
	a.queue.PushAll(cmds)
	a.drainQueue()
}

func (a *App) typeText(text string) {
	for _, r := range text {
		a.push(command.Command{Kind: command.KindInsertRune, Rune: r})
	}
}

func TestFindFlowJumpsToMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	a := newTestApp(t, path, "abcabc")

	a.push(command.Command{Kind: command.KindOpenFind})
	if a.activePanel == nil {
		t.Fatal("find panel should be open")
	}
	// The panel consumes keystrokes and queues an incremental query; the
	// trampoline carries it to the editor and on to the match jump.
	a.typeText("bc")
	if got := a.editor.Buffer().Position(); got != 1 {
		t.Fatalf("cursor at %d, want 1", got)
	}
	a.push(command.Command{Kind: command.KindInsertRune, Rune: '\n'})
	if a.activePanel != nil {
		t.Fatal("enter should close the find panel")
	}
	a.push(command.Command{Kind: command.KindNextMatch})
	if got := a.editor.Buffer().Position(); got != 4 {
		t.Fatalf("cursor at %d, want 4", got)
	}
}

func TestQuitWithCleanBufferExits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	a := newTestApp(t, path, "hello")
	a.push(command.Command{Kind: command.KindQuit})
	if !a.quitting {
		t.Fatal("clean buffer quit should not prompt")
	}
}

func TestQuitWithDirtyBufferPrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	a := newTestApp(t, path, "hello")
	a.typeText("x")

	a.push(command.Command{Kind: command.KindQuit})
	if a.quitting {
		t.Fatal("dirty buffer must prompt before quitting")
	}
	if a.activePanel == nil {
		t.Fatal("confirm panel should be open")
	}

	a.push(command.Command{Kind: command.KindInsertRune, Rune: 'n'})
	if a.quitting || a.activePanel != nil {
		t.Fatal("'n' should dismiss the prompt and keep running")
	}

	a.push(command.Command{Kind: command.KindQuit})
	a.push(command.Command{Kind: command.KindInsertRune, Rune: 'y'})
	if !a.quitting {
		t.Fatal("'y' should quit through the prompt")
	}
}

func TestSaveAsFlowWritesFile(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, filepath.Join(dir, "unnamed"), "")
	a.editor.Buffer().SetPath("")
	a.typeText("hello")

	a.push(command.Command{Kind: command.KindSave})
	if a.activePanel == nil {
		t.Fatal("saving without a path should open the save-as panel")
	}

	target := filepath.Join(dir, "out.txt")
	a.typeText(target)
	a.push(command.Command{Kind: command.KindInsertRune, Rune: '\n'})

	if a.activePanel != nil {
		t.Fatal("save-as panel should close after enter")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("target file not written: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("file = %q, want %q", data, "hello")
	}
}

func TestEditInvalidatesHighlightCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	a := newTestApp(t, path, strings.Repeat("line\n", 30))
	a.editor.SetViewHeight(5)

	// Warm the cache the way a redraw does.
	buf := a.editor.Buffer()
	highlight.ParseWindow(buf, a.provider, a.cache, 0, buf.LineCount(), false)
	if a.cache.Len() == 0 {
		t.Fatal("expected snapshots after rendering the whole document")
	}

	// Editing near the bottom invalidates from the top visible line;
	// snapshots above the viewport survive.
	a.push(command.Command{Kind: command.KindBottom})
	a.typeText("x")
	top := buf.Top()
	if line, _ := a.cache.ClosestState(buf.LineCount()); line >= top && line != 0 {
		t.Fatalf("stale snapshot at line %d, viewport starts at %d", line, top)
	}
	if a.cache.Len() == 0 {
		t.Fatal("snapshots above the viewport should survive")
	}

	// An edit on line 0 clears everything.
	a.push(command.Command{Kind: command.KindTop})
	a.typeText("y")
	if a.cache.Len() != 0 {
		t.Fatalf("edit on line 0 should clear the cache, %d snapshots left", a.cache.Len())
	}
}

func TestToggleWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	a := newTestApp(t, path, "a b")
	if a.showWhitespace {
		t.Fatal("whitespace display should start off")
	}
	a.push(command.Command{Kind: command.KindToggleWhitespace})
	if !a.showWhitespace {
		t.Fatal("toggle should enable whitespace display")
	}
}

func TestHelpPanelClosesOnAnyKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	a := newTestApp(t, path, "")
	a.push(command.Command{Kind: command.KindOpenHelp})
	if a.activePanel == nil {
		t.Fatal("help panel should be open")
	}
	a.push(command.Command{Kind: command.KindInsertRune, Rune: 'q'})
	if a.activePanel != nil {
		t.Fatal("help panel should close on any key")
	}
}
