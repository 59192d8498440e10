// Package app wires the editor components together and runs the main loop.
//
// The core is single-threaded: the loop blocks on one terminal event,
// decodes it into a command, and drains the command queue before drawing.
// Handlers never call back into the dispatcher; they return follow-up
// commands that go through the same queue, so there is no recursion and
// commands always run in a predictable order.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fennwick/scribe/internal/buffer"
	"github.com/fennwick/scribe/internal/clipboard"
	"github.com/fennwick/scribe/internal/command"
	"github.com/fennwick/scribe/internal/config"
	"github.com/fennwick/scribe/internal/editor"
	"github.com/fennwick/scribe/internal/event"
	"github.com/fennwick/scribe/internal/highlight"
	"github.com/fennwick/scribe/internal/history"
	"github.com/fennwick/scribe/internal/input"
	"github.com/fennwick/scribe/internal/logger"
	"github.com/fennwick/scribe/internal/panel"
	"github.com/fennwick/scribe/internal/statusbar"
	"github.com/fennwick/scribe/internal/syntax"
	"github.com/fennwick/scribe/internal/tui"
)

// App owns all editor components and the main loop.
type App struct {
	cfg *config.Config

	tuiManager *tui.TUI
	editor     *editor.Editor
	events     *event.Manager
	processor  *input.Processor
	statusBar  *statusbar.StatusBar

	provider syntax.Provider
	cache    *highlight.Cache

	queue       *command.Queue
	activePanel panel.Panel

	showWhitespace bool
	quitting       bool
}

// New builds the application around one file.
func New(cfg *config.Config, path string, readonly bool) (*App, error) {
	buf, err := buffer.FromFile(path, cfg.Editor.TabWidth, readonly)
	if err != nil {
		return nil, fmt.Errorf("opening buffer: %w", err)
	}

	events := event.NewManager()
	hist := history.NewEngine(cfg.Editor.UndoGroupWindow())
	clip := clipboard.New(cfg.Editor.SystemClipboard)
	ed := editor.New(buf, hist, events, clip, cfg.Editor.ScrollOff)

	firstLine := buf.LineWithEnding(0)
	provider := syntax.Resolve(path, firstLine)
	if setter, ok := provider.(syntax.SourceSetter); ok {
		setter.SetSource(buf.Bytes())
	}

	a := &App{
		cfg:            cfg,
		editor:         ed,
		events:         events,
		processor:      input.NewProcessor(),
		statusBar:      statusbar.New(config.MessageTimeout),
		provider:       provider,
		cache:          highlight.NewCache(cfg.Editor.CacheFrequency),
		queue:          &command.Queue{},
		showWhitespace: cfg.Editor.ShowWhitespace,
	}

	// Every content mutation invalidates cached parse states below the
	// edited line and refreshes the provider's view of the source.
	events.Subscribe(event.TypeBufferModified, func(ev event.Event) bool {
		data := ev.Data.(event.BufferModifiedData)
		a.cache.InvalidateFrom(data.FromLine)
		if setter, ok := a.provider.(syntax.SourceSetter); ok {
			setter.SetSource(a.editor.Buffer().Bytes())
		}
		return false
	})
	events.Subscribe(event.TypeBufferSaved, func(ev event.Event) bool {
		logger.Infof("saved %s", ev.Data.(event.BufferSavedData).Path)
		return false
	})

	return a, nil
}

// Run starts the main loop. It owns the terminal from here until quit.
func (a *App) Run() error {
	t, err := tui.New()
	if err != nil {
		return err
	}
	a.tuiManager = t
	defer t.Close()

	a.statusBar.Notify("scribe - Ctrl-S save | Ctrl-Q quit | Ctrl-G help", command.LevelInfo)
	a.editor.SetViewHeight(t.TextHeight())
	a.draw()

	for !a.quitting {
		ev := t.PollEvent()
		if ev == nil {
			break
		}

		switch tev := ev.(type) {
		case *tcell.EventResize:
			t.Screen().Sync()
			a.editor.SetViewHeight(t.TextHeight())
		case *tcell.EventKey:
			a.queue.Push(a.processor.DecodeKey(tev))
		case *tcell.EventMouse:
			a.queue.Push(a.processor.DecodeMouse(tev, t.TextHeight()))
		}

		a.drainQueue()
		a.draw()
	}

	a.events.Dispatch(event.TypeAppQuit, nil)
	return nil
}

// drainQueue processes queued commands until none remain. Handlers push
// follow-ups back onto the queue instead of recursing.
func (a *App) drainQueue() {
	for {
		cmd, ok := a.queue.Pop()
		if !ok {
			return
		}
		if cmd.Kind == command.KindNone {
			continue
		}

		// An open panel sees the command first.
		if a.activePanel != nil {
			passthrough, followups := a.activePanel.Update(cmd)
			a.queue.PushAll(followups)
			if passthrough.Kind == command.KindNone {
				continue
			}
			cmd = passthrough
		}

		if a.handleAppCommand(cmd) {
			continue
		}
		a.queue.PushAll(a.editor.Execute(cmd))
	}
}

// handleAppCommand runs the commands that belong to the application layer
// rather than the buffer. Returns false for everything the editor handles.
func (a *App) handleAppCommand(cmd command.Command) bool {
	switch cmd.Kind {
	case command.KindQuit:
		a.requestQuit()
	case command.KindForceQuit:
		a.quitting = true
	case command.KindOpenFind:
		a.activePanel = panel.NewFind()
	case command.KindOpenHelp:
		a.activePanel = panel.NewHelp()
	case command.KindSaveAs:
		if cmd.Text == "" {
			a.activePanel = panel.NewSaveAs(a.editor.Buffer().Path())
			return true
		}
		return false // a concrete path saves through the editor
	case command.KindClosePanel:
		a.activePanel = nil
	case command.KindToggleWhitespace:
		a.showWhitespace = !a.showWhitespace
	case command.KindNotify:
		a.statusBar.Notify(cmd.Text, cmd.Level)
	default:
		return false
	}
	return true
}

// requestQuit exits immediately when the buffer is clean, otherwise asks.
func (a *App) requestQuit() {
	dirty, err := a.editor.Buffer().Dirty()
	if err != nil {
		logger.Warnf("app: dirty check failed: %v", err)
	}
	if !dirty {
		a.quitting = true
		return
	}
	a.activePanel = panel.NewConfirm("Unsaved changes. Quit anyway?", map[rune]command.Command{
		'y': {Kind: command.KindForceQuit},
		'n': {Kind: command.KindNone},
	})
}

func (a *App) draw() {
	if a.tuiManager == nil || a.quitting {
		return
	}
	buf := a.editor.Buffer()
	dirty, _ := buf.Dirty()
	a.statusBar.SetFileInfo(buf.Name(), dirty, buf.ReadOnly())
	cur := buf.Cursor()
	a.statusBar.SetCursorInfo(cur.Y, cur.X)

	a.tuiManager.Draw(tui.Frame{
		Buffer:         buf,
		Provider:       a.provider,
		Cache:          a.cache,
		StatusBar:      a.statusBar,
		Panel:          a.activePanel,
		ShowWhitespace: a.showWhitespace,
	})
}
