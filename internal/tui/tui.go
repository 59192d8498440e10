// Package tui owns the tcell screen and renders the editor to it.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fennwick/scribe/internal/theme"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes the terminal screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(theme.GetCurrentTheme().GetStyle("Default"))
	s.EnableMouse()
	return &TUI{screen: s}, nil
}

// NewFromScreen wraps an existing screen, used with tcell's simulation
// screen in tests.
func NewFromScreen(s tcell.Screen) *TUI {
	return &TUI{screen: s}
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next terminal event, blocking.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes pending changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the terminal dimensions.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// Screen provides direct access for drawing.
func (t *TUI) Screen() tcell.Screen {
	return t.screen
}
