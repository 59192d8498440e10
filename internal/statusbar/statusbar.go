// Package statusbar renders the bottom status line: buffer name, modified
// marker, cursor position, and transient notifications.
package statusbar

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/fennwick/scribe/internal/command"
	"github.com/fennwick/scribe/internal/theme"
)

// StatusBar holds the state shown on the status line. The editor core is
// single-threaded, so no locking is needed.
type StatusBar struct {
	name     string
	modified bool
	readonly bool
	line     int // 0-based
	col      int // 0-based display column

	message      string
	messageLevel command.Level
	messageTime  time.Time
	timeout      time.Duration

	now func() time.Time
}

// New creates a status bar with the given notification timeout.
func New(timeout time.Duration) *StatusBar {
	return &StatusBar{
		timeout: timeout,
		now:     time.Now,
	}
}

// SetFileInfo updates the buffer name and its flags.
func (sb *StatusBar) SetFileInfo(name string, modified, readonly bool) {
	sb.name = name
	sb.modified = modified
	sb.readonly = readonly
}

// SetCursorInfo updates the displayed cursor position.
func (sb *StatusBar) SetCursorInfo(line, col int) {
	sb.line = line
	sb.col = col
}

// Notify displays a transient message until the timeout elapses.
func (sb *StatusBar) Notify(text string, level command.Level) {
	sb.message = text
	sb.messageLevel = level
	sb.messageTime = sb.now()
}

// ClearMessage drops any transient message.
func (sb *StatusBar) ClearMessage() {
	sb.message = ""
	sb.messageTime = time.Time{}
}

// messageActive reports whether a transient message should still be shown,
// clearing it once expired.
func (sb *StatusBar) messageActive() bool {
	if sb.messageTime.IsZero() {
		return false
	}
	if sb.now().Sub(sb.messageTime) > sb.timeout {
		sb.ClearMessage()
		return false
	}
	return true
}

func (sb *StatusBar) defaultText() string {
	name := sb.name
	if name == "" {
		name = "[No Name]"
	}
	marker := ""
	if sb.modified {
		marker = " [+]"
	}
	if sb.readonly {
		marker += " [RO]"
	}
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d", name, marker, sb.line+1, sb.col+1)
}

// Draw renders the status bar on the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	th := theme.GetCurrentTheme()

	style := th.GetStyle("StatusBar")
	text := sb.defaultText()
	if sb.messageActive() {
		text = sb.message
		switch sb.messageLevel {
		case command.LevelError:
			style = th.GetStyle("StatusBarError")
		case command.LevelSuccess:
			style = th.GetStyle("StatusBarSuccess")
		default:
			style = th.GetStyle("StatusBarMessage")
		}
	}

	x := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() && x < width {
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, th.GetStyle("StatusBar"))
	}
}
