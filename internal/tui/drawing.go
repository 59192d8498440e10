package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/fennwick/scribe/internal/buffer"
	"github.com/fennwick/scribe/internal/highlight"
	"github.com/fennwick/scribe/internal/panel"
	"github.com/fennwick/scribe/internal/statusbar"
	"github.com/fennwick/scribe/internal/syntax"
	"github.com/fennwick/scribe/internal/theme"
)

// StatusBarHeight is the number of rows reserved at the bottom.
const StatusBarHeight = 1

// Frame is everything one redraw needs.
type Frame struct {
	Buffer         *buffer.TextBuffer
	Provider       syntax.Provider
	Cache          *highlight.Cache
	StatusBar      *statusbar.StatusBar
	Panel          panel.Panel // nil when no panel is open
	ShowWhitespace bool
}

// TextHeight returns the number of buffer rows currently visible.
func (t *TUI) TextHeight() int {
	_, h := t.Size()
	if h <= StatusBarHeight {
		return 0
	}
	return h - StatusBarHeight
}

// Draw renders one complete frame.
func (t *TUI) Draw(f Frame) {
	t.screen.Clear()
	width, height := t.Size()
	textHeight := t.TextHeight()
	if width <= 0 || textHeight <= 0 {
		return
	}

	th := theme.GetCurrentTheme()
	top := f.Buffer.Top()
	lines := highlight.ParseWindow(f.Buffer, f.Provider, f.Cache, top, textHeight-1, f.ShowWhitespace)

	searchStyle := th.GetStyle("SearchHighlight")
	for row, line := range lines {
		matches := f.Buffer.HighlightColumns(top + row)
		x := 0
		for _, span := range line {
			style := th.GetStyle(span.Style)
			gr := uniseg.NewGraphemes(span.Text)
			for gr.Next() && x < width {
				cellStyle := style
				if columnMatched(matches, x) {
					cellStyle = searchStyle
				}
				runes := gr.Runes()
				screenWidth := gr.Width()
				t.screen.SetContent(x, row, runes[0], runes[1:], cellStyle)
				x += screenWidth
			}
		}
	}

	f.StatusBar.Draw(t.screen, width, height)
	t.drawPanel(f.Panel, width, textHeight)
	t.placeCursor(f, textHeight)
	t.screen.Show()
}

func columnMatched(matches [][2]int, x int) bool {
	for _, m := range matches {
		if x >= m[0] && x < m[1] {
			return true
		}
	}
	return false
}

// placeCursor shows the hardware cursor at the buffer position, or hides it
// while a text-input panel is open.
func (t *TUI) placeCursor(f Frame, textHeight int) {
	if f.Panel != nil {
		t.screen.HideCursor()
		return
	}
	cur := f.Buffer.Cursor()
	y := cur.Y - f.Buffer.Top()
	if y < 0 || y >= textHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(cur.X, y)
}

// drawPanel overlays the active panel on the rows just above the status bar.
func (t *TUI) drawPanel(p panel.Panel, width, textHeight int) {
	if p == nil {
		return
	}
	th := theme.GetCurrentTheme()
	body := p.Lines()
	rows := len(body) + 1 // title row
	startY := textHeight - rows
	if startY < 0 {
		startY = 0
	}

	t.putLine(0, startY, " "+p.Title(), width, th.GetStyle("PanelTitle"))
	for i, line := range body {
		t.putLine(0, startY+1+i, " "+line, width, th.GetStyle("Panel"))
	}
}

// putLine writes one padded row in a single style.
func (t *TUI) putLine(x, y int, text string, width int, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() && x < width {
		runes := gr.Runes()
		t.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}
