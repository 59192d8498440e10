// Package input translates tcell events into editor commands.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/fennwick/scribe/internal/command"
)

// Keymap maps special keys to command kinds.
type Keymap map[tcell.Key]command.Kind

// Processor decodes tcell events with the default bindings.
type Processor struct {
	keymap     Keymap
	altKeymap  Keymap // bindings that require the Alt modifier
	ctrlKeymap Keymap // special keys combined with Ctrl
}

// NewProcessor creates a processor with the default bindings.
func NewProcessor() *Processor {
	p := &Processor{
		keymap:     make(Keymap),
		altKeymap:  make(Keymap),
		ctrlKeymap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *Processor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = command.KindMoveUp
	p.keymap[tcell.KeyDown] = command.KindMoveDown
	p.keymap[tcell.KeyLeft] = command.KindMoveLeft
	p.keymap[tcell.KeyRight] = command.KindMoveRight
	p.keymap[tcell.KeyPgUp] = command.KindPageUp
	p.keymap[tcell.KeyPgDn] = command.KindPageDown
	p.keymap[tcell.KeyHome] = command.KindLineStart
	p.keymap[tcell.KeyEnd] = command.KindLineEnd
	p.keymap[tcell.KeyBackspace] = command.KindBackspace
	p.keymap[tcell.KeyBackspace2] = command.KindBackspace
	p.keymap[tcell.KeyDelete] = command.KindDelete

	p.keymap[tcell.KeyCtrlS] = command.KindSave
	p.keymap[tcell.KeyCtrlZ] = command.KindUndo
	p.keymap[tcell.KeyCtrlY] = command.KindRedo
	p.keymap[tcell.KeyCtrlF] = command.KindOpenFind
	p.keymap[tcell.KeyCtrlK] = command.KindCutLine
	p.keymap[tcell.KeyCtrlV] = command.KindPasteClipboard
	p.keymap[tcell.KeyCtrlQ] = command.KindQuit
	p.keymap[tcell.KeyCtrlG] = command.KindOpenHelp
	p.keymap[tcell.KeyCtrlW] = command.KindToggleWhitespace
	p.keymap[tcell.KeyEscape] = command.KindClosePanel
	p.keymap[tcell.KeyF3] = command.KindNextMatch

	p.altKeymap[tcell.KeyLeft] = command.KindWordLeft
	p.altKeymap[tcell.KeyRight] = command.KindWordRight
	p.altKeymap[tcell.KeyUp] = command.KindScrollUp
	p.altKeymap[tcell.KeyDown] = command.KindScrollDown

	p.ctrlKeymap[tcell.KeyHome] = command.KindTop
	p.ctrlKeymap[tcell.KeyEnd] = command.KindBottom
	p.ctrlKeymap[tcell.KeyLeft] = command.KindWordLeft
	p.ctrlKeymap[tcell.KeyRight] = command.KindWordRight
}

// DecodeKey translates one key event into a command. Unbound events decode
// to KindNone.
func (p *Processor) DecodeKey(ev *tcell.EventKey) command.Command {
	if ev.Modifiers()&tcell.ModAlt != 0 {
		if kind, ok := p.altKeymap[ev.Key()]; ok {
			return command.Command{Kind: kind, N: 1}
		}
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		if kind, ok := p.ctrlKeymap[ev.Key()]; ok {
			return command.Command{Kind: kind, N: 1}
		}
	}

	if kind, ok := p.keymap[ev.Key()]; ok {
		return command.Command{Kind: kind, N: 1}
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		return command.Command{Kind: command.KindInsertRune, Rune: '\n'}
	case tcell.KeyTab:
		return command.Command{Kind: command.KindInsertRune, Rune: '\t'}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			return command.Command{Kind: command.KindInsertRune, Rune: ev.Rune()}
		}
	}
	return command.Command{Kind: command.KindNone}
}

// DecodeMouse translates a mouse event into a command given the viewport
// text area height.
func (p *Processor) DecodeMouse(ev *tcell.EventMouse, textHeight int) command.Command {
	x, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return command.Command{Kind: command.KindScrollUp, N: 3}
	case ev.Buttons()&tcell.WheelDown != 0:
		return command.Command{Kind: command.KindScrollDown, N: 3}
	case ev.Buttons()&tcell.Button1 != 0:
		if y < textHeight {
			return command.Command{Kind: command.KindSetCursor, X: x, Y: y}
		}
	}
	return command.Command{Kind: command.KindNone}
}
