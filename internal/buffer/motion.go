package buffer

import "unicode/utf8"

// MoveLeft moves the caret one grapheme cluster left, crossing onto the end
// of the previous line at a line start.
func (b *TextBuffer) MoveLeft() {
	b.preferred = -1
	if b.pos == 0 {
		return
	}
	b.pos = b.prevBoundary(b.pos)
	b.syncCursorFromPosition()
}

// MoveRight moves the caret one grapheme cluster right, crossing onto the
// start of the next line at a line end.
func (b *TextBuffer) MoveRight() {
	b.preferred = -1
	if b.pos >= len(b.content) {
		return
	}
	_, textEnd := b.lineTextBounds(b.cursor.Y)
	if b.pos >= textEnd {
		// Step over the whole line break.
		_, end := b.lineBounds(b.cursor.Y)
		b.pos = end
	} else {
		b.pos = b.nextBoundary(b.pos)
	}
	b.syncCursorFromPosition()
}

// MoveUp moves the caret one line up, keeping the preferred column. On the
// first line it jumps to the start of the line instead.
func (b *TextBuffer) MoveUp() {
	if b.cursor.Y == 0 {
		b.preferred = -1
		b.GotoStartOfLine()
		return
	}
	b.stickColumn()
	b.cursor.Y--
	b.cursor.X = b.preferred
	b.syncPositionFromCursor()
}

// MoveDown moves the caret one line down, keeping the preferred column. On
// the last line it jumps to the end of the line instead.
func (b *TextBuffer) MoveDown() {
	if b.cursor.Y >= b.LineCount()-1 {
		b.preferred = -1
		b.GotoEndOfLine()
		return
	}
	b.stickColumn()
	b.cursor.Y++
	b.cursor.X = b.preferred
	b.syncPositionFromCursor()
}

// stickColumn establishes the preferred column on the first vertical move of
// a run. Horizontal moves and jumps clear it.
func (b *TextBuffer) stickColumn() {
	if b.preferred < 0 {
		b.preferred = b.cursor.X
	}
}

// PageUp shifts the viewport and caret up by one screen of height h.
func (b *TextBuffer) PageUp(h int) {
	if h < 1 {
		h = 1
	}
	b.stickColumn()
	b.top = clamp(b.top-h, 0, b.LineCount()-1)
	b.cursor.Y = clamp(b.cursor.Y-h, 0, b.LineCount()-1)
	b.cursor.X = b.preferred
	b.syncPositionFromCursor()
}

// PageDown shifts the viewport and caret down by one screen of height h.
func (b *TextBuffer) PageDown(h int) {
	if h < 1 {
		h = 1
	}
	b.stickColumn()
	b.top = clamp(b.top+h, 0, b.LineCount()-1)
	b.cursor.Y = clamp(b.cursor.Y+h, 0, b.LineCount()-1)
	b.cursor.X = b.preferred
	b.syncPositionFromCursor()
}

// ScrollUp moves the viewport up n lines without touching the caret.
func (b *TextBuffer) ScrollUp(n int) {
	b.top = clamp(b.top-n, 0, b.LineCount()-1)
}

// ScrollDown moves the viewport down n lines without touching the caret.
func (b *TextBuffer) ScrollDown(n int) {
	b.top = clamp(b.top+n, 0, b.LineCount()-1)
}

// GotoStartOfLine moves the caret to column zero of its line.
func (b *TextBuffer) GotoStartOfLine() {
	b.preferred = -1
	start, _ := b.lineTextBounds(b.cursor.Y)
	b.pos = start
	b.syncCursorFromPosition()
}

// GotoEndOfLine moves the caret past the last cluster of its line, before
// the line break.
func (b *TextBuffer) GotoEndOfLine() {
	b.preferred = -1
	_, textEnd := b.lineTextBounds(b.cursor.Y)
	b.pos = textEnd
	b.syncCursorFromPosition()
}

// GotoTop moves the caret to the start of the document.
func (b *TextBuffer) GotoTop() {
	b.preferred = -1
	b.pos = 0
	b.top = 0
	b.syncCursorFromPosition()
}

// GotoBottom moves the caret to the end of the document.
func (b *TextBuffer) GotoBottom() {
	b.preferred = -1
	b.pos = len(b.content)
	b.syncCursorFromPosition()
}

// SetViewportCursorPos places the caret from viewport coordinates, e.g. a
// mouse click: y is relative to the top visible line, x a display column.
// The column snaps onto the nearest grapheme boundary at or before it.
func (b *TextBuffer) SetViewportCursorPos(x, y int) {
	b.preferred = -1
	b.cursor.Y = clamp(b.top+y, 0, b.LineCount()-1)
	b.cursor.X = x
	b.syncPositionFromCursor()
}

// Character classes for word motion.
const (
	classSpace = iota
	classWord
	classPunct
)

func classOf(r rune) int {
	switch {
	case r == ' ' || r == '\t':
		return classSpace
	case r == '_' || (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80:
		return classWord
	default:
		return classPunct
	}
}

// WordRight moves the caret to the end of the current same-class run,
// stopping at the line end. At a line end it crosses the single line break.
func (b *TextBuffer) WordRight() {
	b.preferred = -1
	_, textEnd := b.lineTextBounds(b.cursor.Y)
	if b.pos >= textEnd {
		if b.pos < len(b.content) {
			_, end := b.lineBounds(b.cursor.Y)
			b.pos = end
			b.syncCursorFromPosition()
		}
		return
	}
	cls := classOf(runeAt(b.content, b.pos))
	for b.pos < textEnd {
		next := b.nextBoundary(b.pos)
		if classOf(runeAt(b.content, b.pos)) != cls {
			break
		}
		b.pos = next
	}
	b.syncCursorFromPosition()
}

// WordLeft moves the caret to the start of the same-class run before it,
// stopping at the line start. At a line start it crosses the single line
// break onto the end of the previous line.
func (b *TextBuffer) WordLeft() {
	b.preferred = -1
	start, _ := b.lineTextBounds(b.cursor.Y)
	if b.pos <= start {
		if b.pos > 0 {
			b.pos = b.prevBoundary(b.pos)
			b.syncCursorFromPosition()
		}
		return
	}
	prev := b.prevBoundary(b.pos)
	cls := classOf(runeAt(b.content, prev))
	for b.pos > start {
		prev = b.prevBoundary(b.pos)
		if classOf(runeAt(b.content, prev)) != cls {
			break
		}
		b.pos = prev
	}
	b.syncCursorFromPosition()
}

// runeAt decodes the rune starting at off.
func runeAt(content []byte, off int) rune {
	r, _ := utf8.DecodeRune(content[off:])
	return r
}
