package buffer

// InsertRune inserts a single rune at the caret and advances past it.
func (b *TextBuffer) InsertRune(r rune) {
	b.InsertString(string(r))
}

// InsertString inserts text at the caret. The caret ends up directly after
// the inserted bytes and the line table is rebuilt.
func (b *TextBuffer) InsertString(s string) {
	if s == "" {
		return
	}
	b.content = append(b.content[:b.pos], append([]byte(s), b.content[b.pos:]...)...)
	b.pos += len(s)
	b.linestarts = rebuildLineStarts(b.content)
	b.preferred = -1
	b.syncCursorFromPosition()
}

// Backspace removes the grapheme cluster before the caret and returns the
// removed text. A full \r\n pair at a line boundary is removed as one unit.
// At the start of the document it is a no-op.
func (b *TextBuffer) Backspace() string {
	if b.pos == 0 {
		return ""
	}
	start := b.prevBoundary(b.pos)
	removed := string(b.content[start:b.pos])
	b.content = append(b.content[:start], b.content[b.pos:]...)
	b.pos = start
	b.linestarts = rebuildLineStarts(b.content)
	b.preferred = -1
	b.syncCursorFromPosition()
	return removed
}

// Delete removes the grapheme cluster at the caret without moving it and
// returns the removed text. At the end of the document it is a no-op.
func (b *TextBuffer) Delete() string {
	if b.pos >= len(b.content) {
		return ""
	}
	end := b.nextBoundary(b.pos)
	removed := string(b.content[b.pos:end])
	b.content = append(b.content[:b.pos], b.content[end:]...)
	b.linestarts = rebuildLineStarts(b.content)
	b.preferred = -1
	b.syncCursorFromPosition()
	return removed
}

// Drain removes the byte range [start, end) and returns the removed text.
// The caret is moved to start of the removed range if it was inside or after
// it, otherwise it stays put.
func (b *TextBuffer) Drain(start, end int) string {
	start = clamp(start, 0, len(b.content))
	end = clamp(end, start, len(b.content))
	if start == end {
		return ""
	}
	removed := string(b.content[start:end])
	b.content = append(b.content[:start], b.content[end:]...)
	switch {
	case b.pos >= end:
		b.pos -= end - start
	case b.pos > start:
		b.pos = start
	}
	b.linestarts = rebuildLineStarts(b.content)
	b.pos = b.snapToBoundary(b.pos)
	b.preferred = -1
	b.syncCursorFromPosition()
	return removed
}

// CutLine removes the caret's whole line including its line break and
// returns the removed text with the byte offset it started at. The caret
// lands at the start of the line that takes its place.
func (b *TextBuffer) CutLine() (string, int) {
	start, end := b.lineBounds(b.cursor.Y)
	if start == end {
		return "", start
	}
	b.pos = start
	removed := b.Drain(start, end)
	return removed, start
}
