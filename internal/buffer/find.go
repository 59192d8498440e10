package buffer

import "bytes"

// Find collects all non-overlapping literal matches of needle and stores
// them as highlight ranges. An empty needle clears the highlights. The
// number of matches is returned.
func (b *TextBuffer) Find(needle string) int {
	b.highlights = b.highlights[:0]
	if needle == "" {
		return 0
	}
	pat := []byte(needle)
	off := 0
	for {
		i := bytes.Index(b.content[off:], pat)
		if i < 0 {
			break
		}
		start := off + i
		b.highlights = append(b.highlights, Range{Start: start, End: start + len(pat)})
		off = start + len(pat)
	}
	return len(b.highlights)
}

// HighlightColumns returns the display-column ranges of find matches
// touching line y, for rendering.
func (b *TextBuffer) HighlightColumns(y int) [][2]int {
	start, end := b.lineTextBounds(y)
	line := string(b.content[start:end])
	var cols [][2]int
	for _, h := range b.highlights {
		if h.End <= start || h.Start >= end {
			continue
		}
		from := clamp(h.Start, start, end) - start
		to := clamp(h.End, start, end) - start
		cols = append(cols, [2]int{
			columnForByteOffset(line, from, b.tabWidth),
			columnForByteOffset(line, to, b.tabWidth),
		})
	}
	return cols
}

// ClearHighlights drops all find matches.
func (b *TextBuffer) ClearHighlights() {
	b.highlights = nil
}

// JumpNextHighlight moves the caret to the first match starting strictly
// after it, wrapping to the first match. Returns false with no matches.
func (b *TextBuffer) JumpNextHighlight() bool {
	if len(b.highlights) == 0 {
		return false
	}
	for _, h := range b.highlights {
		if h.Start > b.pos {
			b.SetPosition(h.Start)
			return true
		}
	}
	b.SetPosition(b.highlights[0].Start)
	return true
}

// JumpPreviousHighlight moves the caret to the last match starting strictly
// before it, wrapping to the last match. Returns false with no matches.
func (b *TextBuffer) JumpPreviousHighlight() bool {
	if len(b.highlights) == 0 {
		return false
	}
	for i := len(b.highlights) - 1; i >= 0; i-- {
		if b.highlights[i].Start < b.pos {
			b.SetPosition(b.highlights[i].Start)
			return true
		}
	}
	b.SetPosition(b.highlights[len(b.highlights)-1].Start)
	return true
}
