package buffer

import "sort"

// rebuildLineStarts scans content for '\n' bytes and returns the line-start
// table: offset 0, the offset after every newline, and finally the content
// length as a sentinel. Empty content yields [0, 0].
//
// The table is rebuilt in full after every mutation. Patching it
// incrementally would save a scan per edit; the full rebuild is accepted
// debt, kept for simplicity.
func rebuildLineStarts(content []byte) []int {
	starts := make([]int, 1, 16)
	starts[0] = 0
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return append(starts, len(content))
}

// LineCount returns the number of lines. Always at least 1.
func (b *TextBuffer) LineCount() int {
	return len(b.linestarts) - 1
}

// lineForOffset returns the index of the line containing the byte offset.
// The document end belongs to the last line.
func (b *TextBuffer) lineForOffset(off int) int {
	n := b.LineCount()
	y := sort.Search(n, func(i int) bool { return b.linestarts[i+1] > off })
	if y >= n {
		y = n - 1
	}
	return y
}

// LineForOffset returns the index of the line containing the byte offset.
func (b *TextBuffer) LineForOffset(off int) int {
	return b.lineForOffset(clamp(off, 0, len(b.content)))
}

// lineBounds returns the byte range of line y including its line break.
func (b *TextBuffer) lineBounds(y int) (start, end int) {
	y = clamp(y, 0, b.LineCount()-1)
	return b.linestarts[y], b.linestarts[y+1]
}

// lineTextBounds returns the byte range of line y excluding its line break.
func (b *TextBuffer) lineTextBounds(y int) (start, end int) {
	start, end = b.lineBounds(y)
	if end > start && b.content[end-1] == '\n' {
		end--
		if end > start && b.content[end-1] == '\r' {
			end--
		}
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
