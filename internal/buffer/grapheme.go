package buffer

import (
	"github.com/rivo/uniseg"
)

// The cursor model works in extended grapheme clusters: the cursor never
// stops inside a cluster, and a cluster's display width is what uniseg
// reports (double-width CJK counts as 2, combining sequences count as their
// base cluster) except for tabs, which occupy a fixed stop width.

// clusterWidth returns the display-column width of one grapheme cluster.
func clusterWidth(cluster string, tabWidth int) int {
	if cluster == "\t" {
		return tabWidth
	}
	return uniseg.StringWidth(cluster)
}

// byteOffsetForColumn walks the line's grapheme clusters accumulating
// display width until it reaches column x, returning the byte offset of the
// cluster at or after that column, clamped to the line end. A column landing
// mid-cluster snaps to the cluster boundary at or after it.
func byteOffsetForColumn(line string, x, tabWidth int) int {
	if x <= 0 {
		return 0
	}
	width := 0
	offset := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if width >= x {
			return offset
		}
		cluster := gr.Str()
		width += clusterWidth(cluster, tabWidth)
		offset += len(cluster)
	}
	return len(line)
}

// columnForByteOffset returns the display column of a byte offset within the
// line: the summed width of all complete clusters preceding it.
func columnForByteOffset(line string, off, tabWidth int) int {
	if off <= 0 {
		return 0
	}
	width := 0
	consumed := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		if consumed+len(cluster) > off {
			break
		}
		consumed += len(cluster)
		width += clusterWidth(cluster, tabWidth)
	}
	return width
}

// lineDisplayWidth returns the total display width of a line.
func lineDisplayWidth(line string, tabWidth int) int {
	return columnForByteOffset(line, len(line), tabWidth)
}

// nextBoundary returns the byte offset of the grapheme boundary after pos,
// or pos unchanged at the document end. Invalid offsets clamp; the cursor
// never aborts on malformed input.
func (b *TextBuffer) nextBoundary(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(b.content) {
		return len(b.content)
	}
	// A cluster never spans a '\n' except as part of "\r\n", which the
	// line bounds include, so scanning within the line suffices.
	y := b.lineForOffset(pos)
	_, end := b.lineBounds(y)
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(b.content[pos:end], -1)
	if len(cluster) == 0 {
		return pos
	}
	return pos + len(cluster)
}

// prevBoundary returns the byte offset of the grapheme boundary before pos,
// or pos unchanged at the document start.
func (b *TextBuffer) prevBoundary(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(b.content) {
		pos = len(b.content)
	}
	y := b.lineForOffset(pos)
	start := b.linestarts[y]
	if pos == start {
		// Step over the previous line's break.
		if pos >= 2 && b.content[pos-2] == '\r' && b.content[pos-1] == '\n' {
			return pos - 2
		}
		return pos - 1
	}
	// Walk the line's clusters and keep the last boundary before pos.
	last := start
	rest := b.content[start:pos]
	for len(rest) > 0 {
		cluster, remainder, _, _ := uniseg.FirstGraphemeCluster(rest, -1)
		if len(cluster) == 0 {
			break
		}
		if len(remainder) == 0 {
			return last
		}
		last += len(cluster)
		rest = remainder
	}
	return last
}

// snapToBoundary clamps an arbitrary byte offset onto the grapheme boundary
// at or before it.
func (b *TextBuffer) snapToBoundary(off int) int {
	off = clamp(off, 0, len(b.content))
	if off == 0 || off == len(b.content) {
		return off
	}
	y := b.lineForOffset(off)
	start, end := b.lineBounds(y)
	at := start
	rest := b.content[start:end]
	for len(rest) > 0 {
		cluster, remainder, _, _ := uniseg.FirstGraphemeCluster(rest, -1)
		if len(cluster) == 0 || at+len(cluster) > off {
			break
		}
		at += len(cluster)
		rest = remainder
	}
	return at
}
