// Package buffer implements the text buffer: a flat UTF-8 byte slice plus a
// line-start table, a grapheme-accurate visual cursor, and the edit, motion
// and find operations the editor core is built on.
//
// The buffer keeps two representations of the caret: the byte offset
// (always on a grapheme boundary) and the visual cursor (row, display
// column). Any operation that changes one re-synchronizes the other before
// returning, so the two never disagree between commands.
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fennwick/scribe/internal/logger"
)

// Cursor is a visual position: Y is the line index, X the display column.
type Cursor struct {
	X, Y int
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start, End int
}

// Persistence errors, matched with errors.Is by callers.
var (
	ErrReadOnly       = errors.New("buffer is read-only")
	ErrOpenedReadOnly = errors.New("file was opened read-only")
	ErrNoPath         = errors.New("no file path set")
)

// TextBuffer owns one document's content and cursor state.
type TextBuffer struct {
	content    []byte
	linestarts []int
	pos        int // byte offset, always on a grapheme boundary
	cursor     Cursor
	top        int // first visible line
	preferred  int // sticky column for vertical motion, -1 when unset
	tabWidth   int

	path           string
	readonly       bool
	openedReadonly bool

	highlights []Range // find matches
}

// New creates an empty buffer.
func New(tabWidth int) *TextBuffer {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	b := &TextBuffer{
		tabWidth:  tabWidth,
		preferred: -1,
	}
	b.linestarts = rebuildLineStarts(b.content)
	return b
}

// FromFile creates a buffer from a file's bytes, byte-for-byte with no
// newline translation. A missing file yields an empty buffer that will be
// created on save.
func FromFile(path string, tabWidth int, readonly bool) (*TextBuffer, error) {
	b := New(tabWidth)
	b.path = path
	b.readonly = readonly

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return b, nil
		}
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	b.content = data
	b.linestarts = rebuildLineStarts(b.content)

	// Probe writability once so save failures are predictable.
	if f, openErr := os.OpenFile(path, os.O_WRONLY, 0); openErr != nil {
		if errors.Is(openErr, os.ErrPermission) {
			b.openedReadonly = true
			logger.Infof("buffer: %s opened read-only", path)
		}
	} else {
		f.Close()
	}

	return b, nil
}

// --- Accessors ---

// Bytes returns the buffer content. Callers must not mutate it.
func (b *TextBuffer) Bytes() []byte { return b.content }

// String returns the buffer content as a string.
func (b *TextBuffer) String() string { return string(b.content) }

// Len returns the content length in bytes.
func (b *TextBuffer) Len() int { return len(b.content) }

// Position returns the current byte offset.
func (b *TextBuffer) Position() int { return b.pos }

// Cursor returns the current visual cursor.
func (b *TextBuffer) Cursor() Cursor { return b.cursor }

// Top returns the first visible line.
func (b *TextBuffer) Top() int { return b.top }

// TabWidth returns the configured tab stop width.
func (b *TextBuffer) TabWidth() int { return b.tabWidth }

// Path returns the backing file path, empty for an unnamed buffer.
func (b *TextBuffer) Path() string { return b.path }

// SetPath sets the backing file path (save-as).
func (b *TextBuffer) SetPath(path string) { b.path = path }

// Name returns a displayable buffer name.
func (b *TextBuffer) Name() string {
	if b.path == "" {
		return "[No Name]"
	}
	return b.path
}

// ReadOnly reports whether the buffer rejects saving.
func (b *TextBuffer) ReadOnly() bool { return b.readonly || b.openedReadonly }

// Line returns line y without its line break.
func (b *TextBuffer) Line(y int) string {
	start, end := b.lineTextBounds(y)
	return string(b.content[start:end])
}

// LineWithEnding returns line y including its line break, for parsing.
func (b *TextBuffer) LineWithEnding(y int) []byte {
	start, end := b.lineBounds(y)
	return b.content[start:end]
}

// Highlights returns the find match ranges.
func (b *TextBuffer) Highlights() []Range { return b.highlights }

// --- Cursor synchronization ---

// syncCursorFromPosition recomputes the visual cursor from the byte offset.
func (b *TextBuffer) syncCursorFromPosition() {
	b.pos = clamp(b.pos, 0, len(b.content))
	y := b.lineForOffset(b.pos)
	start, _ := b.lineTextBounds(y)
	b.cursor.Y = y
	b.cursor.X = columnForByteOffset(b.Line(y), b.pos-start, b.tabWidth)
}

// syncPositionFromCursor recomputes the byte offset from the visual cursor,
// snapping the column onto a grapheme boundary.
func (b *TextBuffer) syncPositionFromCursor() {
	b.cursor.Y = clamp(b.cursor.Y, 0, b.LineCount()-1)
	line := b.Line(b.cursor.Y)
	start, _ := b.lineTextBounds(b.cursor.Y)
	off := byteOffsetForColumn(line, b.cursor.X, b.tabWidth)
	b.pos = start + off
	b.cursor.X = columnForByteOffset(line, off, b.tabWidth)
}

// SetPosition places the caret at an arbitrary byte offset, snapped onto the
// grapheme boundary at or before it.
func (b *TextBuffer) SetPosition(off int) {
	b.pos = b.snapToBoundary(off)
	b.syncCursorFromPosition()
}

// SetTop sets the first visible line, clamped to the document.
func (b *TextBuffer) SetTop(top int) {
	b.top = clamp(top, 0, b.LineCount()-1)
}

// --- Persistence ---

// Save writes the content byte-for-byte to the backing file. The in-memory
// state is never mutated by a failed save.
func (b *TextBuffer) Save() error {
	if b.readonly {
		return ErrReadOnly
	}
	if b.openedReadonly {
		return ErrOpenedReadOnly
	}
	if b.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.path, b.content, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", b.path, err)
	}
	return nil
}

// Dirty compares the backing file against the live content. A buffer with no
// backing file is dirty iff it is non-empty ("unsaved new file").
func (b *TextBuffer) Dirty() (bool, error) {
	if b.path == "" {
		return len(b.content) > 0, nil
	}
	disk, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return len(b.content) > 0, nil
		}
		return false, fmt.Errorf("failed to read file '%s': %w", b.path, err)
	}
	return !bytes.Equal(disk, b.content), nil
}
