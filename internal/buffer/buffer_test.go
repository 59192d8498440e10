package buffer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newBuf(t *testing.T, content string) *TextBuffer {
	t.Helper()
	b := New(4)
	b.InsertString(content)
	b.GotoTop()
	return b
}

func TestLineStartsAfterPaste(t *testing.T) {
	b := newBuf(t, "123\n123\n")
	want := []int{0, 4, 8, 8}
	if !reflect.DeepEqual(b.linestarts, want) {
		t.Fatalf("linestarts = %v, want %v", b.linestarts, want)
	}
	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}
}

func TestLineStartsEmptyBuffer(t *testing.T) {
	b := New(4)
	want := []int{0, 0}
	if !reflect.DeepEqual(b.linestarts, want) {
		t.Fatalf("linestarts = %v, want %v", b.linestarts, want)
	}
	if b.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", b.LineCount())
	}
}

func TestMoveRightOverMultibyteCluster(t *testing.T) {
	// "here is " is 8 bytes, the snowman 3, so 9 clusters end at byte 11
	// and 3 more ASCII moves land at byte 14.
	b := newBuf(t, "here is ☃ snowman")
	for i := 0; i < 12; i++ {
		b.MoveRight()
	}
	if b.Position() != 14 {
		t.Fatalf("Position() = %d, want 14", b.Position())
	}
	if b.Cursor().X != 12 {
		t.Fatalf("Cursor().X = %d, want 12", b.Cursor().X)
	}
}

func TestMoveRightThenLeftRoundTrips(t *testing.T) {
	b := newBuf(t, "aé☃中éx\nnext")
	for k := 1; k <= 8; k++ {
		b.GotoTop()
		for i := 0; i < k; i++ {
			b.MoveRight()
		}
		for i := 0; i < k; i++ {
			b.MoveLeft()
		}
		if b.Position() != 0 {
			t.Fatalf("after %d right/left pairs Position() = %d, want 0", k, b.Position())
		}
	}
}

func TestMoveRightCrossesLineBreak(t *testing.T) {
	b := newBuf(t, "ab\ncd")
	b.SetPosition(2)
	b.MoveRight()
	if b.Position() != 3 || b.Cursor().Y != 1 || b.Cursor().X != 0 {
		t.Fatalf("got pos=%d cursor=%+v, want pos=3 cursor={0 1}", b.Position(), b.Cursor())
	}
	b.MoveLeft()
	if b.Position() != 2 || b.Cursor().Y != 0 {
		t.Fatalf("got pos=%d cursor=%+v, want pos=2 on line 0", b.Position(), b.Cursor())
	}
}

func TestMoveLeftCrossesCRLFAsOneUnit(t *testing.T) {
	b := newBuf(t, "ab\r\ncd")
	b.SetPosition(4)
	b.MoveLeft()
	if b.Position() != 2 {
		t.Fatalf("Position() = %d, want 2", b.Position())
	}
}

func TestTabOccupiesFixedColumns(t *testing.T) {
	b := newBuf(t, "\tx")
	b.MoveRight()
	if b.Cursor().X != 4 {
		t.Fatalf("Cursor().X after tab = %d, want 4", b.Cursor().X)
	}
	b.MoveRight()
	if b.Cursor().X != 5 {
		t.Fatalf("Cursor().X = %d, want 5", b.Cursor().X)
	}
}

func TestWideClusterColumns(t *testing.T) {
	b := newBuf(t, "中x")
	b.MoveRight()
	if b.Cursor().X != 2 {
		t.Fatalf("Cursor().X after wide cluster = %d, want 2", b.Cursor().X)
	}
}

func TestVerticalMotionKeepsPreferredColumn(t *testing.T) {
	b := newBuf(t, "long line here\nab\nlonger line again")
	b.SetPosition(8)
	b.MoveDown()
	if b.Cursor().Y != 1 || b.Cursor().X != 2 {
		t.Fatalf("after down: cursor=%+v, want {2 1}", b.Cursor())
	}
	b.MoveDown()
	if b.Cursor().Y != 2 || b.Cursor().X != 8 {
		t.Fatalf("after second down: cursor=%+v, want {8 2}", b.Cursor())
	}
}

func TestHorizontalMoveClearsPreferredColumn(t *testing.T) {
	b := newBuf(t, "abcdef\nab\nabcdef")
	b.SetPosition(4)
	b.MoveDown()
	b.MoveLeft()
	b.MoveDown()
	if b.Cursor().X != 1 {
		t.Fatalf("Cursor().X = %d, want 1 (preferred column cleared)", b.Cursor().X)
	}
}

func TestMoveUpOnFirstLineJumpsToStart(t *testing.T) {
	b := newBuf(t, "abc\ndef")
	b.SetPosition(2)
	b.MoveUp()
	if b.Position() != 0 {
		t.Fatalf("Position() = %d, want 0", b.Position())
	}
}

func TestMoveDownOnLastLineJumpsToEnd(t *testing.T) {
	b := newBuf(t, "abc\ndef")
	b.SetPosition(5)
	b.MoveDown()
	if b.Position() != 7 {
		t.Fatalf("Position() = %d, want 7", b.Position())
	}
}

func TestInsertAdvancesPastInsertedText(t *testing.T) {
	b := newBuf(t, "ad")
	b.SetPosition(1)
	b.InsertString("bc")
	if b.String() != "abcd" {
		t.Fatalf("content = %q, want %q", b.String(), "abcd")
	}
	if b.Position() != 3 {
		t.Fatalf("Position() = %d, want 3", b.Position())
	}
}

func TestBackspaceRemovesWholeCluster(t *testing.T) {
	b := newBuf(t, "a☃")
	b.GotoBottom()
	removed := b.Backspace()
	if removed != "☃" {
		t.Fatalf("removed = %q, want %q", removed, "☃")
	}
	if b.String() != "a" || b.Position() != 1 {
		t.Fatalf("content=%q pos=%d, want %q pos=1", b.String(), b.Position(), "a")
	}
}

func TestBackspaceAtStartIsNoOp(t *testing.T) {
	b := newBuf(t, "abc")
	if removed := b.Backspace(); removed != "" {
		t.Fatalf("removed = %q, want empty", removed)
	}
	if b.String() != "abc" {
		t.Fatalf("content = %q, want unchanged", b.String())
	}
}

func TestBackspaceRemovesCRLFPair(t *testing.T) {
	b := newBuf(t, "ab\r\ncd")
	b.SetPosition(4)
	removed := b.Backspace()
	if removed != "\r\n" {
		t.Fatalf("removed = %q, want \\r\\n", removed)
	}
	if b.String() != "abcd" || b.Position() != 2 {
		t.Fatalf("content=%q pos=%d, want %q pos=2", b.String(), b.Position(), "abcd")
	}
}

func TestDeleteAtEndIsNoOp(t *testing.T) {
	b := newBuf(t, "abc")
	b.GotoBottom()
	if removed := b.Delete(); removed != "" {
		t.Fatalf("removed = %q, want empty", removed)
	}
}

func TestDrainKeepsCursorValid(t *testing.T) {
	b := newBuf(t, "hello world")
	b.SetPosition(8)
	removed := b.Drain(2, 7)
	if removed != "llo w" {
		t.Fatalf("removed = %q, want %q", removed, "llo w")
	}
	if b.String() != "heorld" {
		t.Fatalf("content = %q, want %q", b.String(), "heorld")
	}
	if b.Position() != 3 {
		t.Fatalf("Position() = %d, want 3", b.Position())
	}
}

func TestCutLineRemovesBreak(t *testing.T) {
	b := newBuf(t, "one\ntwo\nthree")
	b.SetPosition(5)
	removed, at := b.CutLine()
	if removed != "two\n" || at != 4 {
		t.Fatalf("removed=%q at=%d, want %q at=4", removed, at, "two\n")
	}
	if b.String() != "one\nthree" || b.Cursor().Y != 1 || b.Cursor().X != 0 {
		t.Fatalf("content=%q cursor=%+v", b.String(), b.Cursor())
	}
}

func TestWordRightSkipsSameClassRun(t *testing.T) {
	b := newBuf(t, "foo_bar1  ++baz")
	b.WordRight()
	if b.Position() != 8 {
		t.Fatalf("Position() = %d, want 8", b.Position())
	}
	b.WordRight()
	if b.Position() != 10 {
		t.Fatalf("Position() = %d, want 10", b.Position())
	}
	b.WordRight()
	if b.Position() != 12 {
		t.Fatalf("Position() = %d, want 12", b.Position())
	}
}

func TestWordRightStopsAtLineEndThenCrosses(t *testing.T) {
	b := newBuf(t, "ab\ncd")
	b.WordRight()
	if b.Position() != 2 {
		t.Fatalf("Position() = %d, want 2 (line end)", b.Position())
	}
	b.WordRight()
	if b.Position() != 3 {
		t.Fatalf("Position() = %d, want 3 (next line start)", b.Position())
	}
}

func TestWordLeftSkipsSameClassRun(t *testing.T) {
	b := newBuf(t, "foo  bar")
	b.GotoBottom()
	b.WordLeft()
	if b.Position() != 5 {
		t.Fatalf("Position() = %d, want 5", b.Position())
	}
	b.WordLeft()
	if b.Position() != 3 {
		t.Fatalf("Position() = %d, want 3", b.Position())
	}
	b.WordLeft()
	if b.Position() != 0 {
		t.Fatalf("Position() = %d, want 0", b.Position())
	}
}

func TestFindCollectsNonOverlappingMatches(t *testing.T) {
	b := newBuf(t, "abcabc")
	n := b.Find("bc")
	if n != 2 {
		t.Fatalf("Find returned %d matches, want 2", n)
	}
	want := []Range{{1, 3}, {4, 6}}
	if !reflect.DeepEqual(b.Highlights(), want) {
		t.Fatalf("Highlights() = %v, want %v", b.Highlights(), want)
	}
}

func TestFindNonOverlapping(t *testing.T) {
	b := newBuf(t, "aaaa")
	if n := b.Find("aa"); n != 2 {
		t.Fatalf("Find returned %d matches, want 2", n)
	}
}

func TestJumpNextHighlightWraps(t *testing.T) {
	b := newBuf(t, "abcabc")
	b.Find("bc")
	if !b.JumpNextHighlight() || b.Position() != 1 {
		t.Fatalf("first jump: Position() = %d, want 1", b.Position())
	}
	if !b.JumpNextHighlight() || b.Position() != 4 {
		t.Fatalf("second jump: Position() = %d, want 4", b.Position())
	}
	if !b.JumpNextHighlight() || b.Position() != 1 {
		t.Fatalf("wrap jump: Position() = %d, want 1", b.Position())
	}
}

func TestJumpPreviousHighlightWraps(t *testing.T) {
	b := newBuf(t, "abcabc")
	b.Find("bc")
	if !b.JumpPreviousHighlight() || b.Position() != 4 {
		t.Fatalf("wrap jump: Position() = %d, want 4", b.Position())
	}
	if !b.JumpPreviousHighlight() || b.Position() != 1 {
		t.Fatalf("second jump: Position() = %d, want 1", b.Position())
	}
}

func TestJumpWithNoMatches(t *testing.T) {
	b := newBuf(t, "abc")
	if b.JumpNextHighlight() || b.JumpPreviousHighlight() {
		t.Fatal("jumps with no matches should return false")
	}
}

func TestSetPositionSnapsMidCluster(t *testing.T) {
	b := newBuf(t, "a☃b")
	b.SetPosition(2) // inside the snowman
	if b.Position() != 1 {
		t.Fatalf("Position() = %d, want 1", b.Position())
	}
}

func TestSaveAndDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	b, err := FromFile(path, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	dirty, err := b.Dirty()
	if err != nil || dirty {
		t.Fatalf("fresh buffer dirty = %v, err = %v", dirty, err)
	}
	b.GotoBottom()
	b.InsertString("!")
	dirty, _ = b.Dirty()
	if !dirty {
		t.Fatal("modified buffer should be dirty")
	}
	if err := b.Save(); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hello!" {
		t.Fatalf("file = %q, want %q", data, "hello!")
	}
	dirty, _ = b.Dirty()
	if dirty {
		t.Fatal("saved buffer should be clean")
	}
}

func TestSaveReadOnly(t *testing.T) {
	b := New(4)
	b.readonly = true
	b.path = "x"
	if err := b.Save(); err != ErrReadOnly {
		t.Fatalf("Save() = %v, want ErrReadOnly", err)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	b := New(4)
	if err := b.Save(); err != ErrNoPath {
		t.Fatalf("Save() = %v, want ErrNoPath", err)
	}
}

func TestDirtyUnnamedBuffer(t *testing.T) {
	b := New(4)
	if dirty, _ := b.Dirty(); dirty {
		t.Fatal("empty unnamed buffer should be clean")
	}
	b.InsertString("x")
	if dirty, _ := b.Dirty(); !dirty {
		t.Fatal("non-empty unnamed buffer should be dirty")
	}
}

func TestSetViewportCursorPos(t *testing.T) {
	b := newBuf(t, "one\ntwo\nthree\nfour")
	b.SetTop(1)
	b.SetViewportCursorPos(2, 1)
	if b.Cursor().Y != 2 || b.Cursor().X != 2 {
		t.Fatalf("cursor = %+v, want {2 2}", b.Cursor())
	}
	if b.Position() != 10 {
		t.Fatalf("Position() = %d, want 10", b.Position())
	}
}
