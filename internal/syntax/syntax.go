// Package syntax provides line-resumable highlighter providers.
//
// A Provider consumes one line at a time and threads an opaque State between
// lines. States are values: cloning one and resuming from it must yield the
// same spans as scanning straight through, which is what lets the highlight
// cache snapshot states at sampled lines and resume mid-document.
package syntax

// Span is a styled byte range within a single line. Start and End are byte
// offsets relative to the line start; Style is a theme style name.
type Span struct {
	Start int
	End   int
	Style string
}

// State is a resumable point in a highlight scan. Implementations must be
// immutable once handed out; Clone returns an independent copy.
type State interface {
	Clone() State
}

// Provider highlights a document one line at a time.
type Provider interface {
	// Initial returns the state for the start of the document.
	Initial() State
	// Next scans one line (with its line ending, if any) and returns its
	// styled spans along with the state for the following line.
	Next(line []byte, st State) ([]Span, State)
}

// SourceSetter is implemented by providers that need the full document,
// such as the tree-sitter provider. The controller feeds it the buffer
// content whenever an edit lands.
type SourceSetter interface {
	SetSource(src []byte)
}
