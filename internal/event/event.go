// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	TypeBufferModified // Fired after any content mutation
	TypeBufferSaved    // Fired after a successful save
	TypeCursorMoved    // Fired when the cursor position changes
	TypeFindUpdated    // Fired when the set of find matches changes
	TypeAppQuit        // Fired just before termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the conservative invalidation bound: every
// highlight cache entry at or below FromLine must be discarded.
type BufferModifiedData struct {
	FromLine int
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	Path string
}

// CursorMovedData contains the new visual cursor position.
type CursorMovedData struct {
	X, Y int
}

// FindUpdatedData contains the number of matches for the last query.
type FindUpdatedData struct {
	Matches int
}
