package highlight

import "strings"

// Whitespace markers shown when visualization is on.
const (
	markerTab   = "↦"
	markerSpace = "·"
	markerLF    = "¶"
	markerCR    = "⁋"

	// StyleWhitespace is the theme style name for whitespace markers.
	StyleWhitespace = "whitespace"
)

// decorateRune returns the visible marker for a whitespace rune, padded to
// its display width, or "" for anything else.
func decorateRune(r rune, tabWidth int) string {
	switch r {
	case '\t':
		return markerTab + strings.Repeat(" ", tabWidth-1)
	case ' ':
		return markerSpace
	case '\r':
		return markerCR
	default:
		return ""
	}
}

// decorateEnding returns the marker string for a line break.
func decorateEnding(ending string) string {
	if ending == "\r\n" {
		return markerCR + markerLF
	}
	return markerLF
}

// expandTabs replaces tabs with spaces up to the fixed stop width, for
// rendering with visualization off.
func expandTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}
