package highlight

import (
	"github.com/fennwick/scribe/internal/syntax"
)

// StyledSpan is a run of display text with one style name.
type StyledSpan struct {
	Text  string
	Style string
}

// Line is a fully styled display line.
type Line []StyledSpan

// LineSource is the document view the renderer reads lines from.
type LineSource interface {
	LineCount() int
	LineWithEnding(y int) []byte
	TabWidth() int
}

// ParseWindow renders lines [from, from+limit] inclusive. It resumes from
// the closest cached state, replays the lines between the snapshot and the
// window while refreshing snapshots, and converts the window's tokens to
// styled spans. Out-of-range lines are simply absent from the result.
func ParseWindow(src LineSource, p syntax.Provider, c *Cache, from, limit int, showWhitespace bool) []Line {
	count := src.LineCount()
	if from < 0 {
		from = 0
	}
	if from >= count {
		return nil
	}
	last := from + limit
	if last >= count {
		last = count - 1
	}

	start, st := c.ClosestState(from)
	if st == nil {
		start = 0
		st = p.Initial()
	}

	out := make([]Line, 0, last-from+1)
	for y := start; y <= last; y++ {
		c.put(y, st)
		raw := src.LineWithEnding(y)
		spans, next := p.Next(raw, st)
		if y >= from {
			out = append(out, renderLine(raw, spans, src.TabWidth(), showWhitespace))
		}
		st = next
	}
	return out
}

// renderLine converts token spans (byte offsets into the raw line) into
// display spans, filling unstyled gaps and substituting whitespace.
func renderLine(raw []byte, spans []syntax.Span, tabWidth int, show bool) Line {
	text := raw
	ending := ""
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
		ending = "\n"
		if n := len(text); n > 0 && text[n-1] == '\r' {
			text = text[:n-1]
			ending = "\r\n"
		}
	}

	var line Line
	at := 0
	for _, s := range spans {
		if s.Start >= len(text) {
			break
		}
		end := s.End
		if end > len(text) {
			end = len(text)
		}
		if s.Start > at {
			line = appendSpan(line, string(text[at:s.Start]), "", tabWidth, show)
		}
		line = appendSpan(line, string(text[s.Start:end]), s.Style, tabWidth, show)
		at = end
	}
	if at < len(text) {
		line = appendSpan(line, string(text[at:]), "", tabWidth, show)
	}
	if show && ending != "" {
		line = append(line, StyledSpan{Text: decorateEnding(ending), Style: StyleWhitespace})
	}
	return line
}

// appendSpan adds one styled segment, splitting out whitespace markers into
// their own dim spans when visualization is on.
func appendSpan(line Line, text, style string, tabWidth int, show bool) Line {
	if text == "" {
		return line
	}
	if !show {
		return append(line, StyledSpan{Text: expandTabs(text, tabWidth), Style: style})
	}
	run := ""
	flush := func() {
		if run != "" {
			line = append(line, StyledSpan{Text: run, Style: style})
			run = ""
		}
	}
	for _, r := range text {
		if marker := decorateRune(r, tabWidth); marker != "" {
			flush()
			line = append(line, StyledSpan{Text: marker, Style: StyleWhitespace})
			continue
		}
		run += string(r)
	}
	flush()
	return line
}
