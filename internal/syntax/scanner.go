package syntax

import (
	"bytes"
	"strings"
)

// Definition describes the lexical surface of a language well enough for
// line-by-line highlighting: comments, strings and keywords.
type Definition struct {
	Name       string
	Extensions []string
	// FirstLine matches against the first line of the document when the
	// extension is unknown (shebangs, mostly).
	FirstLine string

	LineComment       string
	BlockCommentOpen  string
	BlockCommentClose string
	Quotes            []byte // single-line string delimiters
	RawQuote          byte   // multi-line string delimiter, 0 if none
	Keywords          []string

	keywordSet map[string]struct{}
}

func (d *Definition) keyword(word []byte) bool {
	if d.keywordSet == nil {
		d.keywordSet = make(map[string]struct{}, len(d.Keywords))
		for _, k := range d.Keywords {
			d.keywordSet[k] = struct{}{}
		}
	}
	_, ok := d.keywordSet[string(word)]
	return ok
}

// scanState carries the only context that crosses line boundaries:
// an unterminated block comment or raw string.
type scanState struct {
	inBlockComment bool
	inRawString    bool
}

func (s scanState) Clone() State { return s }

// Scanner is a Provider driven by a Definition. It covers comments, strings,
// numbers and keywords; identifiers and everything else keep the default style.
type Scanner struct {
	def *Definition
}

// NewScanner creates a scanner provider for the given language definition.
// A nil definition produces a provider that emits no spans (plain text).
func NewScanner(def *Definition) *Scanner {
	return &Scanner{def: def}
}

func (s *Scanner) Initial() State {
	return scanState{}
}

func (s *Scanner) Next(line []byte, st State) ([]Span, State) {
	state, _ := st.(scanState)
	if s.def == nil {
		return nil, state
	}

	// Tokenize without the line ending; spans never cover the break.
	text := trimLineEnding(line)
	var spans []Span
	i := 0

	if state.inBlockComment {
		end := bytes.Index(text, []byte(s.def.BlockCommentClose))
		if end < 0 {
			return []Span{{Start: 0, End: len(text), Style: "comment"}}, state
		}
		i = end + len(s.def.BlockCommentClose)
		spans = append(spans, Span{Start: 0, End: i, Style: "comment"})
		state.inBlockComment = false
	} else if state.inRawString {
		end := bytes.IndexByte(text, s.def.RawQuote)
		if end < 0 {
			return []Span{{Start: 0, End: len(text), Style: "string"}}, state
		}
		i = end + 1
		spans = append(spans, Span{Start: 0, End: i, Style: "string"})
		state.inRawString = false
	}

	for i < len(text) {
		c := text[i]

		if s.def.BlockCommentOpen != "" && bytes.HasPrefix(text[i:], []byte(s.def.BlockCommentOpen)) {
			end := bytes.Index(text[i+len(s.def.BlockCommentOpen):], []byte(s.def.BlockCommentClose))
			if end < 0 {
				spans = append(spans, Span{Start: i, End: len(text), Style: "comment"})
				state.inBlockComment = true
				return spans, state
			}
			stop := i + len(s.def.BlockCommentOpen) + end + len(s.def.BlockCommentClose)
			spans = append(spans, Span{Start: i, End: stop, Style: "comment"})
			i = stop
			continue
		}

		if s.def.LineComment != "" && bytes.HasPrefix(text[i:], []byte(s.def.LineComment)) {
			spans = append(spans, Span{Start: i, End: len(text), Style: "comment"})
			break
		}

		if s.def.RawQuote != 0 && c == s.def.RawQuote {
			end := bytes.IndexByte(text[i+1:], s.def.RawQuote)
			if end < 0 {
				spans = append(spans, Span{Start: i, End: len(text), Style: "string"})
				state.inRawString = true
				return spans, state
			}
			stop := i + 1 + end + 1
			spans = append(spans, Span{Start: i, End: stop, Style: "string"})
			i = stop
			continue
		}

		if isQuote(s.def.Quotes, c) {
			stop := scanString(text, i, c)
			spans = append(spans, Span{Start: i, End: stop, Style: "string"})
			i = stop
			continue
		}

		if isWordByte(c) {
			start := i
			for i < len(text) && isWordByte(text[i]) {
				i++
			}
			word := text[start:i]
			switch {
			case c >= '0' && c <= '9':
				spans = append(spans, Span{Start: start, End: i, Style: "number"})
			case s.def.keyword(word):
				spans = append(spans, Span{Start: start, End: i, Style: "keyword"})
			}
			continue
		}

		i++
	}

	return spans, state
}

// scanString returns the offset one past the closing quote, honoring
// backslash escapes; an unterminated string runs to the end of the line.
func scanString(text []byte, start int, quote byte) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(text)
}

func isQuote(quotes []byte, c byte) bool {
	return bytes.IndexByte(quotes, c) >= 0
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80 // multi-byte sequences stay inside the word
}

func trimLineEnding(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}

// --- Built-in definitions ---

var definitions = []*Definition{
	{
		Name:              "go",
		Extensions:        []string{".go"},
		LineComment:       "//",
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Quotes:            []byte{'"', '\''},
		RawQuote:          '`',
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var",
		},
	},
	{
		Name:              "c",
		Extensions:        []string{".c", ".h", ".cpp", ".hpp", ".cc"},
		LineComment:       "//",
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Quotes:            []byte{'"', '\''},
		Keywords: []string{
			"auto", "break", "case", "char", "const", "continue", "default",
			"do", "double", "else", "enum", "extern", "float", "for", "goto",
			"if", "int", "long", "register", "return", "short", "signed",
			"sizeof", "static", "struct", "switch", "typedef", "union",
			"unsigned", "void", "volatile", "while",
		},
	},
	{
		Name:        "python",
		Extensions:  []string{".py"},
		FirstLine:   "python",
		LineComment: "#",
		Quotes:      []byte{'"', '\''},
		Keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async", "await",
			"break", "class", "continue", "def", "del", "elif", "else",
			"except", "finally", "for", "from", "global", "if", "import",
			"in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise",
			"return", "try", "while", "with", "yield",
		},
	},
	{
		Name:        "shell",
		Extensions:  []string{".sh", ".bash"},
		FirstLine:   "sh",
		LineComment: "#",
		Quotes:      []byte{'"', '\''},
		Keywords: []string{
			"if", "then", "else", "elif", "fi", "case", "esac", "for",
			"while", "until", "do", "done", "in", "function", "return",
			"exit", "break", "continue", "local", "export",
		},
	},
	{
		Name:              "rust",
		Extensions:        []string{".rs"},
		LineComment:       "//",
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		Quotes:            []byte{'"'},
		Keywords: []string{
			"as", "async", "await", "break", "const", "continue", "crate",
			"dyn", "else", "enum", "extern", "fn", "for", "if", "impl", "in",
			"let", "loop", "match", "mod", "move", "mut", "pub", "ref",
			"return", "self", "static", "struct", "trait", "type", "unsafe",
			"use", "where", "while",
		},
	},
}

// definitionFor resolves a definition by file extension, then by first line.
func definitionFor(ext string, firstLine []byte) *Definition {
	for _, d := range definitions {
		for _, e := range d.Extensions {
			if e == ext {
				return d
			}
		}
	}
	if len(firstLine) > 0 && bytes.HasPrefix(firstLine, []byte("#!")) {
		shebang := strings.ToLower(string(trimLineEnding(firstLine)))
		for _, d := range definitions {
			if d.FirstLine != "" && strings.Contains(shebang, d.FirstLine) {
				return d
			}
		}
	}
	return nil
}
