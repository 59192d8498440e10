package syntax

import (
	"context"
	"strings"

	"github.com/fennwick/scribe/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// TreeProvider highlights through a tree-sitter grammar. The whole document
// is parsed once per edit generation; line states are just (line, generation)
// pairs, so resuming from a cached state is a map lookup rather than a
// re-parse.
type TreeProvider struct {
	parser *sitter.Parser
	query  *sitter.Query

	src    []byte
	gen    uint64
	parsed bool
	tree   *sitter.Tree
	lines  map[int][]Span
}

type treeState struct {
	line int
	gen  uint64
}

func (s treeState) Clone() State { return s }

// NewGoProvider creates a tree-sitter provider for Go sources.
func NewGoProvider() (*TreeProvider, error) {
	lang := golang.GetLanguage()
	query, err := sitter.NewQuery([]byte(goHighlightQuery), lang)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &TreeProvider{
		parser: parser,
		query:  query,
		lines:  make(map[int][]Span),
	}, nil
}

// SetSource replaces the document content. Parsing is deferred until the
// next Next call so a burst of edits costs one parse.
func (p *TreeProvider) SetSource(src []byte) {
	p.src = append(p.src[:0], src...)
	p.gen++
	p.parsed = false
}

func (p *TreeProvider) Initial() State {
	return treeState{line: 0, gen: p.gen}
}

func (p *TreeProvider) Next(line []byte, st State) ([]Span, State) {
	ts, ok := st.(treeState)
	if !ok {
		ts = treeState{}
	}
	// A snapshot taken before the last edit still names a valid resume line:
	// the cache only keeps snapshots above the invalidation bound, and lines
	// above the bound are unchanged.
	ts.gen = p.gen

	p.ensureParsed()
	return p.lines[ts.line], treeState{line: ts.line + 1, gen: p.gen}
}

func (p *TreeProvider) ensureParsed() {
	if p.parsed {
		return
	}
	p.parsed = true
	p.lines = make(map[int][]Span)

	// SetSource replaces the document wholesale without registering edits,
	// so the previous tree must not be fed back in: tree-sitter would reuse
	// nodes from the pre-edit content. Parse from scratch each generation.
	tree, err := p.parser.ParseCtx(context.Background(), nil, p.src)
	if err != nil {
		logger.Errorf("tree-sitter parse failed: %v", err)
		return
	}
	if p.tree != nil {
		p.tree.Close()
	}
	p.tree = tree

	lineLengths := lineByteLengths(p.src)

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(p.query, tree.RootNode())

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, p.src)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			style := captureToStyle(p.query.CaptureNameForId(capture.Index))
			node := capture.Node
			start := node.StartPoint()
			end := node.EndPoint()

			// Split multi-line captures into one span per line.
			for row := int(start.Row); row <= int(end.Row); row++ {
				startCol := 0
				endCol := 0
				if row < len(lineLengths) {
					endCol = lineLengths[row]
				}
				if row == int(start.Row) {
					startCol = int(start.Column)
				}
				if row == int(end.Row) {
					endCol = int(end.Column)
				}
				if endCol <= startCol {
					continue
				}
				p.lines[row] = append(p.lines[row], Span{Start: startCol, End: endCol, Style: style})
			}
		}
	}
}

// lineByteLengths returns, per line, the byte length excluding the line break.
func lineByteLengths(src []byte) []int {
	var lengths []int
	start := 0
	for i, b := range src {
		if b == '\n' {
			lengths = append(lengths, i-start)
			start = i + 1
		}
	}
	lengths = append(lengths, len(src)-start)
	return lengths
}

// captureToStyle maps a tree-sitter capture name like "keyword.control"
// to a theme style name.
func captureToStyle(name string) string {
	name = strings.TrimPrefix(name, "@")
	if dot := strings.Index(name, "."); dot != -1 {
		name = name[:dot]
	}
	return name
}

const goHighlightQuery = `
((comment) @comment)
((interpreted_string_literal) @string)
((raw_string_literal) @string)
((rune_literal) @string)
((escape_sequence) @string)
((int_literal) @number)
((float_literal) @number)
((imaginary_literal) @number)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch"
  "type" "var"
] @keyword
((nil) @constant)
((true) @constant)
((false) @constant)
((iota) @constant)
((type_identifier) @type)
((package_identifier) @type)
((function_declaration name: (identifier) @function))
((method_declaration name: (field_identifier) @function))
((call_expression function: (identifier) @function))
((call_expression function: (selector_expression field: (field_identifier) @function)))
`
