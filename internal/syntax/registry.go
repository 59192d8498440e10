package syntax

import (
	"path/filepath"
	"strings"

	"github.com/fennwick/scribe/internal/logger"
)

// Resolve picks a provider for a file, by extension first, then by the first
// line of the document. Unknown files get a plain-text scanner (no spans).
func Resolve(path string, firstLine []byte) Provider {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".go" {
		p, err := NewGoProvider()
		if err == nil {
			return p
		}
		logger.Warnf("syntax: tree-sitter unavailable for %s, falling back to scanner: %v", path, err)
	}

	return NewScanner(definitionFor(ext, firstLine))
}
