// Package clipboard moves text between the editor and the system clipboard,
// with an in-process register as fallback for headless environments.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/fennwick/scribe/internal/logger"
)

// Clipboard prefers the system clipboard when enabled and available; the
// internal register always mirrors the last write so copy/paste keeps
// working when the system clipboard is not reachable.
type Clipboard struct {
	system   bool
	register string
}

// New creates a clipboard. When system is false only the internal register
// is used.
func New(system bool) *Clipboard {
	return &Clipboard{system: system}
}

// Write stores text on the clipboard.
func (c *Clipboard) Write(text string) {
	c.register = text
	if !c.system {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Debugf("clipboard: system write failed, using register: %v", err)
	}
}

// Read returns the clipboard content. The system clipboard wins when it is
// reachable and non-empty, so text copied in other applications pastes here.
func (c *Clipboard) Read() string {
	if c.system {
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			return text
		}
	}
	return c.register
}
