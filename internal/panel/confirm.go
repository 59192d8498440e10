package panel

import (
	"fmt"
	"sort"

	"github.com/fennwick/scribe/internal/command"
)

// Confirm asks a single-key question, e.g. quitting with unsaved changes.
type Confirm struct {
	prompt  string
	choices map[rune]command.Command
}

// NewConfirm creates a prompt whose mapped runes trigger their command and
// close the panel. Any unmapped key dismisses the prompt.
func NewConfirm(prompt string, choices map[rune]command.Command) *Confirm {
	return &Confirm{prompt: prompt, choices: choices}
}

func (c *Confirm) Title() string { return "Confirm" }

func (c *Confirm) Lines() []string {
	keys := make([]rune, 0, len(c.choices))
	for r := range c.choices {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	hint := ""
	for i, r := range keys {
		if i > 0 {
			hint += "/"
		}
		hint += string(r)
	}
	return []string{fmt.Sprintf("%s [%s]", c.prompt, hint)}
}

func (c *Confirm) Update(cmd command.Command) (command.Command, []command.Command) {
	switch cmd.Kind {
	case command.KindInsertRune:
		if chosen, ok := c.choices[cmd.Rune]; ok {
			// Close first so the chosen command is dispatched panel-free.
			return none, append(closePanel(), chosen)
		}
		return none, closePanel()
	case command.KindClosePanel, command.KindForceQuit:
		return cmd, nil
	default:
		// The prompt is modal; everything else is swallowed.
		return none, nil
	}
}
