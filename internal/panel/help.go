package panel

import "github.com/fennwick/scribe/internal/command"

// Help shows the key bindings. Any key dismisses it.
type Help struct{}

// NewHelp creates the help panel.
func NewHelp() *Help { return &Help{} }

func (h *Help) Title() string { return "Help" }

func (h *Help) Lines() []string {
	return []string{
		"Ctrl-S  save            Ctrl-Q  quit",
		"Ctrl-Z  undo            Ctrl-Y  redo",
		"Ctrl-F  find            F3      next match",
		"Ctrl-K  cut line        Ctrl-V  paste",
		"Ctrl-W  show whitespace Ctrl-G  this help",
		"Alt-←/→ word motion     Esc     close panel",
	}
}

func (h *Help) Update(cmd command.Command) (command.Command, []command.Command) {
	switch cmd.Kind {
	case command.KindClosePanel:
		return cmd, nil
	default:
		return none, closePanel()
	}
}
