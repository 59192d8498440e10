// Package panel implements the modal utility panels drawn over the buffer:
// find, save-as, confirm and help. An open panel sees every command first;
// it either consumes it (returning KindNone) or passes it through to the
// normal dispatch path, optionally queueing follow-up commands.
package panel

import "github.com/fennwick/scribe/internal/command"

// Panel is one modal utility window.
type Panel interface {
	Title() string
	Lines() []string
	Update(cmd command.Command) (command.Command, []command.Command)
}

var none = command.Command{Kind: command.KindNone}

func closePanel() []command.Command {
	return []command.Command{{Kind: command.KindClosePanel}}
}
