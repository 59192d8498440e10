package panel

import "github.com/fennwick/scribe/internal/command"

// Find is the incremental search prompt. Every keystroke re-runs the query,
// so matches and the cursor follow the input as it is typed.
type Find struct {
	query []rune
}

// NewFind creates an empty find prompt.
func NewFind() *Find { return &Find{} }

func (f *Find) Title() string { return "Find" }

func (f *Find) Lines() []string {
	return []string{"/" + string(f.query)}
}

func (f *Find) Update(cmd command.Command) (command.Command, []command.Command) {
	switch cmd.Kind {
	case command.KindInsertRune:
		if cmd.Rune == '\n' {
			// Accept: matches stay highlighted, the panel goes away.
			return none, closePanel()
		}
		if cmd.Rune == '\t' {
			return none, nil
		}
		f.query = append(f.query, cmd.Rune)
		return none, f.search()
	case command.KindBackspace:
		if len(f.query) == 0 {
			return none, nil
		}
		f.query = f.query[:len(f.query)-1]
		return none, f.search()
	case command.KindInsertText:
		f.query = append(f.query, []rune(cmd.Text)...)
		return none, f.search()
	case command.KindDelete, command.KindCutLine, command.KindUndo, command.KindRedo:
		return none, nil
	default:
		// Motion, next/prev match and panel control pass through.
		return cmd, nil
	}
}

func (f *Find) search() []command.Command {
	return []command.Command{{Kind: command.KindFind, Text: string(f.query)}}
}
