package panel

import "github.com/fennwick/scribe/internal/command"

// SaveAs prompts for a target path.
type SaveAs struct {
	path []rune
}

// NewSaveAs creates a save-as prompt seeded with the current path.
func NewSaveAs(current string) *SaveAs {
	return &SaveAs{path: []rune(current)}
}

func (s *SaveAs) Title() string { return "Save As" }

func (s *SaveAs) Lines() []string {
	return []string{"Path: " + string(s.path)}
}

func (s *SaveAs) Update(cmd command.Command) (command.Command, []command.Command) {
	switch cmd.Kind {
	case command.KindInsertRune:
		if cmd.Rune == '\n' {
			if len(s.path) == 0 {
				return none, nil
			}
			return none, append(closePanel(),
				command.Command{Kind: command.KindSaveAs, Text: string(s.path)})
		}
		if cmd.Rune == '\t' {
			return none, nil
		}
		s.path = append(s.path, cmd.Rune)
		return none, nil
	case command.KindBackspace:
		if len(s.path) > 0 {
			s.path = s.path[:len(s.path)-1]
		}
		return none, nil
	case command.KindInsertText:
		s.path = append(s.path, []rune(cmd.Text)...)
		return none, nil
	case command.KindClosePanel:
		return cmd, nil
	default:
		return none, nil
	}
}
