// Package theme maps style names to tcell styles. Syntax providers emit
// dotted capture names ("keyword.control", "string.escape"); lookup falls
// back from the full name to its base segment, then to "Default".
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/fennwick/scribe/internal/logger"
)

// Theme is a named palette of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name with dotted fallback.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': style '%s' and 'Default' not found, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// InkwellDark is the built-in theme.
var InkwellDark Theme

func init() {
	background := tcell.NewHexColor(0x2a2f38) // status bar and panel background
	foreground := tcell.NewHexColor(0xc5cdd9) // default text
	comment := tcell.NewHexColor(0x5c6370)    // comments, punctuation, whitespace markers
	orange := tcell.NewHexColor(0xd19a66)     // numbers, constants
	yellow := tcell.NewHexColor(0xe5c07b)     // functions
	green := tcell.NewHexColor(0x98c379)      // strings
	cyan := tcell.NewHexColor(0x56b6c2)       // types, builtins
	blue := tcell.NewHexColor(0x61afef)       // keywords
	magenta := tcell.NewHexColor(0xc678dd)    // escapes, specials
	red := tcell.NewHexColor(0xe06c75)        // errors

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	InkwellDark = Theme{
		Name:   "Inkwell Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// UI elements.
			"Default":         base,
			"SearchHighlight": tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			"whitespace":      base.Foreground(comment).Dim(true),

			"StatusBar":         bar,
			"StatusBarModified": bar.Foreground(yellow),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarError":    bar.Foreground(red).Bold(true),
			"StatusBarSuccess":  bar.Foreground(green).Bold(true),

			"Panel":      bar,
			"PanelTitle": bar.Foreground(blue).Bold(true),

			// Syntax.
			"keyword":  base.Foreground(blue).Bold(true),
			"string":   base.Foreground(green),
			"comment":  base.Foreground(comment).Italic(true),
			"number":   base.Foreground(orange),
			"type":     base.Foreground(cyan),
			"function": base.Foreground(yellow),
			"constant": base.Foreground(orange),
			"variable": base.Foreground(foreground),
			"operator": base.Foreground(foreground),
			"label":    base.Foreground(foreground),

			"string.escape":    base.Foreground(magenta),
			"string.special":   base.Foreground(magenta),
			"type.builtin":     base.Foreground(cyan).Bold(true),
			"function.builtin": base.Foreground(cyan).Italic(true),
			"boolean":          base.Foreground(orange),
			"attribute":        base.Foreground(magenta),

			"punctuation":           base.Foreground(comment),
			"punctuation.bracket":   base.Foreground(comment),
			"punctuation.delimiter": base.Foreground(comment),

			"escape":      base.Foreground(magenta),
			"builtin":     base.Foreground(cyan),
			"conditional": base.Foreground(blue).Bold(true),
			"repeat":      base.Foreground(blue).Bold(true),
		},
	}

	CurrentTheme = &InkwellDark
}

// CurrentTheme is the active theme.
var CurrentTheme *Theme

// GetCurrentTheme returns the active theme, never nil.
func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &InkwellDark
	}
	return CurrentTheme
}
