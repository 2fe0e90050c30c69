package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/ui/theme"
)

// NoChoice marks a Likert item with nothing highlighted or chosen.
const NoChoice = -1

// Likert is a single-item rating selector. It starts with no option
// highlighted so an answer is never implied.
type Likert struct {
	Prompt      string
	Options     []string
	Highlighted int
	Chosen      int
}

// NewLikert creates a selector. chosen restores a previous answer or is NoChoice.
func NewLikert(prompt string, options []string, chosen int) Likert {
	return Likert{
		Prompt:      prompt,
		Options:     options,
		Highlighted: chosen,
		Chosen:      chosen,
	}
}

// Update handles digit keys, up/down highlighting and enter.
// picked reports whether this message chose an option.
func (l Likert) Update(msg tea.Msg) (Likert, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Highlighted > 0 {
			l.Highlighted--
		} else if l.Highlighted == NoChoice {
			l.Highlighted = len(l.Options) - 1
		}
	case "down", "j":
		if l.Highlighted < len(l.Options)-1 {
			l.Highlighted++
		}
	case "enter", "space":
		if l.Highlighted != NoChoice {
			l.Chosen = l.Highlighted
			return l, true
		}
	default:
		if len(key) == 1 && key[0] >= '0' && int(key[0]-'0') < len(l.Options) {
			l.Highlighted = int(key[0] - '0')
			l.Chosen = l.Highlighted
			return l, true
		}
	}
	return l, false
}

// View renders the prompt and the options with their scale values.
func (l Likert) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(l.Prompt))
	b.WriteString("\n\n")

	for i, opt := range l.Options {
		prefix := "   "
		if i == l.Highlighted {
			prefix = " ▸ "
		}
		mark := "○"
		if i == l.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d  %s", prefix, mark, i, opt)

		switch {
		case i == l.Highlighted:
			b.WriteString(theme.Selected.Render(line))
		case i == l.Chosen:
			b.WriteString(theme.Answered.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
