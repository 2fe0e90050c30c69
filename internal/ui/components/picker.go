package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/ui/theme"
)

// Picker cycles through a fixed list with left/right. Index -1 shows the
// placeholder and means nothing is picked.
type Picker struct {
	Placeholder string
	Items       []string
	Index       int
	Focused     bool
}

// NewPicker creates a picker with nothing picked.
func NewPicker(placeholder string, items []string) Picker {
	return Picker{Placeholder: placeholder, Items: items, Index: -1}
}

// Value returns the picked item, or "" when nothing is picked.
func (p Picker) Value() string {
	if p.Index < 0 || p.Index >= len(p.Items) {
		return ""
	}
	return p.Items[p.Index]
}

// Select picks v if it is in the list.
func (p *Picker) Select(v string) {
	for i, it := range p.Items {
		if it == v {
			p.Index = i
			return
		}
	}
	p.Index = -1
}

// Update handles left/right when focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused || len(p.Items) == 0 {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "right", "l":
		p.Index++
		if p.Index >= len(p.Items) {
			p.Index = 0
		}
	case "left", "h":
		p.Index--
		if p.Index < 0 {
			p.Index = len(p.Items) - 1
		}
	}
	return p, nil
}

// View renders the current choice between arrows.
func (p Picker) View() string {
	label := p.Value()
	style := theme.Unselected
	if label == "" {
		label = p.Placeholder
		style = theme.Hint
	}
	if p.Focused {
		style = theme.Selected
	}

	arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
	return arrow.Render("◂ ") + style.Render(label) + arrow.Render(" ▸")
}
