package identity

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screen"
	"github.com/abhisek/dass21/internal/screens/draft"
	"github.com/abhisek/dass21/internal/screens/form"
	"github.com/abhisek/dass21/internal/ui/components"
	"github.com/abhisek/dass21/internal/ui/layout"
	"github.com/abhisek/dass21/internal/ui/theme"
)

// field is one row of the identity form: a text input or the campus picker.
type field struct {
	id     questionnaire.IdentityField
	input  components.TextInput
	picker *components.Picker
}

// IdentityScreen collects the respondent details a bank asks for.
type IdentityScreen struct {
	draft     *draft.Draft
	submitter draft.Submitter
	fields    []field
	focus     int
}

var _ screen.Screen = (*IdentityScreen)(nil)
var _ screen.KeyHintProvider = (*IdentityScreen)(nil)

// New creates the identity form for d, prefilled from d.Identity.
func New(d *draft.Draft, submitter draft.Submitter) *IdentityScreen {
	cfg := d.Variant().Identity
	s := &IdentityScreen{draft: d, submitter: submitter}

	for _, f := range cfg.Fields {
		fl := field{id: f}
		switch f {
		case questionnaire.FieldCampus:
			p := components.NewPicker(cfg.CampusPrompt, cfg.Campuses)
			p.Select(d.Identity.Campus)
			fl.picker = &p
		default:
			fl.input = components.NewTextInput(cfg.Label(f), 64)
			if f == questionnaire.FieldPhone {
				fl.input.Accept = components.PhoneChars
			}
			fl.input.SetValue(d.Identity.Get(f))
		}
		s.fields = append(s.fields, fl)
	}
	return s
}

func (s *IdentityScreen) Init() tea.Cmd {
	target := 0
	if s.draft.Focus != "" {
		for i, f := range s.fields {
			if f.id == s.draft.Focus {
				target = i
				if f.picker == nil {
					s.fields[i].input.MarkInvalid()
				}
			}
		}
	}
	return s.setFocus(target)
}

func (s *IdentityScreen) Title() string {
	return s.draft.Variant().Title
}

func (s *IdentityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Campus"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

// setFocus moves focus to field i.
func (s *IdentityScreen) setFocus(i int) tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.fields) {
		i = len(s.fields) - 1
	}
	s.focus = i

	var cmd tea.Cmd
	for j := range s.fields {
		f := &s.fields[j]
		if f.picker != nil {
			f.picker.Focused = j == i
			continue
		}
		if j == i {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	return cmd
}

// collect copies the form values into the draft.
func (s *IdentityScreen) collect() {
	var id questionnaire.Identity
	for _, f := range s.fields {
		var v string
		if f.picker != nil {
			v = f.picker.Value()
		} else {
			v = strings.TrimSpace(f.input.Value())
		}
		switch f.id {
		case questionnaire.FieldName:
			id.Name = v
		case questionnaire.FieldStudentID:
			id.StudentID = v
		case questionnaire.FieldCampus:
			id.Campus = v
		case questionnaire.FieldPhone:
			id.Phone = v
		}
	}
	s.draft.Identity = id
}

// proceed checks identity requirements and opens the questionnaire.
func (s *IdentityScreen) proceed() tea.Cmd {
	s.collect()
	if ve := s.draft.CheckIdentity(); ve != nil {
		s.draft.Notice = ve.Localize(s.draft.Variant())
		s.draft.Focus = ve.Field
		for i, f := range s.fields {
			if f.id == ve.Field {
				if f.picker == nil {
					s.fields[i].input.MarkInvalid()
				}
				return s.setFocus(i)
			}
		}
		return nil
	}

	s.draft.Notice = ""
	s.draft.Focus = ""
	next := form.New(s.draft, s.submitter)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *IdentityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if s.focus < len(s.fields)-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.proceed()
		}
	}

	if len(s.fields) == 0 {
		return s, nil
	}
	f := &s.fields[s.focus]
	if f.picker != nil {
		p, cmd := f.picker.Update(msg)
		*f.picker = p
		return s, cmd
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return s, cmd
}

func (s *IdentityScreen) View(width, height int) string {
	cfg := s.draft.Variant().Identity
	labelWidth := 0
	for _, f := range s.fields {
		if w := lipgloss.Width(cfg.Label(f.id)); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for i, f := range s.fields {
		label := cfg.Label(f.id)
		if cfg.IsRequired(f.id) {
			label += " *"
		}
		style := theme.Unselected
		if i == s.focus {
			style = theme.Selected
		}
		b.WriteString(style.Width(labelWidth + 3).Render(label))
		b.WriteString("  ")
		if f.picker != nil {
			b.WriteString(f.picker.View())
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n\n")
	}

	if s.draft.Notice != "" {
		b.WriteString(theme.Notice.Render(s.draft.Notice))
		b.WriteString("\n")
	}

	cw := width - 8
	if cw > 80 {
		cw = 80
	}
	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
