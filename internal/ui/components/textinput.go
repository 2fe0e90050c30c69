package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the form styling.
type TextInput struct {
	Model textinput.Model
	// Accept filters typed characters; nil accepts everything.
	Accept  func(r rune) bool
	marked  bool
	invalid bool
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti}
}

// PhoneChars accepts the characters of a phone number.
func PhoneChars(r rune) bool {
	return (r >= '0' && r <= '9') || r == '+' || r == '-' || r == ' '
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Accept != nil {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if !t.Accept(r) {
					return t, nil
				}
			}
		}
	}

	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.marked = false
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.marked && t.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// MarkInvalid flags the input until the next edit.
func (t *TextInput) MarkInvalid() {
	t.marked = true
	t.invalid = true
}
