package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var options = []string{"never", "sometimes", "often", "always"}

func TestLikert_DigitChooses(t *testing.T) {
	l := NewLikert("q", options, NoChoice)
	l, picked := l.Update(press('3'))
	assert.True(t, picked)
	assert.Equal(t, 3, l.Chosen)

	l, picked = l.Update(press('7'))
	assert.False(t, picked)
	assert.Equal(t, 3, l.Chosen)
}

func TestLikert_NoDefaultSelection(t *testing.T) {
	l := NewLikert("q", options, NoChoice)
	l, picked := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, picked)
	assert.Equal(t, NoChoice, l.Chosen)

	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 3, l.Highlighted, "up from nothing wraps to the last option")
}

func TestLikert_HighlightAndEnter(t *testing.T) {
	l := NewLikert("q", options, 1)
	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	l, picked := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, picked)
	assert.Equal(t, 2, l.Chosen)
}

func TestLikert_View(t *testing.T) {
	view := NewLikert("How often?", options, 2).View(60)
	assert.Contains(t, view, "How often?")
	assert.Contains(t, view, "● 2  often")
	assert.Contains(t, view, "○ 0  never")
}

func TestPicker(t *testing.T) {
	p := NewPicker("Select", []string{"A", "B"})
	assert.Equal(t, "", p.Value())

	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "", p.Value(), "unfocused picker ignores keys")

	p.Focused = true
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "A", p.Value())
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "A", p.Value())

	p.Select("Z")
	assert.Equal(t, "", p.Value())
	assert.Contains(t, p.View(), "Select")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 21, 0},
		{21, 21, 1},
		{30, 21, 1},
		{-1, 21, 0},
		{1, 0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NewProgressBar("", tt.done, tt.total, 40).Fraction(), 1e-9)
	}
	assert.Contains(t, NewProgressBar("", 7, 21, 40).View(), "7/21")
}

func TestTextInput_Accept(t *testing.T) {
	ti := NewTextInput("phone", 20)
	ti.Accept = PhoneChars
	ti.Focus()
	for _, r := range "01a2" {
		ti, _ = ti.Update(press(r))
	}
	assert.Equal(t, "012", ti.Value())
}

func TestTextInput_MarkClearsOnEdit(t *testing.T) {
	ti := NewTextInput("name", 20)
	ti.Focus()
	ti.MarkInvalid()
	assert.Contains(t, ti.View(), "✗")

	ti, _ = ti.Update(press('x'))
	assert.NotContains(t, ti.View(), "✗")
}

func TestSubmitButton(t *testing.T) {
	b := SubmitButton{Label: "Hantar", Missing: 3}
	assert.False(t, b.Ready())
	assert.Contains(t, b.View(), "○ 3")
	assert.Contains(t, b.View(), "Hantar")

	b.Missing = 0
	assert.True(t, b.Ready())
	assert.Contains(t, b.View(), "▸ Hantar")

	b.Busy = true
	assert.False(t, b.Ready())
	assert.Contains(t, b.View(), "… Hantar")
	assert.NotContains(t, b.View(), "▸")
}
