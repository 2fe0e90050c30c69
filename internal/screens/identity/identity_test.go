package identity

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screens/draft"
	"github.com/abhisek/dass21/internal/screens/form"
)

func newScreen(t *testing.T) (*IdentityScreen, *draft.Draft) {
	t.Helper()
	e, err := questionnaire.LoadBuiltin("ms")
	require.NoError(t, err)
	d := draft.New(e)
	s := New(d, nil)
	s.Init()
	return s, d
}

func typeText(s *IdentityScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s *IdentityScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestNew_FieldsFollowBank(t *testing.T) {
	s, _ := newScreen(t)
	require.Len(t, s.fields, 4)
	assert.Equal(t, questionnaire.FieldName, s.fields[0].id)
	assert.NotNil(t, s.fields[2].picker)
	assert.Equal(t, "", s.fields[2].picker.Value())
	assert.True(t, s.fields[0].input.Focused())
}

func TestTabMovesFocus(t *testing.T) {
	s, _ := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 1, s.focus)
	assert.True(t, s.fields[1].input.Focused())
	assert.False(t, s.fields[0].input.Focused())

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.focus)
}

func TestTyping(t *testing.T) {
	s, _ := newScreen(t)
	typeText(s, "Ali")
	assert.Equal(t, "Ali", s.fields[0].input.Value())
}

func TestPhoneRejectsLetters(t *testing.T) {
	s, _ := newScreen(t)
	s.setFocus(3)
	typeText(s, "01x2")
	assert.Equal(t, "012", s.fields[3].input.Value())
}

func TestCampusPicker(t *testing.T) {
	s, _ := newScreen(t)
	s.setFocus(2)
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "MSI", s.fields[2].picker.Value())
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, "MITEC", s.fields[2].picker.Value())
}

func TestProceed_MissingStudentID(t *testing.T) {
	s, d := newScreen(t)
	s.setFocus(3)
	enter(s)

	assert.Equal(t, "⚠️ Sila isi 'Student ID' sebelum menghantar borang.", d.Notice)
	assert.Equal(t, 1, s.focus)
}

func TestProceed_MissingCampus(t *testing.T) {
	s, d := newScreen(t)
	s.fields[1].input.SetValue("52215")
	s.setFocus(3)
	enter(s)

	assert.Equal(t, "⚠️ Sila pilih 'Kampus' sebelum menghantar borang.", d.Notice)
	assert.Equal(t, questionnaire.FieldCampus, d.Focus)
	assert.Equal(t, 2, s.focus)
}

func TestProceed_OpensForm(t *testing.T) {
	s, d := newScreen(t)
	s.fields[0].input.SetValue("  Siti ")
	s.fields[1].input.SetValue("52215")
	s.fields[2].picker.Select("MFI")
	s.setFocus(3)

	cmd := enter(s)
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*form.FormScreen)
	assert.True(t, ok)

	assert.Equal(t, "Siti", d.Identity.Name)
	assert.Equal(t, "52215", d.Identity.StudentID)
	assert.Equal(t, "MFI", d.Identity.Campus)
	assert.Empty(t, d.Notice)
}

func TestInit_FocusesReportedField(t *testing.T) {
	e, err := questionnaire.LoadBuiltin("en")
	require.NoError(t, err)
	d := draft.New(e)
	d.Identity = questionnaire.Identity{StudentID: "1", Campus: "MFI"}
	d.Focus = questionnaire.FieldCampus

	s := New(d, nil)
	s.Init()
	assert.Equal(t, 2, s.focus)
	assert.Equal(t, "MFI", s.fields[2].picker.Value())
	assert.Equal(t, "1", s.fields[1].input.Value())
}

func TestView_ShowsLabelsAndNotice(t *testing.T) {
	s, d := newScreen(t)
	d.Notice = "check me"
	view := s.View(100, 30)
	assert.Contains(t, view, "Student ID *")
	assert.Contains(t, view, "Pilih Kampus")
	assert.Contains(t, view, "check me")
}
