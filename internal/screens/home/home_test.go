package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screens/identity"
)

func newHome(t *testing.T, def string) *HomeScreen {
	t.Helper()
	bank, err := questionnaire.LoadBank(def)
	require.NoError(t, err)
	return New(bank, nil)
}

func TestMenuListsBanksAndQuit(t *testing.T) {
	h := newHome(t, "ms")
	require.Len(t, h.menu.Items, 3)
	assert.Equal(t, "DASS-21 Screening", h.menu.Items[0].Label)
	assert.Equal(t, "Saringan Minda Sihat UniKL", h.menu.Items[1].Label)
	assert.Equal(t, 1, h.menu.Selected, "default bank is highlighted")
}

func TestEnterStartsIdentity(t *testing.T) {
	h := newHome(t, "en")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	s, ok := push.Screen.(*identity.IdentityScreen)
	require.True(t, ok)
	assert.Equal(t, "DASS-21 Screening", s.Title())
}

func TestQuitItem(t *testing.T) {
	h := newHome(t, "en")
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	h := newHome(t, "ms")
	view := h.View(100, 30)
	assert.Contains(t, view, "DASS-21")
	assert.Contains(t, view, "Keluar / Quit")
}
