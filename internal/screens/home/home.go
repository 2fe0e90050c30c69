package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screen"
	"github.com/abhisek/dass21/internal/screens/draft"
	"github.com/abhisek/dass21/internal/screens/form"
	"github.com/abhisek/dass21/internal/screens/identity"
	"github.com/abhisek/dass21/internal/ui/components"
	"github.com/abhisek/dass21/internal/ui/layout"
	"github.com/abhisek/dass21/internal/ui/theme"
)

// HomeScreen lets the respondent pick a question bank and start.
type HomeScreen struct {
	bank      *questionnaire.Bank
	submitter draft.Submitter
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen listing every bank, with the default highlighted.
func New(bank *questionnaire.Bank, submitter draft.Submitter) *HomeScreen {
	h := &HomeScreen{bank: bank, submitter: submitter}

	var items []components.MenuItem
	selected := 0
	for i, e := range bank.Engines() {
		e := e
		v := e.Variant()
		if e == bank.Default() {
			selected = i
		}
		items = append(items, components.MenuItem{
			Label: v.Title,
			Hint:  v.Locale,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: h.start(e)} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Keluar / Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	h.menu = components.NewMenu(items)
	h.menu.Selected = selected
	return h
}

// start opens a fresh draft on the first screen of the form.
func (h *HomeScreen) start(e *questionnaire.Engine) screen.Screen {
	d := draft.New(e)
	if d.CollectsIdentity() {
		return identity.New(d, h.submitter)
	}
	return form.New(d, h.submitter)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Saringan / Screening"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := width - 8
	if cw > 72 {
		cw = 72
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("DASS-21"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Pilih bahasa soal selidik · Choose a questionnaire language"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
