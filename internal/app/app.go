package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screen"
	"github.com/abhisek/dass21/internal/screens/draft"
	"github.com/abhisek/dass21/internal/screens/home"
	"github.com/abhisek/dass21/internal/screens/welcome"
	"github.com/abhisek/dass21/internal/ui/layout"
)

// Options holds the dependencies of the terminal collector.
type Options struct {
	Bank      *questionnaire.Bank
	Submitter draft.Submitter
	// Tag is shown at the right of the header, typically the version.
	Tag string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	tag    string
	width  int
	height int
}

// NewAppModel creates an AppModel that opens on the welcome banner and
// then settles on the home screen.
func NewAppModel(opts Options) AppModel {
	intro := welcome.New(func() screen.Screen {
		return home.New(opts.Bank, opts.Submitter)
	})
	return AppModel{
		router: router.New(intro),
		tag:    opts.Tag,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok {
				return m, h.HandleEscape()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	active := m.router.Active()
	frame := layout.Frame{Tag: m.tag, Hints: m.footerHints(active)}
	if active != nil {
		frame.Title = active.Title()
	}
	if p, ok := active.(screen.StatusProvider); ok {
		frame.Status = p.Status()
	}

	v.SetContent(frame.Render(m.width, m.height, m.router.View))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal form: %w", err)
	}
	return nil
}
