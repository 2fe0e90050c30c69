package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/intake"
	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screen"
	"github.com/abhisek/dass21/internal/ui/layout"
	"github.com/abhisek/dass21/internal/ui/theme"
)

// ResultScreen shows the three subscale outcomes of a recorded submission.
type ResultScreen struct {
	receipt *intake.Receipt
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.EscapeHandler = (*ResultScreen)(nil)

// New creates a new ResultScreen.
func New(receipt *intake.Receipt) *ResultScreen {
	return &ResultScreen{receipt: receipt}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	if s.receipt == nil || s.receipt.Variant == nil {
		return ""
	}
	return s.receipt.Variant.Messages.ResultTitle
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) HandleEscape() tea.Cmd {
	return home
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The draft is finished; the next respondent starts from home.
			return s, home
		}
	}
	return s, nil
}

func home() tea.Msg { return router.PopToRootMsg{} }

// Lines returns one "Name: total → label" line per subscale.
func (s *ResultScreen) Lines() []string {
	if s.receipt == nil || s.receipt.Result == nil {
		return nil
	}
	out := make([]string, 0, len(s.receipt.Result.Scores))
	for _, sc := range s.receipt.Result.Scores {
		out = append(out, fmt.Sprintf("%s: %d → %s", sc.Name, sc.Total, sc.Label))
	}
	return out
}

func (s *ResultScreen) View(width, height int) string {
	r := s.receipt
	if r == nil || r.Result == nil || r.Variant == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(r.Variant.Messages.ResultTitle))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 48)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	lines := s.Lines()
	for i, sc := range r.Result.Scores {
		style := lipgloss.NewStyle().
			Foreground(theme.SeverityColor(bandRank(r.Variant, sc))).
			Bold(true)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(lines[i])))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if r.Recorded {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Recorded.Render(r.Variant.Messages.Recorded)))
		b.WriteString("\n")
	}
	if r.SubmissionID != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(r.SubmissionID)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// bandRank returns how many bands of the subscale lie below the score.
func bandRank(v *questionnaire.Variant, sc questionnaire.SubscaleScore) int {
	sub := v.Subscale(sc.ID)
	if sub == nil {
		return 0
	}
	rank := 0
	for _, band := range sub.Bands {
		if band.High < sc.Total {
			rank++
		}
	}
	return rank
}
