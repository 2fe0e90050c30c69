package form

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/ui/components"
	"github.com/abhisek/dass21/internal/ui/theme"
)

func (f *FormScreen) View(width, height int) string {
	cw := width - 8
	if cw > 88 {
		cw = 88
	}
	inner := cw - 6

	var b strings.Builder
	bar := components.NewProgressBar("", f.draft.Answered(), questionnaire.ItemCount, inner)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if f.cursor == reviewStep {
		b.WriteString(f.renderReview(inner))
	} else {
		b.WriteString(f.likert.View(inner))
	}

	if f.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Notice.Width(inner).Render(f.notice))
		b.WriteString("\n")
	}

	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// renderReview shows every position with its answer and the submit button.
func (f *FormScreen) renderReview(width int) string {
	var b strings.Builder
	cells := make([]string, 0, questionnaire.ItemCount)
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		a, ok := f.draft.Responses[pos]
		if ok && a.Valid() {
			cells = append(cells, theme.Answered.Render(padCell(pos, "●")))
		} else {
			cells = append(cells, theme.Notice.Render(padCell(pos, "○")))
		}
	}

	const perRow = 7
	for i := 0; i < len(cells); i += perRow {
		end := min(i+perRow, len(cells))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, f.submitButton().View()))
	b.WriteString("\n")
	return b.String()
}

func (f *FormScreen) submitButton() components.SubmitButton {
	return components.SubmitButton{
		Label:   f.draft.Variant().Messages.Submit,
		Missing: questionnaire.ItemCount - f.draft.Answered(),
		Busy:    f.submitting,
	}
}

func padCell(pos int, mark string) string {
	return fmt.Sprintf("%s %2d   ", mark, pos)
}
