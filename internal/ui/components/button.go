package components

import (
	"strconv"

	"github.com/abhisek/dass21/internal/ui/theme"
)

// SubmitButton is the submit action of the review step. It renders
// highlighted only when every item is answered and no submission is in
// flight.
type SubmitButton struct {
	Label string
	// Missing is the number of unanswered items.
	Missing int
	// Busy is set while a submission is being recorded.
	Busy bool
}

// Ready reports whether pressing the button can record a submission.
func (b SubmitButton) Ready() bool {
	return !b.Busy && b.Missing == 0
}

func (b SubmitButton) View() string {
	switch {
	case b.Busy:
		return theme.ButtonInactive.Render("  … " + b.Label + " ")
	case b.Missing > 0:
		return theme.ButtonInactive.Render("  ○ " + strconv.Itoa(b.Missing) + "  " + b.Label + " ")
	}
	return theme.ButtonActive.Render("  ▸ " + b.Label + " ")
}
