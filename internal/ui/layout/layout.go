// Package layout draws the chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/ui/theme"
)

// Below this size the questionnaire card no longer fits.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Frame is the header and footer drawn around the active screen.
type Frame struct {
	Title string
	// Tag is shown at the right of the header, typically the version.
	Tag   string
	Hints []KeyHint
	// Status is shown at the right of the footer, e.g. the item position.
	Status string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Render draws the frame at width x height. body is called with the space
// left between header and footer. A terminal that IsTooSmall gets a
// resize notice instead.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	if IsTooSmall(width, height) {
		return resizeNotice(width, height)
	}

	header := f.header(width)
	footer := f.footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		Render(body(width, bodyHeight))

	return header + "\n" + content + "\n" + footer
}

func (f Frame) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  DASS-21") +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Tag)
	return bar(left, right, width)
}

func (f Frame) footer(width int) string {
	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+
				" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	left := "  " + strings.Join(parts, "   ")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Status)
	return bar(left, right, width)
}

// bar renders a bordered full-width row with left and right aligned text.
func bar(left, right string, width int) string {
	inner := max(width-4, 0)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(left + strings.Repeat(" ", gap) + right)
}

func resizeNotice(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The questionnaire needs a larger window.\n\nResize to at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}
