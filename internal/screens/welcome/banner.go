package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dass21/internal/ui/theme"
)

const bannerArt = `
 ██████╗  █████╗ ███████╗███████╗    ██████╗  ██╗
 ██╔══██╗██╔══██╗██╔════╝██╔════╝    ╚════██╗███║
 ██║  ██║███████║███████╗███████╗     █████╔╝╚██║
 ██║  ██║██╔══██║╚════██║╚════██║    ██╔═══╝  ██║
 ██████╔╝██║  ██║███████║███████║    ███████╗ ██║
 ╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝    ╚══════╝ ╚═╝`

const bannerCompact = "D A S S - 2 1"

// RenderBanner returns the DASS-21 banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
