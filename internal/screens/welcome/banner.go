package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// BannerArt is the block-letter title, shared with the home screen.
const BannerArt = ` ██╗     ██╗███╗   ██╗ ██████╗ ██╗   ██╗ █████╗
 ██║     ██║████╗  ██║██╔════╝ ██║   ██║██╔══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║███████║
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║██╔══██║
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝██║  ██║
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

// BannerCompact replaces BannerArt on narrow terminals.
const BannerCompact = "L · I · N · G · U · A"

// BannerMinWidth is the narrowest width that fits BannerArt.
const BannerMinWidth = 52

// RenderBanner returns the banner styled in the primary color.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerMinWidth {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
