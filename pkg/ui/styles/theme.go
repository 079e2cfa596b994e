// Package styles provides the chat widget theme. Most colors derive from the
// configured brand color so the terminal widget matches the web one.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Fixed palette - ANSI 256 colors for text that does not follow the brand.
var (
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Text on brand backgrounds
	ColorSuccess    = lipgloss.Color("42")  // Online indicator
	ColorBotBg      = lipgloss.Color("236") // Bot bubble background
	ColorBorder     = lipgloss.Color("240") // Separators
)

// DefaultBrandColor is the widget's stock orange.
const DefaultBrandColor = "#FF7A00"

// lightenPercent matches the header gradient end of the web widget.
const lightenPercent = 20

// Theme holds every style the chat widget renders with.
type Theme struct {
	Brand      color.Color
	BrandLight color.Color

	Launcher lipgloss.Style
	Box      lipgloss.Style

	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style
	Separator    lipgloss.Style

	UserText lipgloss.Style
	UserBold lipgloss.Style
	BotText  lipgloss.Style
	BotBold  lipgloss.Style
	Typing   lipgloss.Style

	QuickReply         lipgloss.Style
	QuickReplySelected lipgloss.Style

	Footer lipgloss.Style
}

// NewTheme builds a theme around brand, a CSS hex color. An unparsable color
// falls back to DefaultBrandColor and is reported as an error alongside the
// usable theme.
func NewTheme(brand string) (Theme, error) {
	light, err := AdjustColor(brand, lightenPercent)
	if err != nil {
		fallback, _ := AdjustColor(DefaultBrandColor, lightenPercent)
		return newTheme(DefaultBrandColor, fallback), err
	}
	return newTheme(normalizeHex(brand), light), nil
}

// DefaultTheme returns the theme for DefaultBrandColor.
func DefaultTheme() Theme {
	t, _ := NewTheme(DefaultBrandColor)
	return t
}

func newTheme(brandHex, lightHex string) Theme {
	brand := lipgloss.Color(brandHex)
	light := lipgloss.Color(lightHex)

	return Theme{
		Brand:      brand,
		BrandLight: light,

		Launcher: lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(brand).
			Bold(true).
			Padding(0, 2),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brand).
			Padding(0, 1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(light).
			Bold(true),

		HeaderStatus: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Separator: lipgloss.NewStyle().
			Foreground(ColorBorder),

		UserText: lipgloss.NewStyle().
			Foreground(light),

		UserBold: lipgloss.NewStyle().
			Foreground(light).
			Bold(true),

		BotText: lipgloss.NewStyle().
			Foreground(ColorText),

		BotBold: lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true),

		Typing: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true),

		QuickReply: lipgloss.NewStyle().
			Foreground(brand).
			Background(ColorBotBg).
			Padding(0, 1),

		QuickReplySelected: lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(brand).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true),
	}
}
