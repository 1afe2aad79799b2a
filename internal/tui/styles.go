// Package tui renders EcoTrack's styled terminal output and the interactive
// dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrack/internal/ledger"
)

// Palette colors for the two themes.
const (
	ColorGreen     = lipgloss.Color("#10B981")
	ColorDarkGreen = lipgloss.Color("#047857")
	ColorAmber     = lipgloss.Color("#F59E0B")
	ColorRed       = lipgloss.Color("#EF4444")
	ColorGray      = lipgloss.Color("#6B7280")
	ColorLightGray = lipgloss.Color("#9CA3AF")
	ColorInk       = lipgloss.Color("#111827")
	ColorPaper     = lipgloss.Color("#F9FAFB")
)

// Icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconLeaf       = "🌱"
	IconFire       = "🔥"
	IconLock       = "🔒"
	IconCheck      = "✓"
)

// Styles is a themed set of lipgloss styles.
type Styles struct {
	Theme ledger.Theme

	Accent  lipgloss.Color
	OK      lipgloss.Color
	Warning lipgloss.Color
	Muted   lipgloss.Color

	Header        lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Subtle        lipgloss.Style
	Info          lipgloss.Style
	Critical      lipgloss.Style
	Box           lipgloss.Style
	Bar           lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// NewStyles returns the style set for theme.
func NewStyles(theme ledger.Theme) Styles {
	text, muted, accent := ColorInk, ColorGray, ColorDarkGreen
	if theme == ledger.ThemeDark {
		text, muted, accent = ColorPaper, ColorLightGray, ColorGreen
	}

	return Styles{
		Theme:   theme,
		Accent:  accent,
		OK:      accent,
		Warning: ColorAmber,
		Muted:   muted,

		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:    lipgloss.NewStyle().Foreground(muted),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(text),
		Subtle:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		Info:     lipgloss.NewStyle().Foreground(text).Background(accent),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(ColorRed),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Bar:         lipgloss.NewStyle().Foreground(accent),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(text).Background(accent).Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true),
		TableSelected: lipgloss.NewStyle().Bold(true).Foreground(text).Background(muted),
	}
}
