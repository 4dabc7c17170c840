package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Starts as the dark theme; SetTheme swaps it.
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	SelectionBgColor color.Color = lipgloss.Color("#312E81")
	StripeBgColor    color.Color = lipgloss.Color("#111827")
)

// Grid and chrome styles, derived from the palette by rebuildStyles.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Title bar
	Title       lipgloss.Style
	TitleSource lipgloss.Style

	// Grid header
	HeaderCell      lipgloss.Style
	HeaderSorted    lipgloss.Style
	HeaderSeparator lipgloss.Style

	// Grid body
	Cell       lipgloss.Style
	CellStripe lipgloss.Style
	CursorRow  lipgloss.Style
	EmptyState lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusLabel  lipgloss.Style
	StatusValue  lipgloss.Style
	StatusSignal lipgloss.Style

	// Hint text
	Hint lipgloss.Style

	// -------------------------------------------------------------------------
	// Help
	// -------------------------------------------------------------------------

	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	HelpBorder lipgloss.Style

	// -------------------------------------------------------------------------
	// Scrollbar
	// -------------------------------------------------------------------------

	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme switches the palette to the named theme and reports whether the
// name was known.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	SelectionBgColor = t.SelectionBg
	StripeBgColor = t.StripeBg
	rebuildStyles()
	return true
}

// IsDark reports whether the active theme has a dark background.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Title = lipgloss.NewStyle().Foreground(Primary).Bold(true).PaddingLeft(1)
	TitleSource = lipgloss.NewStyle().Foreground(Secondary)

	HeaderCell = lipgloss.NewStyle().Foreground(Muted).Bold(true)
	HeaderSorted = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderSeparator = lipgloss.NewStyle().Foreground(Border)

	Cell = lipgloss.NewStyle()
	CellStripe = lipgloss.NewStyle().Background(StripeBgColor)
	CursorRow = lipgloss.NewStyle().Background(SelectionBgColor).Bold(true)
	EmptyState = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusLabel = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	StatusSignal = lipgloss.NewStyle().Foreground(Warning)

	Hint = lipgloss.NewStyle().Foreground(Dim)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}
