package formatter

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// barPalette colors task bars that carry no explicit color, cycling by
// position so adjacent bars stay distinguishable.
var barPalette = []lipgloss.Color{
	ColorBlue, ColorGreen, ColorPurple, ColorYellow, ColorAqua,
}

// BarColor returns the color for the i-th task bar, honoring the task's
// own color when set.
func BarColor(taskColor string, i int) lipgloss.Color {
	if taskColor != "" {
		return lipgloss.Color(taskColor)
	}
	return barPalette[((i%len(barPalette))+len(barPalette))%len(barPalette)]
}

// StatusIndicator returns a colored completion marker.
func StatusIndicator(completed bool) string {
	if completed {
		return StyleGreen.Render("✓")
	}
	return StyleYellow.Render("○")
}
