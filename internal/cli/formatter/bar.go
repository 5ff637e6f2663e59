package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/acarreno/roadmap/internal/timeline"
)

const trackBlock = "·"

// BarCells converts a percentage bar into terminal cell coordinates for a
// row of the given width. A bar with positive width always occupies at
// least one cell so short tasks remain visible.
func BarCells(b timeline.Bar, rowWidth int) (start, n int) {
	if rowWidth <= 0 || b.Width <= 0 {
		return 0, 0
	}
	start = int(b.Offset / 100 * float64(rowWidth))
	n = int(b.Width/100*float64(rowWidth) + 0.5)
	if n < 1 {
		n = 1
	}
	if start >= rowWidth {
		start = rowWidth - 1
	}
	if start+n > rowWidth {
		n = rowWidth - start
	}
	return start, n
}

// RenderBar draws a task bar on a dotted track of rowWidth cells. The
// bar is a block of background color; the label is painted inside when it
// fits, the way calendar bars only show their caption when wide enough.
func RenderBar(b timeline.Bar, rowWidth int, color lipgloss.Color, label string) string {
	start, n := BarCells(b, rowWidth)
	if n == 0 {
		return StyleDim.Render(strings.Repeat(trackBlock, rowWidth))
	}

	body := strings.Repeat(" ", n)
	if label != "" && lipgloss.Width(label)+2 <= n {
		body = " " + label + strings.Repeat(" ", n-lipgloss.Width(label)-1)
	}
	barStyle := lipgloss.NewStyle().Background(color).Foreground(lipgloss.Color("#1d2021"))

	var sb strings.Builder
	sb.WriteString(StyleDim.Render(strings.Repeat(trackBlock, start)))
	sb.WriteString(barStyle.Render(body))
	sb.WriteString(StyleDim.Render(strings.Repeat(trackBlock, rowWidth-start-n)))
	return sb.String()
}
