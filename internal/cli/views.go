package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/acarreno/roadmap/internal/cli/formatter"
	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/timeline"
)

// labelWidth is the fixed width of the task caption column to the left of
// each timeline row.
const labelWidth = 22

func truncLabel(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}
	r := []rune(s)
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func rowWidth(total int) int {
	w := total - labelWidth - 2
	if w < 10 {
		w = 10
	}
	return w
}

// visibleIn returns the tasks whose date range intersects the window,
// keeping the store's start-date ordering.
func visibleIn(tasks []domain.Task, w timeline.Window) []domain.Task {
	var out []domain.Task
	for i := range tasks {
		if timeline.Overlaps(tasks[i].StartDate, tasks[i].EndDate, w) {
			out = append(out, tasks[i])
		}
	}
	return out
}

func renderListView(tasks []domain.Task, users []domain.User) string {
	if len(tasks) == 0 {
		return formatter.StyleDim.Render("No tasks.") + "\n"
	}
	return formatter.RenderTaskTable(tasks, users)
}

// dayHeader renders the day columns of a 7-day window, each day centered
// in an equal share of the row.
func dayHeader(w timeline.Window, rw int) string {
	cell := rw / 7
	if cell < 3 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth+2))
	for d := 0; d < 7; d++ {
		day := w.Start.AddDate(0, 0, d)
		label := fmt.Sprintf("%s %d", day.Format("Mon")[:2], day.Day())
		if len(label) > cell {
			label = label[:cell]
		}
		pad := cell - len(label)
		sb.WriteString(formatter.StyleDim.Render(label + strings.Repeat(" ", pad)))
	}
	return sb.String()
}

func renderWeekView(tasks []domain.Task, w timeline.Window, width int) string {
	rw := rowWidth(width)

	var sb strings.Builder
	title := fmt.Sprintf("Week of %s – %s",
		w.Start.Format("Jan 2"), w.End.Format("Jan 2, 2006"))
	sb.WriteString(formatter.StyleHeader.Render(title) + "\n")
	if h := dayHeader(w, rw); h != "" {
		sb.WriteString(h + "\n")
	}

	visible := visibleIn(tasks, w)
	if len(visible) == 0 {
		sb.WriteString(formatter.StyleDim.Render("No tasks this week.") + "\n")
		return sb.String()
	}

	for i := range visible {
		t := &visible[i]
		bar := timeline.ClampMinWidth(timeline.Position(t.StartDate, t.EndDate, w), timeline.MinWidthWeek)
		sb.WriteString(formatter.StatusIndicator(t.Completed) + " ")
		sb.WriteString(truncLabel(t.Title, labelWidth))
		sb.WriteString(formatter.RenderBar(bar, rw, formatter.BarColor(t.Color, i), t.Title))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMonthView(tasks []domain.Task, anchor time.Time, firstDay time.Weekday, width int) string {
	rw := rowWidth(width)
	rows := timeline.MonthGrid(anchor, firstDay)

	var sb strings.Builder
	sb.WriteString(formatter.StyleHeader.Render(anchor.Format("January 2006")) + "\n")

	for _, row := range rows {
		if h := dayHeader(row, rw); h != "" {
			sb.WriteString(h + "\n")
		}
		visible := visibleIn(tasks, row)
		if len(visible) == 0 {
			sb.WriteString(strings.Repeat(" ", labelWidth+2))
			sb.WriteString(formatter.StyleDim.Render(strings.Repeat("·", rw)) + "\n")
			continue
		}
		for i := range visible {
			t := &visible[i]
			bar := timeline.ClampMinWidth(timeline.Position(t.StartDate, t.EndDate, row), timeline.MinWidthMonthRow)
			sb.WriteString(formatter.StatusIndicator(t.Completed) + " ")
			sb.WriteString(truncLabel(t.Title, labelWidth))
			sb.WriteString(formatter.RenderBar(bar, rw, formatter.BarColor(t.Color, i), t.Title))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderQuarterView(tasks []domain.Task, anchor time.Time, width int) string {
	rw := rowWidth(width)
	q := timeline.QuarterOf(anchor)
	months := timeline.MonthsOfQuarter(anchor)

	var sb strings.Builder
	title := fmt.Sprintf("Q%d %d", timeline.QuarterNumber(anchor), anchor.Year())
	sb.WriteString(formatter.StyleHeader.Render(title) + "\n")

	// Month ruler: each month occupies its proportional share of the row.
	sb.WriteString(strings.Repeat(" ", labelWidth+2))
	used := 0
	for i, m := range months {
		cells := int(float64(m.Days()) / float64(q.Days()) * float64(rw))
		if i == len(months)-1 {
			cells = rw - used
		}
		used += cells
		name := m.Start.Format("January")
		if len(name) > cells {
			name = m.Start.Format("Jan")
		}
		if len(name) > cells {
			name = ""
		}
		sb.WriteString(formatter.StyleDim.Render(name + strings.Repeat(" ", cells-len(name))))
	}
	sb.WriteString("\n")

	visible := visibleIn(tasks, q)
	if len(visible) == 0 {
		sb.WriteString(formatter.StyleDim.Render("No tasks this quarter.") + "\n")
		return sb.String()
	}

	for i := range visible {
		t := &visible[i]
		bar := timeline.ClampMinWidth(timeline.Position(t.StartDate, t.EndDate, q), timeline.MinWidthQuarter)
		sb.WriteString(formatter.StatusIndicator(t.Completed) + " ")
		sb.WriteString(truncLabel(t.Title, labelWidth))
		sb.WriteString(formatter.RenderBar(bar, rw, formatter.BarColor(t.Color, i), t.Title))
		sb.WriteString("\n")
	}

	// Per-month breakdown with a wider legibility floor, since a month is
	// a third of the quarter row.
	for _, m := range months {
		inMonth := visibleIn(visible, m)
		if len(inMonth) == 0 {
			continue
		}
		sb.WriteString("\n" + formatter.StyleBold.Render(m.Start.Format("January")) + "\n")
		for i := range inMonth {
			t := &inMonth[i]
			bar := timeline.ClampMinWidth(timeline.Position(t.StartDate, t.EndDate, m), timeline.MinWidthQuarterMonth)
			sb.WriteString(formatter.StatusIndicator(t.Completed) + " ")
			sb.WriteString(truncLabel(t.Title, labelWidth))
			sb.WriteString(formatter.RenderBar(bar, rw, formatter.BarColor(t.Color, i), t.Title))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
