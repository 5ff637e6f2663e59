// Package timeline computes where a task's date range falls within a
// visible calendar window. Positions are expressed as percentages of the
// window width so renderers can scale them to any surface.
package timeline

import "time"

// Window is an inclusive interval of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count of the window: 7 for a week row,
// 90-92 for a quarter.
func (w Window) Days() int {
	return DaysBetween(w.Start, w.End) + 1
}

// Contains reports whether day falls within the window.
func (w Window) Contains(day time.Time) bool {
	d := dateOf(day)
	return !d.Before(dateOf(w.Start)) && !d.After(dateOf(w.End))
}

// dateOf strips the time-of-day and location, leaving a bare calendar day.
// Day arithmetic on the stripped values is immune to DST transitions.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b. The result
// is negative when b precedes a. Same-day inputs yield 0.
func DaysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}

// WeekOf returns the 7-day window containing t, starting on firstDay.
func WeekOf(t time.Time, firstDay time.Weekday) Window {
	day := dateOf(t)
	back := (int(day.Weekday()) - int(firstDay) + 7) % 7
	start := day.AddDate(0, 0, -back)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthOf returns the window spanning the calendar month containing t.
func MonthOf(t time.Time) Window {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

// MonthGrid returns the week rows of the month view containing t. The grid
// runs from the start of the week containing the 1st through the end of
// the week containing the last day, so rows at the edges spill into the
// neighboring months. Each row is its own 7-day window: a task crossing a
// row boundary is positioned once per row it intersects.
func MonthGrid(t time.Time, firstDay time.Weekday) []Window {
	month := MonthOf(t)
	gridStart := WeekOf(month.Start, firstDay).Start
	gridEnd := WeekOf(month.End, firstDay).End

	var rows []Window
	for s := gridStart; !s.After(gridEnd); s = s.AddDate(0, 0, 7) {
		rows = append(rows, Window{Start: s, End: s.AddDate(0, 0, 6)})
	}
	return rows
}

// QuarterOf returns the window spanning the calendar quarter containing t.
func QuarterOf(t time.Time) Window {
	y, m, _ := t.Date()
	qm := time.Month((int(m)-1)/3*3 + 1)
	start := time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 3, -1)}
}

// ShiftWeeks moves the anchor date n weeks forward (or back when n is
// negative).
func ShiftWeeks(t time.Time, n int) time.Time {
	return dateOf(t).AddDate(0, 0, 7*n)
}

// ShiftMonths moves the anchor to the first day of the month n months
// away, so repeated navigation never skips a short month.
func ShiftMonths(t time.Time, n int) time.Time {
	return MonthOf(t).Start.AddDate(0, n, 0)
}

// ShiftQuarters moves the anchor to the first day of the quarter n
// quarters away.
func ShiftQuarters(t time.Time, n int) time.Time {
	return QuarterOf(t).Start.AddDate(0, 3*n, 0)
}

// QuarterNumber returns the 1-based quarter (1-4) containing t.
func QuarterNumber(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// MonthsOfQuarter returns the three month windows of the quarter
// containing t, for the per-month-row quarter layout.
func MonthsOfQuarter(t time.Time) []Window {
	q := QuarterOf(t)
	months := make([]Window, 0, 3)
	for s := q.Start; s.Before(q.End); s = s.AddDate(0, 1, 0) {
		months = append(months, Window{Start: s, End: s.AddDate(0, 1, -1)})
	}
	return months
}
