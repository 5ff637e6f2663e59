package timeline

import "time"

// Bar is a horizontal position within a window, in percent of the window
// width. Offset >= 0 and Offset+Width <= 100 always hold.
type Bar struct {
	Offset float64
	Width  float64
}

// Minimum render widths per granularity, in percent. These are purely a
// legibility floor applied by renderers via ClampMinWidth; they never
// influence filtering or stored data. The week view draws bars at true
// scale, so it has no floor.
const (
	MinWidthWeek         = 0.0
	MinWidthMonthRow     = 3.0
	MinWidthQuarter      = 5.0
	MinWidthQuarterMonth = 8.0
)

// Position maps the inclusive task interval [start, end] onto w. The
// interval is clipped to the window, so a task extending past either edge
// renders as a partial bar. Callers filter out non-overlapping tasks
// beforehand (see Overlaps).
//
// Duration is inclusive of both endpoints: a single-day task occupies one
// day's worth of width, never zero.
func Position(start, end time.Time, w Window) Bar {
	effStart := start
	if effStart.Before(w.Start) {
		effStart = w.Start
	}
	effEnd := end
	if effEnd.After(w.End) {
		effEnd = w.End
	}

	windowDays := w.Days()
	startOffsetDays := DaysBetween(w.Start, effStart)
	durationDays := DaysBetween(effStart, effEnd) + 1

	offset := float64(startOffsetDays) / float64(windowDays) * 100
	if offset < 0 {
		offset = 0
	}

	width := float64(durationDays) / float64(windowDays) * 100
	if width > 100 {
		width = 100
	}
	// Cap against the right edge so offset+width never exceeds 100.
	if remaining := 100 - offset; width > remaining {
		width = remaining
	}

	return Bar{Offset: offset, Width: width}
}

// ClampMinWidth floors the bar's width at min percent. The offset is
// pulled left when the widened bar would overflow the window.
func ClampMinWidth(b Bar, min float64) Bar {
	if b.Width >= min {
		return b
	}
	b.Width = min
	if b.Offset+b.Width > 100 {
		b.Offset = 100 - b.Width
		if b.Offset < 0 {
			b.Offset = 0
			b.Width = 100
		}
	}
	return b
}

// Overlaps reports whether the inclusive interval [start, end] intersects
// the window. Renderers use this to filter tasks before calling Position.
func Overlaps(start, end time.Time, w Window) bool {
	return DaysBetween(start, w.End) >= 0 && DaysBetween(w.Start, end) >= 0
}

// OccupiesDay reports whether the inclusive interval [start, end] covers
// the given calendar day.
func OccupiesDay(start, end, day time.Time) bool {
	return DaysBetween(start, day) >= 0 && DaysBetween(day, end) >= 0
}
