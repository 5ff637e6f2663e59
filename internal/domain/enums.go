package domain

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// ValidStatusFilters is the canonical set of accepted status filters.
var ValidStatusFilters = map[StatusFilter]bool{
	StatusAll: true, StatusPending: true, StatusCompleted: true,
}

type ViewMode string

const (
	ViewList    ViewMode = "list"
	ViewWeek    ViewMode = "week"
	ViewMonth   ViewMode = "month"
	ViewQuarter ViewMode = "quarter"
)

// ValidViewModes is the canonical set of accepted view modes.
var ValidViewModes = map[ViewMode]bool{
	ViewList: true, ViewWeek: true, ViewMonth: true, ViewQuarter: true,
}
