package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID             string
	Title          string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	AssignedUserID string
	Completed      bool
	Color          string
	Subtasks       []Subtask
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the task's user-supplied fields. The assignee must be a
// non-blank identifier but is not checked against the user set; a dangling
// reference renders as "no assignee" rather than failing.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if t.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Message: "start date is required"}
	}
	if t.EndDate.IsZero() {
		return &ValidationError{Field: "endDate", Message: "end date is required"}
	}
	if t.StartDate.After(t.EndDate) {
		return &ValidationError{Field: "endDate", Message: "end date must not be before start date"}
	}
	if strings.TrimSpace(t.AssignedUserID) == "" {
		return &ValidationError{Field: "assignee", Message: "assignee is required"}
	}
	return nil
}

// Progress returns the number of completed subtasks and the total count.
func (t *Task) Progress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Subtask returns the subtask with the given id, or nil.
func (t *Task) Subtask(id string) *Subtask {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return &t.Subtasks[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the task, including its subtasks.
func (t *Task) Clone() Task {
	out := *t
	out.Subtasks = make([]Subtask, len(t.Subtasks))
	copy(out.Subtasks, t.Subtasks)
	return out
}

// TaskPatch carries a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title          *string
	Description    *string
	StartDate      *time.Time
	EndDate        *time.Time
	AssignedUserID *string
	Completed      *bool
	Color          *string
}

// Apply merges the patch into the task and re-validates the result. The
// task is only modified when the merged result is valid; an invalid patch
// (blank title, inverted dates) is rejected, never auto-corrected.
func (p TaskPatch) Apply(t *Task) error {
	merged := t.Clone()
	if p.Title != nil {
		merged.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.StartDate != nil {
		merged.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		merged.EndDate = *p.EndDate
	}
	if p.AssignedUserID != nil {
		merged.AssignedUserID = *p.AssignedUserID
	}
	if p.Completed != nil {
		merged.Completed = *p.Completed
	}
	if p.Color != nil {
		merged.Color = *p.Color
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	*t = merged
	return nil
}
