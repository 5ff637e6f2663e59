package domain

import (
	"strings"
	"time"
)

// Subtask is a checklist item owned by exactly one task. It has no
// lifecycle of its own: deleting the parent task removes it too.
type Subtask struct {
	ID        string
	TaskID    string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// SubtaskPatch carries a partial subtask update. Nil fields are left
// unchanged.
type SubtaskPatch struct {
	Title     *string
	Completed *bool
}

// Apply merges the patch into the subtask. It returns a ValidationError
// when the patched title would be blank.
func (p SubtaskPatch) Apply(s *Subtask) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return &ValidationError{Field: "title", Message: "subtask title is required"}
		}
		s.Title = title
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	return nil
}
