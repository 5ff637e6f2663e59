package formatter

import (
	"fmt"
	"strings"

	"github.com/acarreno/roadmap/internal/domain"
)

const dateLayout = "2006-01-02"

// AssigneeName resolves the display name for a task's assignee. A
// dangling reference renders as "no assignee" instead of failing.
func AssigneeName(t *domain.Task, users []domain.User) string {
	for i := range users {
		if users[i].ID == t.AssignedUserID {
			return users[i].Name
		}
	}
	return StyleDim.Render("no assignee")
}

// DateRange formats a task's span like "2025-03-03 → 2025-03-07".
func DateRange(t *domain.Task) string {
	return t.StartDate.Format(dateLayout) + " → " + t.EndDate.Format(dateLayout)
}

// ShortID truncates a task identifier for table display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderTaskTable renders tasks as rows of id, status, title, dates,
// assignee and checklist progress.
func RenderTaskTable(tasks []domain.Task, users []domain.User) string {
	if len(tasks) == 0 {
		return StyleDim.Render("no tasks") + "\n"
	}

	headers := []string{"ID", "", "Title", "Dates", "Assignee", "Checklist"}
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		rows = append(rows, []string{
			StyleDim.Render(ShortID(t.ID)),
			StatusIndicator(t.Completed),
			t.Title,
			DateRange(t),
			AssigneeName(t, users),
			ChecklistSummary(t),
		})
	}
	return RenderTable(headers, rows)
}

// ChecklistSummary renders subtask progress like "2/5", or a dash when
// the task has no checklist.
func ChecklistSummary(t *domain.Task) string {
	done, total := t.Progress()
	if total == 0 {
		return StyleDim.Render("–")
	}
	s := fmt.Sprintf("%d/%d", done, total)
	if done == total {
		return StyleGreen.Render(s)
	}
	return s
}

// RenderTaskDetail renders the read-only detail card for one task.
func RenderTaskDetail(t *domain.Task, users []domain.User) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(t.Title))
	b.WriteString("  ")
	b.WriteString(StatusIndicator(t.Completed))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(ShortID(t.ID)))
	b.WriteString("\n\n")

	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n\n")
	}

	b.WriteString(StyleBold.Render("Dates     "))
	b.WriteString(DateRange(t))
	b.WriteString("\n")
	b.WriteString(StyleBold.Render("Assignee  "))
	b.WriteString(AssigneeName(t, users))
	b.WriteString("\n")

	if len(t.Subtasks) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleBold.Render("Checklist "))
		b.WriteString(ChecklistSummary(t))
		b.WriteString("\n")
		for i := range t.Subtasks {
			s := &t.Subtasks[i]
			marker := "[ ]"
			title := s.Title
			if s.Completed {
				marker = StyleGreen.Render("[x]")
				title = StyleDim.Render(title)
			}
			fmt.Fprintf(&b, "  %s %s %s\n", marker, title, StyleDim.Render(ShortID(s.ID)))
		}
	}

	return b.String()
}
