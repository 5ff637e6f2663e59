package cli

import (
	"fmt"
	"strings"

	"github.com/acarreno/roadmap/internal/domain"
)

// resolveTaskID resolves a task identifier which can be a full UUID or a
// unique UUID prefix. Ambiguous prefixes are an error listing the matches.
func resolveTaskID(app *App, input string) (string, error) {
	tasks := app.Store.ListTasks()

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return "", &domain.NotFoundError{Entity: "task", ID: input}
	case 1:
		return matches[0].ID, nil
	default:
		ids := make([]string, len(matches))
		for i, t := range matches {
			ids[i] = fmt.Sprintf("%s (%s)", t.ID[:8], t.Title)
		}
		return "", fmt.Errorf("ambiguous task ID %q matches: %s", input, strings.Join(ids, ", "))
	}
}

// resolveSubtaskID resolves a subtask identifier within a task by full ID
// or unique prefix.
func resolveSubtaskID(task *domain.Task, input string) (string, error) {
	for _, s := range task.Subtasks {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []domain.Subtask
	for _, s := range task.Subtasks {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return "", &domain.NotFoundError{Entity: "subtask", ID: input}
	case 1:
		return matches[0].ID, nil
	default:
		ids := make([]string, len(matches))
		for i, s := range matches {
			ids[i] = fmt.Sprintf("%s (%s)", s.ID[:8], s.Title)
		}
		return "", fmt.Errorf("ambiguous subtask ID %q matches: %s", input, strings.Join(ids, ", "))
	}
}

// resolveAssignee accepts a user ID or a case-insensitive name and returns
// the user ID. Empty input passes through so validation can report the
// missing assignee on its own field.
func resolveAssignee(app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	users := app.Store.Users()
	for _, u := range users {
		if u.ID == input {
			return u.ID, nil
		}
	}
	for _, u := range users {
		if strings.EqualFold(u.Name, input) {
			return u.ID, nil
		}
	}
	return "", &domain.NotFoundError{Entity: "user", ID: input}
}
