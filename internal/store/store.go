// Package store holds the in-memory roadmap aggregate and its mutation
// API. Every view reads through a Store; nothing else writes the data.
// Two backends exist: a JSON snapshot file written whole after each
// mutation, and a SQLite-backed variant issuing targeted writes followed
// by a full reload.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/acarreno/roadmap/internal/domain"
)

// Filter narrows the task list by assignee and/or completion status.
// Zero values mean "no restriction".
type Filter struct {
	Assignee string
	Status   domain.StatusFilter
}

// TaskDraft carries the user-supplied fields of a new task. Identifier,
// timestamps and the (empty) subtask list are assigned at creation.
type TaskDraft struct {
	Title          string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	AssignedUserID string
	Color          string
}

// Store exposes the roadmap aggregate and its mutations. Reads are served
// from memory; mutations synchronize to the storage backend and surface
// domain.ValidationError, domain.NotFoundError or domain.PersistenceError.
// On a persistence failure the in-memory state is not rolled back; the
// user action can simply be retried.
type Store interface {
	ListTasks() []domain.Task
	FilterTasks(f Filter) []domain.Task
	GetTask(id string) (*domain.Task, error)
	Users() []domain.User
	UserByID(id string) *domain.User

	CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	AddSubtask(ctx context.Context, taskID, title string) (*domain.Subtask, error)
	ToggleSubtask(ctx context.Context, taskID, subtaskID string, completed bool) error
	UpdateSubtask(ctx context.Context, taskID, subtaskID string, patch domain.SubtaskPatch) error
	DeleteSubtask(ctx context.Context, taskID, subtaskID string) error
}

// Matches reports whether the task passes the filter.
func (f Filter) Matches(t *domain.Task) bool {
	if f.Assignee != "" && t.AssignedUserID != f.Assignee {
		return false
	}
	switch f.Status {
	case domain.StatusPending:
		return !t.Completed
	case domain.StatusCompleted:
		return t.Completed
	}
	return true
}

// applyFilter returns deep copies of the tasks passing f, preserving the
// list order.
func applyFilter(tasks []domain.Task, f Filter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			out = append(out, tasks[i].Clone())
		}
	}
	return out
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// draftTask builds and validates a task from a draft. The caller assigns
// the id and timestamps.
func draftTask(d TaskDraft) (domain.Task, error) {
	t := domain.Task{
		Title:          strings.TrimSpace(d.Title),
		Description:    d.Description,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		AssignedUserID: strings.TrimSpace(d.AssignedUserID),
		Color:          d.Color,
		Subtasks:       []domain.Subtask{},
	}
	if err := t.Validate(); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func validateSubtaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &domain.ValidationError{Field: "title", Message: "subtask title is required"}
	}
	return title, nil
}

// wrapPersist converts backend failures into a PersistenceError while
// passing already-typed domain errors through untouched.
func wrapPersist(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *domain.PersistenceError
	if domain.IsValidation(err) || domain.IsNotFound(err) || errors.As(err, &pe) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
