package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/acarreno/roadmap/internal/domain"
)

// Task options

type TaskOption func(*domain.Task)

func WithDates(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedUserID = userID
	}
}

func WithCompleted(done bool) TaskOption {
	return func(t *domain.Task) {
		t.Completed = done
	}
}

func WithColor(c string) TaskOption {
	return func(t *domain.Task) {
		t.Color = c
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

// Day returns a UTC midnight date, the granularity tasks are stored at.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewTestTask builds a valid task spanning three days this month.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	now := time.Now().UTC()
	start := Day(now.Year(), now.Month(), 1)
	t := domain.Task{
		ID:             uuid.New().String(),
		Title:          title,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 2),
		AssignedUserID: "1",
		Subtasks:       []domain.Subtask{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestSubtask builds a pending subtask for the given task.
func NewTestSubtask(taskID, title string) domain.Subtask {
	return domain.Subtask{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestUser builds a user with a derived email address.
func NewTestUser(id, name string) domain.User {
	return domain.User{
		ID:    id,
		Name:  name,
		Email: id + "@example.com",
	}
}
