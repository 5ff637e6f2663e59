package store

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/snapshot"
)

// SnapshotStore keeps the roadmap in memory and writes the whole snapshot
// file after every mutation. Last write wins.
type SnapshotStore struct {
	snap   *snapshot.Store
	data   domain.Roadmap
	logger *log.Logger
}

// OpenSnapshotStore loads the snapshot file into memory. A corrupt or
// unreadable snapshot is logged and replaced with an empty roadmap plus
// the default users; the planner starts rather than crashing.
func OpenSnapshotStore(snap *snapshot.Store, logger *log.Logger) (*SnapshotStore, error) {
	r, err := snap.Load()
	if err != nil {
		logger.Warn("snapshot unreadable, starting fresh", "path", snap.Path(), "err", err)
		r = &domain.Roadmap{Users: domain.DefaultUsers()}
	}
	r.SortTasks()
	return &SnapshotStore{snap: snap, data: *r, logger: logger}, nil
}

func (s *SnapshotStore) ListTasks() []domain.Task {
	return cloneTasks(s.data.Tasks)
}

func (s *SnapshotStore) FilterTasks(f Filter) []domain.Task {
	return applyFilter(s.data.Tasks, f)
}

func (s *SnapshotStore) GetTask(id string) (*domain.Task, error) {
	t := s.data.TaskByID(id)
	if t == nil {
		return nil, &domain.NotFoundError{Entity: "task", ID: id}
	}
	out := t.Clone()
	return &out, nil
}

func (s *SnapshotStore) Users() []domain.User {
	out := make([]domain.User, len(s.data.Users))
	copy(out, s.data.Users)
	return out
}

func (s *SnapshotStore) UserByID(id string) *domain.User {
	return s.data.UserByID(id)
}

func (s *SnapshotStore) CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error) {
	t, err := draftTask(draft)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now

	s.data.Tasks = append(s.data.Tasks, t)
	s.data.SortTasks()
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := t.Clone()
	return &out, nil
}

func (s *SnapshotStore) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	t := s.data.TaskByID(id)
	if t == nil {
		return nil, &domain.NotFoundError{Entity: "task", ID: id}
	}
	if err := patch.Apply(t); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()
	// A start-date change can move the task within the ordering.
	s.data.SortTasks()
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := s.data.TaskByID(id).Clone()
	return &out, nil
}

func (s *SnapshotStore) DeleteTask(ctx context.Context, id string) error {
	idx := -1
	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Entity: "task", ID: id}
	}
	s.data.Tasks = append(s.data.Tasks[:idx], s.data.Tasks[idx+1:]...)
	return s.persist()
}

func (s *SnapshotStore) AddSubtask(ctx context.Context, taskID, title string) (*domain.Subtask, error) {
	title, err := validateSubtaskTitle(title)
	if err != nil {
		return nil, err
	}
	t := s.data.TaskByID(taskID)
	if t == nil {
		return nil, &domain.NotFoundError{Entity: "task", ID: taskID}
	}

	sub := domain.Subtask{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	t.Subtasks = append(t.Subtasks, sub)
	t.UpdatedAt = time.Now().UTC()
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := sub
	return &out, nil
}

func (s *SnapshotStore) ToggleSubtask(ctx context.Context, taskID, subtaskID string, completed bool) error {
	return s.UpdateSubtask(ctx, taskID, subtaskID, domain.SubtaskPatch{Completed: &completed})
}

func (s *SnapshotStore) UpdateSubtask(ctx context.Context, taskID, subtaskID string, patch domain.SubtaskPatch) error {
	t := s.data.TaskByID(taskID)
	if t == nil {
		return &domain.NotFoundError{Entity: "task", ID: taskID}
	}
	sub := t.Subtask(subtaskID)
	if sub == nil {
		return &domain.NotFoundError{Entity: "subtask", ID: subtaskID}
	}
	if err := patch.Apply(sub); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.persist()
}

func (s *SnapshotStore) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	t := s.data.TaskByID(taskID)
	if t == nil {
		return &domain.NotFoundError{Entity: "task", ID: taskID}
	}
	idx := -1
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Entity: "subtask", ID: subtaskID}
	}
	t.Subtasks = append(t.Subtasks[:idx], t.Subtasks[idx+1:]...)
	t.UpdatedAt = time.Now().UTC()
	return s.persist()
}

func (s *SnapshotStore) persist() error {
	return wrapPersist("saving snapshot", s.snap.Save(&s.data))
}
