package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acarreno/roadmap/internal/db"
	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/repository"
)

// RepoStore backs the roadmap with a relational store behind the
// repository interfaces. Each mutation issues a targeted write and then
// reloads the whole aggregate, so the in-memory view is only as fresh as
// the last successful reload. There is no optimistic-concurrency check;
// concurrent writers resolve as last write wins.
type RepoStore struct {
	tasks    repository.TaskRepo
	subtasks repository.SubtaskRepo
	users    repository.UserRepo
	uow      db.UnitOfWork
	data     domain.Roadmap
}

// OpenRepoStore loads the aggregate from the repositories. When the user
// table is empty, the default seed users are inserted first (inside one
// transaction) so a fresh database starts with an assignable team.
func OpenRepoStore(ctx context.Context, tasks repository.TaskRepo, subtasks repository.SubtaskRepo, users repository.UserRepo, uow db.UnitOfWork) (*RepoStore, error) {
	s := &RepoStore{tasks: tasks, subtasks: subtasks, users: users, uow: uow}

	n, err := users.Count(ctx)
	if err != nil {
		return nil, wrapPersist("counting users", err)
	}
	if n == 0 {
		err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txUsers := repository.NewSQLiteUserRepo(tx)
			for _, u := range domain.DefaultUsers() {
				seed := u
				if err := txUsers.Create(ctx, &seed); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, wrapPersist("seeding users", err)
		}
	}

	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RepoStore) ListTasks() []domain.Task {
	return cloneTasks(s.data.Tasks)
}

func (s *RepoStore) FilterTasks(f Filter) []domain.Task {
	return applyFilter(s.data.Tasks, f)
}

func (s *RepoStore) GetTask(id string) (*domain.Task, error) {
	t := s.data.TaskByID(id)
	if t == nil {
		return nil, &domain.NotFoundError{Entity: "task", ID: id}
	}
	out := t.Clone()
	return &out, nil
}

func (s *RepoStore) Users() []domain.User {
	out := make([]domain.User, len(s.data.Users))
	copy(out, s.data.Users)
	return out
}

func (s *RepoStore) UserByID(id string) *domain.User {
	return s.data.UserByID(id)
}

func (s *RepoStore) CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error) {
	t, err := draftTask(draft)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.tasks.Create(ctx, &t); err != nil {
		return nil, wrapPersist("inserting task", err)
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s.GetTask(t.ID)
}

func (s *RepoStore) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	cur, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(cur); err != nil {
		return nil, err
	}
	cur.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, cur); err != nil {
		return nil, wrapPersist("updating task", err)
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s.GetTask(id)
}

func (s *RepoStore) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return wrapPersist("deleting task", err)
	}
	return s.reload(ctx)
}

func (s *RepoStore) AddSubtask(ctx context.Context, taskID, title string) (*domain.Subtask, error) {
	title, err := validateSubtaskTitle(title)
	if err != nil {
		return nil, err
	}

	sub := domain.Subtask{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	// Touch the parent first inside the transaction: an unknown task id
	// surfaces as NotFound before the subtask row exists.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		if err := txTasks.TouchUpdatedAt(ctx, taskID, time.Now().UTC()); err != nil {
			return err
		}
		return repository.NewSQLiteSubtaskRepo(tx).Create(ctx, &sub)
	})
	if err != nil {
		return nil, wrapPersist("inserting subtask", err)
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *RepoStore) ToggleSubtask(ctx context.Context, taskID, subtaskID string, completed bool) error {
	return s.UpdateSubtask(ctx, taskID, subtaskID, domain.SubtaskPatch{Completed: &completed})
}

func (s *RepoStore) UpdateSubtask(ctx context.Context, taskID, subtaskID string, patch domain.SubtaskPatch) error {
	sub, err := s.findSubtask(taskID, subtaskID)
	if err != nil {
		return err
	}
	if err := patch.Apply(sub); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSubtaskRepo(tx).Update(ctx, sub); err != nil {
			return err
		}
		return repository.NewSQLiteTaskRepo(tx).TouchUpdatedAt(ctx, taskID, time.Now().UTC())
	})
	if err != nil {
		return wrapPersist("updating subtask", err)
	}
	return s.reload(ctx)
}

func (s *RepoStore) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	if _, err := s.findSubtask(taskID, subtaskID); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSubtaskRepo(tx).Delete(ctx, subtaskID); err != nil {
			return err
		}
		return repository.NewSQLiteTaskRepo(tx).TouchUpdatedAt(ctx, taskID, time.Now().UTC())
	})
	if err != nil {
		return wrapPersist("deleting subtask", err)
	}
	return s.reload(ctx)
}

// findSubtask resolves a subtask through the cached aggregate, returning
// a detached copy safe to mutate before the write.
func (s *RepoStore) findSubtask(taskID, subtaskID string) (*domain.Subtask, error) {
	t := s.data.TaskByID(taskID)
	if t == nil {
		return nil, &domain.NotFoundError{Entity: "task", ID: taskID}
	}
	sub := t.Subtask(subtaskID)
	if sub == nil {
		return nil, &domain.NotFoundError{Entity: "subtask", ID: subtaskID}
	}
	out := *sub
	return &out, nil
}

// reload replaces the cached aggregate with a fresh read of everything.
func (s *RepoStore) reload(ctx context.Context) error {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return wrapPersist("reloading tasks", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return wrapPersist("reloading users", err)
	}

	s.data = domain.Roadmap{
		Tasks: make([]domain.Task, 0, len(tasks)),
		Users: make([]domain.User, 0, len(users)),
	}
	for _, t := range tasks {
		s.data.Tasks = append(s.data.Tasks, *t)
	}
	for _, u := range users {
		s.data.Users = append(s.data.Users, *u)
	}
	s.data.SortTasks()
	return nil
}
