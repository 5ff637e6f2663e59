package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/repository"
	"github.com/acarreno/roadmap/internal/snapshot"
	"github.com/acarreno/roadmap/internal/testutil"
)

// Both Store implementations must behave identically from the caller's
// side, so the behavioral suite runs against each.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	snap := snapshot.New(filepath.Join(t.TempDir(), "roadmap.json"))
	snapStore, err := OpenSnapshotStore(snap, log.New(io.Discard))
	require.NoError(t, err)

	database := testutil.NewTestDB(t)
	repoStore, err := OpenRepoStore(context.Background(),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteSubtaskRepo(database),
		repository.NewSQLiteUserRepo(database),
		testutil.NewTestUoW(database),
	)
	require.NoError(t, err)

	return map[string]Store{"snapshot": snapStore, "sqlite": repoStore}
}

func draft(title string, start, end time.Time) TaskDraft {
	return TaskDraft{
		Title:          title,
		StartDate:      start,
		EndDate:        end,
		AssignedUserID: "1",
	}
}

func TestStore_CreateTask(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := s.CreateTask(ctx, draft("Kickoff", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)

			assert.NotEmpty(t, created.ID)
			assert.Empty(t, created.Subtasks)
			assert.False(t, created.CreatedAt.IsZero())
			assert.Equal(t, created.CreatedAt, created.UpdatedAt)

			tasks := s.ListTasks()
			require.Len(t, tasks, 1)
			assert.Equal(t, "Kickoff", tasks[0].Title)
		})
	}
}

func TestStore_CreateTask_BlankTitleRejected(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateTask(context.Background(), draft("   ", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "title", ve.Field)
			assert.Empty(t, s.ListTasks(), "nothing may be stored on rejection")
		})
	}
}

func TestStore_CreateTask_InvertedDatesRejected(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateTask(context.Background(), draft("Backwards", testutil.Day(2025, 6, 10), testutil.Day(2025, 6, 1)))

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "endDate", ve.Field)
		})
	}
}

func TestStore_ListTasks_OrderedByStartDate(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := s.CreateTask(ctx, draft("Later", testutil.Day(2025, 5, 1), testutil.Day(2025, 5, 3)))
			require.NoError(t, err)
			_, err = s.CreateTask(ctx, draft("Earlier", testutil.Day(2025, 4, 1), testutil.Day(2025, 4, 3)))
			require.NoError(t, err)

			tasks := s.ListTasks()
			require.Len(t, tasks, 2)
			assert.Equal(t, "Earlier", tasks[0].Title, "insert order must not leak into list order")
			assert.Equal(t, "Later", tasks[1].Title)
		})
	}
}

func TestStore_UpdateTask_EmptyPatchBumpsOnlyUpdatedAt(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Stable", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)

			time.Sleep(5 * time.Millisecond)
			updated, err := s.UpdateTask(ctx, created.ID, domain.TaskPatch{})
			require.NoError(t, err)

			assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
			assert.Equal(t, created.Title, updated.Title)
			assert.True(t, created.StartDate.Equal(updated.StartDate))
			assert.True(t, created.EndDate.Equal(updated.EndDate))
			assert.Equal(t, created.AssignedUserID, updated.AssignedUserID)
			assert.Equal(t, created.Completed, updated.Completed)
		})
	}
}

func TestStore_UpdateTask_RejectsInvertedDates(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Guarded", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)

			badEnd := testutil.Day(2025, 3, 1)
			_, err = s.UpdateTask(ctx, created.ID, domain.TaskPatch{EndDate: &badEnd})
			assert.True(t, domain.IsValidation(err))

			got, err := s.GetTask(created.ID)
			require.NoError(t, err)
			assert.True(t, got.EndDate.Equal(created.EndDate), "rejected edit must not stick")
		})
	}
}

func TestStore_UpdateTask_StartDateChangeReorders(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first, err := s.CreateTask(ctx, draft("First", testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 2)))
			require.NoError(t, err)
			_, err = s.CreateTask(ctx, draft("Second", testutil.Day(2025, 3, 10), testutil.Day(2025, 3, 11)))
			require.NoError(t, err)

			newStart := testutil.Day(2025, 3, 20)
			newEnd := testutil.Day(2025, 3, 21)
			_, err = s.UpdateTask(ctx, first.ID, domain.TaskPatch{StartDate: &newStart, EndDate: &newEnd})
			require.NoError(t, err)

			tasks := s.ListTasks()
			assert.Equal(t, "Second", tasks[0].Title)
			assert.Equal(t, "First", tasks[1].Title)
		})
	}
}

func TestStore_UpdateTask_UnknownID(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.UpdateTask(context.Background(), "missing", domain.TaskPatch{})
			assert.True(t, domain.IsNotFound(err))
		})
	}
}

func TestStore_DeleteTask_ThenSubtaskOpsFail(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Doomed", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)
			_, err = s.AddSubtask(ctx, created.ID, "cleanup")
			require.NoError(t, err)

			require.NoError(t, s.DeleteTask(ctx, created.ID))

			_, err = s.AddSubtask(ctx, created.ID, "x")
			assert.True(t, domain.IsNotFound(err), "deleted task must not accept subtasks")

			assert.True(t, domain.IsNotFound(s.DeleteTask(ctx, created.ID)), "second delete reports not found")
			assert.Empty(t, s.ListTasks())
		})
	}
}

func TestStore_AddSubtask(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Parent", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)

			time.Sleep(5 * time.Millisecond)
			sub, err := s.AddSubtask(ctx, created.ID, "  write intro  ")
			require.NoError(t, err)

			assert.Equal(t, "write intro", sub.Title, "title is trimmed")
			assert.False(t, sub.Completed)

			got, err := s.GetTask(created.ID)
			require.NoError(t, err)
			require.Len(t, got.Subtasks, 1)
			assert.True(t, got.UpdatedAt.After(created.UpdatedAt), "subtask mutation refreshes the parent")
		})
	}
}

func TestStore_AddSubtask_BlankTitle(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Parent", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)

			_, err = s.AddSubtask(ctx, created.ID, "   ")
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestStore_ToggleSubtask(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Parent", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)
			sub, err := s.AddSubtask(ctx, created.ID, "step one")
			require.NoError(t, err)

			require.NoError(t, s.ToggleSubtask(ctx, created.ID, sub.ID, true))

			got, err := s.GetTask(created.ID)
			require.NoError(t, err)
			assert.True(t, got.Subtasks[0].Completed)

			require.NoError(t, s.ToggleSubtask(ctx, created.ID, sub.ID, false))
			got, err = s.GetTask(created.ID)
			require.NoError(t, err)
			assert.False(t, got.Subtasks[0].Completed)
		})
	}
}

func TestStore_DeleteSubtask(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Parent", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)
			sub, err := s.AddSubtask(ctx, created.ID, "step one")
			require.NoError(t, err)

			require.NoError(t, s.DeleteSubtask(ctx, created.ID, sub.ID))

			got, err := s.GetTask(created.ID)
			require.NoError(t, err)
			assert.Empty(t, got.Subtasks)

			assert.True(t, domain.IsNotFound(s.DeleteSubtask(ctx, created.ID, sub.ID)))
		})
	}
}

func TestStore_SubtaskOpsOnUnknownSubtask(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Parent", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)

			assert.True(t, domain.IsNotFound(s.ToggleSubtask(ctx, created.ID, "missing", true)))
			assert.True(t, domain.IsNotFound(s.DeleteSubtask(ctx, created.ID, "missing")))
		})
	}
}

func TestStore_FilterTasks(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			d1 := draft("Ana pending", testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 2))
			_, err := s.CreateTask(ctx, d1)
			require.NoError(t, err)

			d2 := draft("Carlos pending", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 4))
			d2.AssignedUserID = "2"
			_, err = s.CreateTask(ctx, d2)
			require.NoError(t, err)

			d3 := draft("Ana done", testutil.Day(2025, 3, 5), testutil.Day(2025, 3, 6))
			done, err := s.CreateTask(ctx, d3)
			require.NoError(t, err)
			completed := true
			_, err = s.UpdateTask(ctx, done.ID, domain.TaskPatch{Completed: &completed})
			require.NoError(t, err)

			all := s.FilterTasks(Filter{Status: domain.StatusAll})
			assert.Len(t, all, 3)

			ana := s.FilterTasks(Filter{Assignee: "1"})
			assert.Len(t, ana, 2)

			pending := s.FilterTasks(Filter{Status: domain.StatusPending})
			assert.Len(t, pending, 2)

			anaDone := s.FilterTasks(Filter{Assignee: "1", Status: domain.StatusCompleted})
			require.Len(t, anaDone, 1)
			assert.Equal(t, "Ana done", anaDone[0].Title)

			// Filtering composes with list ordering.
			assert.Equal(t, "Ana pending", ana[0].Title)
			assert.Equal(t, "Ana done", ana[1].Title)
		})
	}
}

func TestStore_UsersAndDanglingAssignee(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			users := s.Users()
			require.Len(t, users, 5, "fresh stores carry the seed team")
			assert.NotNil(t, s.UserByID("1"))
			assert.Nil(t, s.UserByID("ghost"))

			// A task may reference a user nobody knows; creation still works.
			d := draft("Orphaned", testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 2))
			d.AssignedUserID = "ghost"
			created, err := s.CreateTask(context.Background(), d)
			require.NoError(t, err)
			assert.Nil(t, s.UserByID(created.AssignedUserID))
		})
	}
}

func TestStore_ReturnedTasksAreDetached(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.CreateTask(ctx, draft("Guard", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
			require.NoError(t, err)
			_, err = s.AddSubtask(ctx, created.ID, "only one")
			require.NoError(t, err)

			leaked := s.ListTasks()
			leaked[0].Title = "mutated"
			leaked[0].Subtasks[0].Title = "mutated"

			got, err := s.GetTask(created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Guard", got.Title)
			assert.Equal(t, "only one", got.Subtasks[0].Title)
		})
	}
}

func TestSnapshotStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "roadmap.json")
	logger := log.New(io.Discard)

	first, err := OpenSnapshotStore(snapshot.New(path), logger)
	require.NoError(t, err)
	created, err := first.CreateTask(ctx, draft("Persisted", testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	require.NoError(t, err)
	_, err = first.AddSubtask(ctx, created.ID, "survives reopen")
	require.NoError(t, err)

	second, err := OpenSnapshotStore(snapshot.New(path), logger)
	require.NoError(t, err)

	tasks := second.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Persisted", tasks[0].Title)
	require.Len(t, tasks[0].Subtasks, 1)
	assert.Equal(t, "survives reopen", tasks[0].Subtasks[0].Title)
}

func TestSnapshotStore_CorruptSnapshotStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	s, err := OpenSnapshotStore(snapshot.New(path), log.New(io.Discard))

	require.NoError(t, err, "a corrupt snapshot degrades to an empty roadmap")
	assert.Empty(t, s.ListTasks())
	assert.Len(t, s.Users(), 5)
}

func TestRepoStore_SeedsUsersOnce(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	open := func() *RepoStore {
		s, err := OpenRepoStore(ctx,
			repository.NewSQLiteTaskRepo(database),
			repository.NewSQLiteSubtaskRepo(database),
			repository.NewSQLiteUserRepo(database),
			testutil.NewTestUoW(database),
		)
		require.NoError(t, err)
		return s
	}

	first := open()
	require.Len(t, first.Users(), 5)

	second := open()
	assert.Len(t, second.Users(), 5, "reopening must not duplicate the seed team")
}
