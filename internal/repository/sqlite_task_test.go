package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/testutil"
)

func setupTaskRepos(t *testing.T) (context.Context, *SQLiteTaskRepo, *SQLiteSubtaskRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return context.Background(), NewSQLiteTaskRepo(database), NewSQLiteSubtaskRepo(database)
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)

	task := testutil.NewTestTask("Design review",
		testutil.WithDates(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)),
		testutil.WithDescription("walk the mocks"),
		testutil.WithColor("#fabd2f"),
	)
	require.NoError(t, tasks.Create(ctx, &task))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)

	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Color, got.Color)
	assert.True(t, got.StartDate.Equal(testutil.Day(2025, 3, 3)))
	assert.True(t, got.EndDate.Equal(testutil.Day(2025, 3, 7)))
	assert.NotNil(t, got.Subtasks)
	assert.Empty(t, got.Subtasks)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)

	_, err := tasks.GetByID(ctx, "missing")

	var nfe *domain.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "task", nfe.Entity)
}

func TestTaskRepo_List_OrderedWithSubtasksAttached(t *testing.T) {
	ctx, tasks, subtasks := setupTaskRepos(t)

	late := testutil.NewTestTask("Late", testutil.WithDates(testutil.Day(2025, 4, 1), testutil.Day(2025, 4, 2)))
	early := testutil.NewTestTask("Early", testutil.WithDates(testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 2)))
	require.NoError(t, tasks.Create(ctx, &late))
	require.NoError(t, tasks.Create(ctx, &early))

	sub := testutil.NewTestSubtask(early.ID, "check the numbers")
	require.NoError(t, subtasks.Create(ctx, &sub))

	got, err := tasks.List(ctx)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Title)
	require.Len(t, got[0].Subtasks, 1)
	assert.Equal(t, "check the numbers", got[0].Subtasks[0].Title)
	assert.Empty(t, got[1].Subtasks)
}

func TestTaskRepo_Update(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)

	task := testutil.NewTestTask("Before")
	require.NoError(t, tasks.Create(ctx, &task))

	task.Title = "After"
	task.Completed = true
	task.UpdatedAt = time.Now().UTC().Add(time.Minute)
	require.NoError(t, tasks.Update(ctx, &task))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.True(t, got.Completed)
}

func TestTaskRepo_Update_NotFound(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)
	ghost := testutil.NewTestTask("Ghost")
	assert.True(t, domain.IsNotFound(tasks.Update(ctx, &ghost)))
}

func TestTaskRepo_Delete_CascadesSubtasks(t *testing.T) {
	ctx, tasks, subtasks := setupTaskRepos(t)

	task := testutil.NewTestTask("Parent")
	require.NoError(t, tasks.Create(ctx, &task))
	sub := testutil.NewTestSubtask(task.ID, "child")
	require.NoError(t, subtasks.Create(ctx, &sub))

	require.NoError(t, tasks.Delete(ctx, task.ID))

	_, err := subtasks.GetByID(ctx, sub.ID)
	assert.True(t, domain.IsNotFound(err), "subtasks must not survive their task")

	assert.True(t, domain.IsNotFound(tasks.Delete(ctx, task.ID)))
}

func TestTaskRepo_TouchUpdatedAt(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)

	task := testutil.NewTestTask("Touched")
	require.NoError(t, tasks.Create(ctx, &task))

	at := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, tasks.TouchUpdatedAt(ctx, task.ID, at))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(at))
	assert.Equal(t, task.Title, got.Title)

	assert.True(t, domain.IsNotFound(tasks.TouchUpdatedAt(ctx, "missing", at)))
}
