package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acarreno/roadmap/internal/config"
	"github.com/acarreno/roadmap/internal/snapshot"
	"github.com/acarreno/roadmap/internal/store"
	"github.com/acarreno/roadmap/internal/teatest"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	snap := snapshot.New(filepath.Join(t.TempDir(), "roadmap.json"))
	st, err := store.OpenSnapshotStore(snap, log.New(io.Discard))
	require.NoError(t, err)
	return &App{
		Store:  st,
		Config: &config.Config{Storage: config.BackendSnapshot, WeekStart: "monday"},
	}
}

func seedTask(t *testing.T, app *App, title string) string {
	t.Helper()
	now := time.Now().UTC()
	created, err := app.Store.CreateTask(context.Background(), store.TaskDraft{
		Title:          title,
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, 2),
		AssignedUserID: "1",
	})
	require.NoError(t, err)
	return created.ID
}

func newTestDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newTUIModel(app, "list"), teatest.WithSize(100, 30))
	d.DrainInit()
	return d
}

func TestTUI_SwitchesViewModes(t *testing.T) {
	app := newTestApp(t)
	d := newTestDriver(t, app)

	assert.Contains(t, d.View(), "LIST")

	d.PressKey('2')
	assert.Contains(t, d.View(), "WEEK")
	assert.Contains(t, d.View(), "Week of")

	d.PressKey('3')
	assert.Contains(t, d.View(), "MONTH")

	d.PressKey('4')
	assert.Contains(t, d.View(), "QUARTER")

	d.PressKey('1')
	assert.Contains(t, d.View(), "LIST")
}

func TestTUI_MonthNavigation(t *testing.T) {
	app := newTestApp(t)
	d := newTestDriver(t, app)

	d.PressKey('3')
	thisMonth := time.Now().Format("January 2006")
	assert.Contains(t, d.View(), thisMonth)

	d.PressKey('l')
	next := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	assert.Contains(t, d.View(), next.Format("January 2006"))

	d.PressKey('t')
	assert.Contains(t, d.View(), thisMonth)
}

func TestTUI_DetailPaneTogglesSubtask(t *testing.T) {
	app := newTestApp(t)
	id := seedTask(t, app, "Ship release")
	_, err := app.Store.AddSubtask(context.Background(), id, "write changelog")
	require.NoError(t, err)

	d := newTestDriver(t, app)
	d.PressEnter()
	assert.Contains(t, d.View(), "Ship release")
	assert.Contains(t, d.View(), "write changelog")

	d.PressKey(' ')
	task, err := app.Store.GetTask(id)
	require.NoError(t, err)
	assert.True(t, task.Subtasks[0].Completed)

	d.PressEsc()
	assert.Contains(t, d.View(), "LIST")
}

func TestTUI_CompleteAndStatusFilter(t *testing.T) {
	app := newTestApp(t)
	id := seedTask(t, app, "Prototype")

	d := newTestDriver(t, app)
	d.PressKey('c')

	task, err := app.Store.GetTask(id)
	require.NoError(t, err)
	assert.True(t, task.Completed)

	d.PressKey('s')
	assert.Contains(t, d.View(), "status:pending")
	assert.NotContains(t, d.View(), "Prototype")

	d.PressKey('s')
	assert.Contains(t, d.View(), "status:completed")
	assert.Contains(t, d.View(), "Prototype")
}

func TestTUI_AssigneeFilterCycles(t *testing.T) {
	app := newTestApp(t)
	d := newTestDriver(t, app)

	assert.Contains(t, d.View(), "assignee:everyone")

	d.PressKey('a')
	first := app.Store.Users()[0]
	assert.Contains(t, d.View(), "assignee:"+first.Name)
}

func TestTUI_DeleteSelectedTask(t *testing.T) {
	app := newTestApp(t)
	seedTask(t, app, "Doomed")

	d := newTestDriver(t, app)
	d.PressKey('d')

	assert.Empty(t, app.Store.ListTasks())
	assert.Contains(t, d.View(), "Removed Doomed")
}

func TestTUI_FormOpensAndCancels(t *testing.T) {
	app := newTestApp(t)
	d := newTestDriver(t, app)

	d.PressKey('n')
	assert.Contains(t, d.View(), "Title")

	d.PressEsc()
	assert.Contains(t, d.View(), "Cancelled.")
	assert.Empty(t, app.Store.ListTasks())
}
