package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/testutil"
	"github.com/acarreno/roadmap/internal/timeline"
)

func TestRenderWeekView(t *testing.T) {
	w := timeline.Window{Start: testutil.Day(2025, 3, 3), End: testutil.Day(2025, 3, 9)}
	tasks := []domain.Task{
		testutil.NewTestTask("Design review", testutil.WithDates(testutil.Day(2025, 3, 5), testutil.Day(2025, 3, 6))),
	}

	out := renderWeekView(tasks, w, 100)

	assert.Contains(t, out, "Week of Mar 3")
	assert.Contains(t, out, "Mar 9, 2025")
	assert.Contains(t, out, "Design review")
}

func TestRenderWeekView_ExcludesTasksOutsideWindow(t *testing.T) {
	w := timeline.Window{Start: testutil.Day(2025, 3, 3), End: testutil.Day(2025, 3, 9)}
	tasks := []domain.Task{
		testutil.NewTestTask("Next week", testutil.WithDates(testutil.Day(2025, 3, 10), testutil.Day(2025, 3, 12))),
	}

	out := renderWeekView(tasks, w, 100)

	assert.NotContains(t, out, "Next week")
	assert.Contains(t, out, "No tasks this week.")
}

func TestRenderMonthView(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Release prep", testutil.WithDates(testutil.Day(2025, 3, 10), testutil.Day(2025, 3, 21))),
	}

	out := renderMonthView(tasks, testutil.Day(2025, 3, 15), time.Monday, 100)

	assert.Contains(t, out, "March 2025")
	// The task spans two week rows, so its caption appears once per row.
	assert.GreaterOrEqual(t, strings.Count(out, "Release prep"), 2)
}

func TestRenderQuarterView(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Q1 initiative", testutil.WithDates(testutil.Day(2025, 1, 20), testutil.Day(2025, 3, 10))),
	}

	out := renderQuarterView(tasks, testutil.Day(2025, 2, 1), 100)

	assert.Contains(t, out, "Q1 2025")
	assert.Contains(t, out, "Q1 initiative")
	assert.Contains(t, out, "January")
	assert.Contains(t, out, "February")
	assert.Contains(t, out, "March")
}

func TestRenderListView_Empty(t *testing.T) {
	out := renderListView(nil, nil)
	assert.Contains(t, out, "No tasks.")
}

func TestTruncLabel(t *testing.T) {
	assert.Equal(t, "abc   ", truncLabel("abc", 6))
	assert.Equal(t, "abcde…", truncLabel("abcdefgh", 6))
}
