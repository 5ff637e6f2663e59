package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/acarreno/roadmap/internal/cli/formatter"
	"github.com/acarreno/roadmap/internal/domain"
	"github.com/acarreno/roadmap/internal/store"
	"github.com/acarreno/roadmap/internal/timeline"
)

// uiMode is the interaction state of the TUI: browsing a view, reading a
// task's detail pane, or filling the create/edit form.
type uiMode int

const (
	modeBrowse uiMode = iota
	modeDetail
	modeForm
)

type keyMap struct {
	List    key.Binding
	Week    key.Binding
	Month   key.Binding
	Quarter key.Binding
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	New     key.Binding
	Edit    key.Binding
	Done    key.Binding
	Delete  key.Binding
	Status  key.Binding
	Assign  key.Binding
	Toggle  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		List:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "list")),
		Week:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "week")),
		Month:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "month")),
		Quarter: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "quarter")),
		Prev:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←", "prev")),
		Next:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→", "next")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Done:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
		Assign:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assignee filter")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle subtask")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type tuiModel struct {
	app  *App
	keys keyMap

	mode     uiMode
	viewMode domain.ViewMode
	anchor   time.Time
	firstDay time.Weekday

	filter store.Filter

	// cursor indexes into the currently visible task slice.
	cursor    int
	detailID  string
	subCursor int

	form       *huh.Form
	formDraft  *taskFormDraft
	formTaskID string // empty when creating

	status string
	width  int
	height int
}

func newTUIModel(app *App, mode domain.ViewMode) tuiModel {
	return tuiModel{
		app:      app,
		keys:     defaultKeyMap(),
		viewMode: mode,
		anchor:   time.Now(),
		firstDay: app.Config.FirstDay(),
		filter:   store.Filter{Status: domain.StatusAll},
		width:    100,
		height:   30,
	}
}

func runTUI(app *App) error {
	return runTUIAt(app, domain.ViewList)
}

func runTUIAt(app *App, mode domain.ViewMode) error {
	p := tea.NewProgram(newTUIModel(app, mode), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// visibleTasks returns the filtered tasks shown by the active view, in
// display order.
func (m *tuiModel) visibleTasks() []domain.Task {
	tasks := m.app.Store.FilterTasks(m.filter)
	switch m.viewMode {
	case domain.ViewWeek:
		return visibleIn(tasks, timeline.WeekOf(m.anchor, m.firstDay))
	case domain.ViewMonth:
		grid := timeline.MonthGrid(m.anchor, m.firstDay)
		full := timeline.Window{Start: grid[0].Start, End: grid[len(grid)-1].End}
		return visibleIn(tasks, full)
	case domain.ViewQuarter:
		return visibleIn(tasks, timeline.QuarterOf(m.anchor))
	default:
		return tasks
	}
}

func (m *tuiModel) selectedTask() *domain.Task {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return nil
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	t := visible[m.cursor]
	return &t
}

func (m *tuiModel) shift(dir int) {
	switch m.viewMode {
	case domain.ViewWeek:
		m.anchor = timeline.ShiftWeeks(m.anchor, dir)
	case domain.ViewMonth:
		m.anchor = timeline.ShiftMonths(m.anchor, dir)
	case domain.ViewQuarter:
		m.anchor = timeline.ShiftQuarters(m.anchor, dir)
	}
}

func (m *tuiModel) cycleStatus() {
	switch m.filter.Status {
	case domain.StatusAll:
		m.filter.Status = domain.StatusPending
	case domain.StatusPending:
		m.filter.Status = domain.StatusCompleted
	default:
		m.filter.Status = domain.StatusAll
	}
}

func (m *tuiModel) cycleAssignee() {
	users := m.app.Store.Users()
	if len(users) == 0 {
		return
	}
	if m.filter.Assignee == "" {
		m.filter.Assignee = users[0].ID
		return
	}
	for i, u := range users {
		if u.ID == m.filter.Assignee {
			if i == len(users)-1 {
				m.filter.Assignee = ""
			} else {
				m.filter.Assignee = users[i+1].ID
			}
			return
		}
	}
	m.filter.Assignee = ""
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	if m.mode == modeForm && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.List):
		m.viewMode = domain.ViewList
	case key.Matches(msg, m.keys.Week):
		m.viewMode = domain.ViewWeek
	case key.Matches(msg, m.keys.Month):
		m.viewMode = domain.ViewMonth
	case key.Matches(msg, m.keys.Quarter):
		m.viewMode = domain.ViewQuarter
	case key.Matches(msg, m.keys.Prev):
		m.shift(-1)
	case key.Matches(msg, m.keys.Next):
		m.shift(1)
	case key.Matches(msg, m.keys.Today):
		m.anchor = time.Now()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleTasks())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Status):
		m.cycleStatus()
		m.cursor = 0
	case key.Matches(msg, m.keys.Assign):
		m.cycleAssignee()
		m.cursor = 0
	case key.Matches(msg, m.keys.Open):
		if t := m.selectedTask(); t != nil {
			m.mode = modeDetail
			m.detailID = t.ID
			m.subCursor = 0
		}
	case key.Matches(msg, m.keys.New):
		return m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if t := m.selectedTask(); t != nil {
			return m.openForm(t)
		}
	case key.Matches(msg, m.keys.Done):
		if t := m.selectedTask(); t != nil {
			completed := !t.Completed
			if _, err := m.app.Store.UpdateTask(context.Background(), t.ID, domain.TaskPatch{Completed: &completed}); err != nil {
				m.status = formatter.StyleRed.Render(err.Error())
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if t := m.selectedTask(); t != nil {
			if err := m.app.Store.DeleteTask(context.Background(), t.ID); err != nil {
				m.status = formatter.StyleRed.Render(err.Error())
			} else {
				m.status = fmt.Sprintf("Removed %s", t.Title)
				if m.cursor > 0 {
					m.cursor--
				}
			}
		}
	}
	return m, nil
}

func (m tuiModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, err := m.app.Store.GetTask(m.detailID)
	if err != nil {
		m.mode = modeBrowse
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
	case key.Matches(msg, m.keys.Up):
		if m.subCursor > 0 {
			m.subCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.subCursor < len(t.Subtasks)-1 {
			m.subCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(t.Subtasks) > 0 && m.subCursor < len(t.Subtasks) {
			sub := t.Subtasks[m.subCursor]
			if err := m.app.Store.ToggleSubtask(context.Background(), t.ID, sub.ID, !sub.Completed); err != nil {
				m.status = formatter.StyleRed.Render(err.Error())
			}
		}
	case key.Matches(msg, m.keys.Edit):
		return m.openForm(t)
	}
	return m, nil
}

func (m tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.mode = modeBrowse
		m.form = nil
		m.status = formatter.StyleDim.Render("Cancelled.")
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.mode = modeBrowse
		if err := m.submitForm(); err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
		}
		m.form = nil
	}
	return m, cmd
}

func (m *tuiModel) submitForm() error {
	d := m.formDraft
	start, err := time.Parse("2006-01-02", strings.TrimSpace(d.start))
	if err != nil {
		return &domain.ValidationError{Field: "startDate", Message: "invalid start date"}
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(d.end))
	if err != nil {
		return &domain.ValidationError{Field: "endDate", Message: "invalid end date"}
	}

	ctx := context.Background()
	if m.formTaskID == "" {
		t, err := m.app.Store.CreateTask(ctx, store.TaskDraft{
			Title:          d.title,
			Description:    d.description,
			StartDate:      start,
			EndDate:        end,
			AssignedUserID: d.assignee,
			Color:          d.color,
		})
		if err != nil {
			return err
		}
		m.status = fmt.Sprintf("Created %s", t.Title)
		return nil
	}

	patch := domain.TaskPatch{
		Title:          &d.title,
		Description:    &d.description,
		StartDate:      &start,
		EndDate:        &end,
		AssignedUserID: &d.assignee,
		Color:          &d.color,
	}
	t, err := m.app.Store.UpdateTask(ctx, m.formTaskID, patch)
	if err != nil {
		return err
	}
	m.status = fmt.Sprintf("Updated %s", t.Title)
	return nil
}

func (m tuiModel) openForm(t *domain.Task) (tea.Model, tea.Cmd) {
	draft := &taskFormDraft{}
	m.formTaskID = ""
	if t != nil {
		m.formTaskID = t.ID
		draft.title = t.Title
		draft.description = t.Description
		draft.start = t.StartDate.Format("2006-01-02")
		draft.end = t.EndDate.Format("2006-01-02")
		draft.assignee = t.AssignedUserID
		draft.color = t.Color
	} else {
		draft.start = time.Now().Format("2006-01-02")
		draft.end = time.Now().Format("2006-01-02")
	}

	m.formDraft = draft
	m.form = newTaskForm(m.app.Store.Users(), draft)
	m.mode = modeForm
	return m, m.form.Init()
}

func (m tuiModel) View() string {
	var body string
	switch m.mode {
	case modeForm:
		if m.form != nil {
			body = m.form.View()
		}
	case modeDetail:
		body = m.detailView()
	default:
		body = m.browseView()
	}

	help := m.helpLine()
	if m.status != "" {
		help = m.status + "\n" + help
	}
	return body + "\n" + help
}

func (m tuiModel) browseView() string {
	tasks := m.visibleTasks()
	users := m.app.Store.Users()

	var b strings.Builder
	b.WriteString(m.filterLine() + "\n\n")

	switch m.viewMode {
	case domain.ViewWeek:
		b.WriteString(renderWeekView(tasks, timeline.WeekOf(m.anchor, m.firstDay), m.width))
	case domain.ViewMonth:
		b.WriteString(renderMonthView(tasks, m.anchor, m.firstDay, m.width))
	case domain.ViewQuarter:
		b.WriteString(renderQuarterView(tasks, m.anchor, m.width))
	default:
		b.WriteString(renderListView(tasks, users))
	}

	if t := m.selectedTask(); t != nil {
		b.WriteString("\n" + formatter.StyleDim.Render("selected: ") + formatter.StyleBold.Render(t.Title) + "\n")
	}
	return b.String()
}

func (m tuiModel) detailView() string {
	t, err := m.app.Store.GetTask(m.detailID)
	if err != nil {
		return formatter.StyleRed.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(t.Title) + "  " + formatter.StatusIndicator(t.Completed) + "\n")
	b.WriteString(formatter.StyleDim.Render(formatter.ShortID(t.ID)) + "\n\n")
	if t.Description != "" {
		b.WriteString(t.Description + "\n\n")
	}
	b.WriteString(formatter.StyleBold.Render("Dates     ") + formatter.DateRange(t) + "\n")
	b.WriteString(formatter.StyleBold.Render("Assignee  ") + formatter.AssigneeName(t, m.app.Store.Users()) + "\n")

	if len(t.Subtasks) > 0 {
		b.WriteString("\n" + formatter.StyleBold.Render("Checklist ") + formatter.ChecklistSummary(t) + "\n")
		for i := range t.Subtasks {
			s := &t.Subtasks[i]
			cursor := "  "
			if i == m.subCursor {
				cursor = formatter.StyleHeader.Render("> ")
			}
			b.WriteString(cursor + formatter.StatusIndicator(s.Completed) + " " + s.Title + "\n")
		}
	}
	return b.String()
}

func (m tuiModel) filterLine() string {
	mode := formatter.StyleHeader.Render(strings.ToUpper(string(m.viewMode)))
	status := string(m.filter.Status)
	assignee := "everyone"
	if m.filter.Assignee != "" {
		if u := m.app.Store.UserByID(m.filter.Assignee); u != nil {
			assignee = u.Name
		} else {
			assignee = m.filter.Assignee
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		mode,
		formatter.StyleDim.Render(fmt.Sprintf("  status:%s  assignee:%s", status, assignee)),
	)
}

func (m tuiModel) helpLine() string {
	k := m.keys
	var parts []key.Binding
	switch m.mode {
	case modeDetail:
		parts = []key.Binding{k.Up, k.Down, k.Toggle, k.Edit, k.Back, k.Quit}
	case modeForm:
		parts = []key.Binding{k.Back}
	default:
		parts = []key.Binding{k.List, k.Week, k.Month, k.Quarter, k.Prev, k.Next, k.Today, k.Open, k.New, k.Edit, k.Done, k.Delete, k.Status, k.Assign, k.Quit}
	}
	items := make([]string, 0, len(parts))
	for _, b := range parts {
		items = append(items, fmt.Sprintf("%s %s",
			formatter.StyleBold.Render(b.Help().Key),
			formatter.StyleDim.Render(b.Help().Desc)))
	}
	return strings.Join(items, "  ")
}
