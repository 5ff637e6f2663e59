package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acarreno/roadmap/internal/db"
	"github.com/acarreno/roadmap/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, description, start_date, end_date,
		assigned_user_id, completed, color, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, title, description, start_date, end_date,
		assigned_user_id, completed, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.AssignedUserID,
		boolToInt(t.Completed),
		t.Color,
		t.CreatedAt.Format(time.RFC3339Nano),
		t.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := r.scanTask(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "task", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	if err := r.attachSubtasks(ctx, []*domain.Task{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tasks ordered by start date, each with its subtasks
// attached in creation order.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY start_date, created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	if err := r.attachSubtasks(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, start_date = ?, end_date = ?,
		assigned_user_id = ?, completed = ?, color = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.AssignedUserID,
		boolToInt(t.Completed),
		t.Color,
		t.UpdatedAt.Format(time.RFC3339Nano),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

// Delete removes the task; its subtasks go with it via the FK cascade.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task", id)
}

// TouchUpdatedAt refreshes only the task's updated_at column, used when a
// subtask mutation must be reflected on the parent.
func (r *SQLiteTaskRepo) TouchUpdatedAt(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET updated_at = ? WHERE id = ?`, at.Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("touching task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var startStr, endStr, createdStr, updatedStr string
	var completedInt int

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&startStr,
		&endStr,
		&t.AssignedUserID,
		&completedInt,
		&t.Color,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, err
	}

	if t.StartDate, err = parseDate(startStr); err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	if t.EndDate, err = parseDate(endStr); err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	t.Completed = intToBool(completedInt)
	t.Subtasks = []domain.Subtask{}
	return &t, nil
}

// attachSubtasks loads the subtasks of all given tasks in one query and
// distributes them to their parents.
func (r *SQLiteTaskRepo) attachSubtasks(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	subRepo := NewSQLiteSubtaskRepo(r.db)
	byTask, err := subRepo.listAllGrouped(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if subs, ok := byTask[t.ID]; ok {
			t.Subtasks = subs
		}
	}
	return nil
}
