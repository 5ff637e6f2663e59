package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acarreno/roadmap/internal/db"
	"github.com/acarreno/roadmap/internal/domain"
)

const subtaskColumns = `id, task_id, title, completed, created_at`

// SQLiteSubtaskRepo implements SubtaskRepo using a SQLite database.
type SQLiteSubtaskRepo struct {
	db db.DBTX
}

// NewSQLiteSubtaskRepo creates a new SQLiteSubtaskRepo.
func NewSQLiteSubtaskRepo(dbtx db.DBTX) *SQLiteSubtaskRepo {
	return &SQLiteSubtaskRepo{db: dbtx}
}

func (r *SQLiteSubtaskRepo) Create(ctx context.Context, s *domain.Subtask) error {
	query := `INSERT INTO subtasks (id, task_id, title, completed, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.TaskID,
		s.Title,
		boolToInt(s.Completed),
		s.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting subtask: %w", err)
	}
	return nil
}

func (r *SQLiteSubtaskRepo) GetByID(ctx context.Context, id string) (*domain.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE id = ?`
	s, err := r.scanSubtask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "subtask", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("loading subtask: %w", err)
	}
	return s, nil
}

func (r *SQLiteSubtaskRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE task_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Subtask
	for rows.Next() {
		s, err := r.scanSubtask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *SQLiteSubtaskRepo) Update(ctx context.Context, s *domain.Subtask) error {
	query := `UPDATE subtasks SET title = ?, completed = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, s.Title, boolToInt(s.Completed), s.ID)
	if err != nil {
		return fmt.Errorf("updating subtask: %w", err)
	}
	return requireAffected(res, "subtask", s.ID)
}

func (r *SQLiteSubtaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subtask: %w", err)
	}
	return requireAffected(res, "subtask", id)
}

func (r *SQLiteSubtaskRepo) scanSubtask(row rowScanner) (*domain.Subtask, error) {
	var s domain.Subtask
	var completedInt int
	var createdStr string

	err := row.Scan(&s.ID, &s.TaskID, &s.Title, &completedInt, &createdStr)
	if err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.Completed = intToBool(completedInt)
	return &s, nil
}

// listAllGrouped loads every subtask keyed by parent task id, in creation
// order within each group. Used to hydrate task lists in one query.
func (r *SQLiteSubtaskRepo) listAllGrouped(ctx context.Context) (map[string][]domain.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.Subtask)
	for rows.Next() {
		s, err := r.scanSubtask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask: %w", err)
		}
		grouped[s.TaskID] = append(grouped[s.TaskID], *s)
	}
	return grouped, rows.Err()
}
