package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are run in order on every open. Statements are written to be
// re-runnable; ALTER TABLE additions tolerate the duplicate-column error.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		avatar     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	// assigned_user_id deliberately carries no FK: a task may outlive its
	// assignee and renders as unassigned instead of failing.
	`CREATE TABLE IF NOT EXISTS tasks (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		start_date       TEXT NOT NULL,
		end_date         TEXT NOT NULL,
		assigned_user_id TEXT NOT NULL,
		completed        INTEGER NOT NULL DEFAULT 0,
		color            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subtasks (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		completed  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_start_date ON tasks(start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assigned_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subtasks_task ON subtasks(task_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
