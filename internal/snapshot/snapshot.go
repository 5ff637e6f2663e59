// Package snapshot persists the whole roadmap as one JSON file, the
// local-device storage variant. Dates travel as ISO-8601 strings.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/acarreno/roadmap/internal/domain"
)

// Store reads and writes the roadmap snapshot file.
type Store struct {
	path string
}

// New creates a snapshot store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

type userJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type subtaskJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type taskJSON struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        time.Time     `json:"endDate"`
	AssignedUserID string        `json:"assignedUserId"`
	Completed      bool          `json:"completed"`
	Subtasks       []subtaskJSON `json:"subtasks"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Color          string        `json:"color,omitempty"`
}

type roadmapJSON struct {
	Tasks []taskJSON `json:"tasks"`
	Users []userJSON `json:"users"`
}

// Load reads the snapshot. A missing file yields an empty roadmap with the
// default seed users and no error; unreadable or malformed content yields
// a domain.PersistenceError so the caller can decide how to degrade.
func (s *Store) Load() (*domain.Roadmap, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &domain.Roadmap{Users: domain.DefaultUsers()}, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "reading snapshot", Err: err}
	}

	var wire roadmapJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &domain.PersistenceError{Op: "parsing snapshot", Err: err}
	}

	r := &domain.Roadmap{
		Tasks: make([]domain.Task, 0, len(wire.Tasks)),
		Users: make([]domain.User, 0, len(wire.Users)),
	}
	for _, u := range wire.Users {
		r.Users = append(r.Users, domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar})
	}
	for _, t := range wire.Tasks {
		task := domain.Task{
			ID:             t.ID,
			Title:          t.Title,
			Description:    t.Description,
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			AssignedUserID: t.AssignedUserID,
			Completed:      t.Completed,
			Color:          t.Color,
			CreatedAt:      t.CreatedAt,
			UpdatedAt:      t.UpdatedAt,
			Subtasks:       make([]domain.Subtask, 0, len(t.Subtasks)),
		}
		for _, st := range t.Subtasks {
			task.Subtasks = append(task.Subtasks, domain.Subtask{
				ID:        st.ID,
				TaskID:    t.ID,
				Title:     st.Title,
				Completed: st.Completed,
				CreatedAt: st.CreatedAt,
			})
		}
		r.Tasks = append(r.Tasks, task)
	}
	if len(r.Users) == 0 {
		r.Users = domain.DefaultUsers()
	}
	return r, nil
}

// Save writes the whole roadmap atomically: the snapshot is written to a
// temp file in the same directory and renamed over the target.
func (s *Store) Save(r *domain.Roadmap) error {
	wire := roadmapJSON{
		Tasks: make([]taskJSON, 0, len(r.Tasks)),
		Users: make([]userJSON, 0, len(r.Users)),
	}
	for _, u := range r.Users {
		wire.Users = append(wire.Users, userJSON{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar})
	}
	for _, t := range r.Tasks {
		tw := taskJSON{
			ID:             t.ID,
			Title:          t.Title,
			Description:    t.Description,
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			AssignedUserID: t.AssignedUserID,
			Completed:      t.Completed,
			Color:          t.Color,
			CreatedAt:      t.CreatedAt,
			UpdatedAt:      t.UpdatedAt,
			Subtasks:       make([]subtaskJSON, 0, len(t.Subtasks)),
		}
		for _, st := range t.Subtasks {
			tw.Subtasks = append(tw.Subtasks, subtaskJSON{
				ID:        st.ID,
				Title:     st.Title,
				Completed: st.Completed,
				CreatedAt: st.CreatedAt,
			})
		}
		wire.Tasks = append(wire.Tasks, tw)
	}

	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return &domain.PersistenceError{Op: "encoding snapshot", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.PersistenceError{Op: "creating snapshot directory", Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".roadmap-*.json")
	if err != nil {
		return &domain.PersistenceError{Op: "creating snapshot temp file", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.PersistenceError{Op: "writing snapshot", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Op: "writing snapshot", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Op: "replacing snapshot", Err: fmt.Errorf("rename: %w", err)}
	}
	return nil
}
