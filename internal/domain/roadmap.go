package domain

import "sort"

// Roadmap is the aggregate persisted and loaded as a unit: every task plus
// the known users.
type Roadmap struct {
	Tasks []Task
	Users []User
}

// UserByID returns the user with the given id, or nil when the id is
// unknown or dangling.
func (r *Roadmap) UserByID(id string) *User {
	for i := range r.Users {
		if r.Users[i].ID == id {
			return &r.Users[i]
		}
	}
	return nil
}

// TaskByID returns the task with the given id, or nil.
func (r *Roadmap) TaskByID(id string) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return &r.Tasks[i]
		}
	}
	return nil
}

// SortTasks orders tasks by start date ascending, breaking ties by
// creation time and then id so the order is deterministic.
func (r *Roadmap) SortTasks() {
	sort.SliceStable(r.Tasks, func(i, j int) bool {
		a, b := r.Tasks[i], r.Tasks[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Clone returns a deep copy of the roadmap.
func (r *Roadmap) Clone() Roadmap {
	out := Roadmap{
		Tasks: make([]Task, len(r.Tasks)),
		Users: make([]User, len(r.Users)),
	}
	for i := range r.Tasks {
		out.Tasks[i] = r.Tasks[i].Clone()
	}
	copy(out.Users, r.Users)
	return out
}
