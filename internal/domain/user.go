package domain

import "strings"

type User struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// Initials returns up to two uppercase initials for avatar-less display.
func (u *User) Initials() string {
	fields := strings.Fields(u.Name)
	var b strings.Builder
	for i := 0; i < len(fields) && i < 2; i++ {
		r := []rune(fields[i])
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

// DefaultUsers returns the seed team used when no user data exists yet.
func DefaultUsers() []User {
	return []User{
		{ID: "1", Name: "Ana García", Email: "ana@empresa.com"},
		{ID: "2", Name: "Carlos López", Email: "carlos@empresa.com"},
		{ID: "3", Name: "María Rodríguez", Email: "maria@empresa.com"},
		{ID: "4", Name: "Juan Pérez", Email: "juan@empresa.com"},
		{ID: "5", Name: "Laura Martín", Email: "laura@empresa.com"},
	}
}
