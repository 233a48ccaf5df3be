// Package store owns the durable flat-file representation of tasks
// and the user directory. Tasks are one semicolon-delimited row per
// line; row order is identity, so PersistAll must preserve it.
package store

import "github.com/nhle/task-tracker/internal/model"

// TaskStore is the persistence contract for the ordered task list.
type TaskStore interface {
	// LoadAll parses the durable file into the ordered task list.
	// A malformed row is an error; startup treats it as fatal.
	LoadAll() ([]model.Task, error)

	// AppendOne adds a newly created task without rewriting the
	// existing rows.
	AppendOne(t model.Task) error

	// PersistAll overwrites the durable file with the given list,
	// preserving order.
	PersistAll(tasks []model.Task) error
}

// UserDirectory supplies the set of registered accounts.
type UserDirectory interface {
	// Usernames returns every registered username in directory
	// order (the order rows appear in the durable file).
	Usernames() []string

	// Exists reports whether the username is registered.
	Exists(username string) bool

	// IsAdmin reports whether the username carries admin privileges.
	IsAdmin(username string) bool

	// Authenticate checks a plaintext username/password pair.
	Authenticate(username, password string) bool

	// Register adds a new account and rewrites the directory file.
	Register(u model.User) error
}
