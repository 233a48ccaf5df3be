package store

import (
	"fmt"

	"github.com/nhle/task-tracker/internal/model"
)

// FileUserDirectory implements UserDirectory over a username;password
// file. The whole directory is held in memory for the session; order
// of registration is preserved because reports iterate it.
type FileUserDirectory struct {
	path  string
	order []string
	users map[string]model.User
}

// NewFileUserDirectory opens the user file at path and loads every
// account. A missing file is created with the default admin account.
func NewFileUserDirectory(path string) (*FileUserDirectory, error) {
	defaultRow := model.User{Username: model.AdminUsername, Password: "password"}.Row()
	if err := ensureFile(path, defaultRow+"\n"); err != nil {
		return nil, fmt.Errorf("initialising user file: %w", err)
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("reading user file: %w", err)
	}

	d := &FileUserDirectory{
		path:  path,
		users: make(map[string]model.User, len(rows)),
	}
	for i, row := range rows {
		u, err := model.ParseUserRow(row)
		if err != nil {
			return nil, fmt.Errorf("user file line %d: %w", i+1, err)
		}
		if _, dup := d.users[u.Username]; dup {
			return nil, fmt.Errorf("user file line %d: duplicate username %q", i+1, u.Username)
		}
		d.order = append(d.order, u.Username)
		d.users[u.Username] = u
	}

	return d, nil
}

// Usernames returns all registered usernames in file order.
func (d *FileUserDirectory) Usernames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Exists reports whether the username is registered.
func (d *FileUserDirectory) Exists(username string) bool {
	_, ok := d.users[username]
	return ok
}

// Authenticate compares the plaintext credentials against the
// directory.
func (d *FileUserDirectory) Authenticate(username, password string) bool {
	u, ok := d.users[username]
	return ok && u.Password == password
}

// IsAdmin reports whether the username carries admin privileges.
func (d *FileUserDirectory) IsAdmin(username string) bool {
	return username == model.AdminUsername
}

// Register adds the account and rewrites the full directory file, the
// same full-overwrite discipline the task store uses for edits.
func (d *FileUserDirectory) Register(u model.User) error {
	if d.Exists(u.Username) {
		return fmt.Errorf("username %q is already taken", u.Username)
	}

	d.order = append(d.order, u.Username)
	d.users[u.Username] = u

	rows := make([]string, 0, len(d.order))
	for _, name := range d.order {
		rows = append(rows, d.users[name].Row())
	}
	if err := writeRows(d.path, rows); err != nil {
		// Roll back the in-memory entry so the directory still
		// mirrors the file.
		d.order = d.order[:len(d.order)-1]
		delete(d.users, u.Username)
		return fmt.Errorf("rewriting user file: %w", err)
	}

	return nil
}

// Count returns the number of registered accounts.
func (d *FileUserDirectory) Count() int {
	return len(d.order)
}

// CountLines returns the raw line count of a durable file, used by the
// statistics view which reads the files rather than session state.
func CountLines(path string) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return len(rows), nil
}
