package model

import (
	"fmt"
	"strings"
)

// AdminUsername is the fixed account that carries admin privileges.
const AdminUsername = "admin"

// User is one registered account. Passwords are stored and compared
// in plaintext; the durable directory is a shared file every account
// authenticates against.
type User struct {
	Username string
	Password string
}

// IsAdmin reports whether this account holds admin privileges.
func (u User) IsAdmin() bool {
	return u.Username == AdminUsername
}

// Row serializes the user to its durable username;password form.
func (u User) Row() string {
	return u.Username + ";" + u.Password
}

// ParseUserRow parses one durable directory row.
func ParseUserRow(row string) (User, error) {
	fields := strings.Split(row, ";")
	if len(fields) != 2 {
		return User{}, fmt.Errorf("user row has %d fields, want 2", len(fields))
	}
	return User{Username: fields[0], Password: fields[1]}, nil
}
