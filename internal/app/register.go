package app

import (
	"fmt"

	"github.com/nhle/task-tracker/internal/model"
)

// registerUser adds a new account to the directory. Taken usernames
// re-prompt inside the form; mismatched password confirmations restart
// the password pair.
func (s *Session) registerUser() error {
	printHeading("REGISTER A NEW USER")

	username, err := askInput("Enter a username", "", func(name string) error {
		if err := validateRequired("Username")(name); err != nil {
			return err
		}
		if s.Users.Exists(name) {
			return fmt.Errorf("sorry, that username is already taken")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("registration username: %w", err)
	}

	var password string
	for {
		password, err = askPassword("Choose your password")
		if err != nil {
			return fmt.Errorf("registration password: %w", err)
		}
		confirm, err := askPassword("Confirm password")
		if err != nil {
			return fmt.Errorf("registration password confirmation: %w", err)
		}
		if password == confirm {
			break
		}
		printError("** Passwords do not match. Please try again. **")
	}

	if err := s.Users.Register(model.User{Username: username, Password: password}); err != nil {
		return fmt.Errorf("registering user: %w", err)
	}

	printSuccess(fmt.Sprintf("New user %q added successfully.", username))
	s.Log.WithField("user", username).Info("user registered")
	return nil
}
