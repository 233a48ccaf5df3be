package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nhle/task-tracker/internal/model"
)

// login prompts for credentials until a registered username and its
// matching password are supplied. Unknown users and wrong passwords
// get distinct messages and restart the prompt.
func (s *Session) login() error {
	for {
		printHeading("LOGIN")

		username, err := askInput("Username", "", validateRequired("Username"))
		if err != nil {
			return fmt.Errorf("login username: %w", err)
		}
		if !s.Users.Exists(username) {
			printError("** That user does not exist. **")
			continue
		}

		password, err := askPassword("Password")
		if err != nil {
			return fmt.Errorf("login password: %w", err)
		}
		if !s.Users.Authenticate(username, password) {
			printError("** Incorrect password. **")
			continue
		}

		s.User = model.User{Username: username, Password: password}
		printSuccess("Login successful!")
		s.Log.WithFields(logrus.Fields{
			"user":  username,
			"admin": s.User.IsAdmin(),
		}).Info("login succeeded")
		return nil
	}
}
