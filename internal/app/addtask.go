package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"

	"github.com/nhle/task-tracker/internal/model"
)

// addTask gathers a new task through a single form and appends it to
// durable storage. The assignee must already be registered; the due
// date must parse as YYYY-MM-DD. The assigned date is stamped today.
func (s *Session) addTask() error {
	printHeading("ADD A NEW TASK")

	var (
		assignee    string
		title       string
		description string
		dueDate     string
	)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username of the person assigned to this task").
			Value(&assignee).
			Validate(func(name string) error {
				if !s.Users.Exists(strings.TrimSpace(name)) {
					return fmt.Errorf("user not recognised")
				}
				return nil
			}),
		huh.NewInput().
			Title("Task Title").
			Value(&title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Task Description").
			Value(&description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD").
			Value(&dueDate).
			Validate(validateDate),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("add task form: %w", err)
	}

	dueAt, err := model.ParseDate(strings.TrimSpace(dueDate))
	if err != nil {
		return fmt.Errorf("parsing due date: %w", err)
	}

	task := model.NewTask(strings.TrimSpace(assignee), title, description, dueAt)
	if err := s.TaskStore.AppendOne(task); err != nil {
		return fmt.Errorf("appending task: %w", err)
	}
	s.Tasks = append(s.Tasks, task)

	printSuccess(fmt.Sprintf("Task %q successfully added.", title))
	s.Log.WithFields(logrus.Fields{
		"task_id":  task.ID,
		"assignee": task.Assignee,
		"due":      task.DueAt.Format(model.DateFormat),
	}).Info("task added")
	return nil
}
