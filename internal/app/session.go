// Package app wires the interactive session: login, the main menu,
// and the flows behind each menu option. Every operation blocks at an
// input boundary; exactly one logical operation is ever in flight.
package app

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"

	"github.com/nhle/task-tracker/internal/edit"
	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/report"
	"github.com/nhle/task-tracker/internal/store"
	"github.com/nhle/task-tracker/internal/view"
)

// menu option codes, matching the historical single-letter commands.
type menuChoice string

const (
	menuRegister   menuChoice = "r"
	menuAddTask    menuChoice = "a"
	menuViewAll    menuChoice = "va"
	menuViewMine   menuChoice = "vm"
	menuReports    menuChoice = "gr"
	menuStatistics menuChoice = "ds"
	menuExit       menuChoice = "e"
)

// Session is the application state for one logged-in user: the master
// task list loaded at startup, the stores behind it, and the current
// identity. It is created by New and torn down when Run returns.
type Session struct {
	Config    *model.AppConfig
	Tasks     []model.Task
	TaskStore *store.FileTaskStore
	Users     *store.FileUserDirectory
	User      model.User
	Log       *logrus.Logger
}

// New loads the master task list and the user directory, then runs
// the login prompt to establish the session identity.
func New(cfg *model.AppConfig, log *logrus.Logger) (*Session, error) {
	taskStore, err := store.NewFileTaskStore(cfg.Storage.TasksPath())
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	tasks, err := taskStore.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	users, err := store.NewFileUserDirectory(cfg.Storage.UsersPath())
	if err != nil {
		return nil, fmt.Errorf("opening user directory: %w", err)
	}

	s := &Session{
		Config:    cfg,
		Tasks:     tasks,
		TaskStore: taskStore,
		Users:     users,
		Log:       log,
	}

	if err := s.login(); err != nil {
		return nil, err
	}

	return s, nil
}

// Run presents the main menu until the user exits.
func (s *Session) Run() error {
	for {
		choice, err := s.promptMenu()
		if err != nil {
			return fmt.Errorf("main menu: %w", err)
		}

		switch choice {
		case menuRegister:
			err = s.registerUser()
		case menuAddTask:
			err = s.addTask()
		case menuViewAll:
			err = s.viewAll()
		case menuViewMine:
			err = s.viewMine()
		case menuReports:
			err = s.generateReports()
		case menuStatistics:
			err = s.displayStatistics()
		case menuExit:
			printHeading("Goodbye!")
			s.Log.WithField("user", s.User.Username).Info("session ended")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) promptMenu() (menuChoice, error) {
	var choice menuChoice
	sel := huh.NewSelect[menuChoice]().
		Title("Welcome to the Main Menu! Please select one of the following options:").
		Options(
			huh.NewOption("r  - register a user", menuRegister),
			huh.NewOption("a  - add a task", menuAddTask),
			huh.NewOption("va - view all tasks", menuViewAll),
			huh.NewOption("vm - view my tasks", menuViewMine),
			huh.NewOption("gr - generate reports", menuReports),
			huh.NewOption("ds - display statistics", menuStatistics),
			huh.NewOption("e  - exit", menuExit),
		).
		Value(&choice)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// viewAll renders the master listing. The admin may then edit any
// task; the permitted set is every master position.
func (s *Session) viewAll() error {
	printHeading("VIEW ALL TASKS")

	entries := view.All(s.Tasks)
	fmt.Println(view.RenderList(entries))

	if !s.User.IsAdmin() {
		return nil
	}
	return s.runEditWorkflow(view.Positions(entries))
}

// viewMine renders the caller's filtered listing, keeping master
// positions, and chains into editing with just those positions.
func (s *Session) viewMine() error {
	printHeading("VIEW MY TASKS")

	entries := view.ForUser(s.Tasks, s.User.Username)
	if len(entries) == 0 {
		fmt.Println("You do not currently have any assigned tasks.")
		return nil
	}

	fmt.Println(view.RenderList(entries))
	return s.runEditWorkflow(view.Positions(entries))
}

func (s *Session) runEditWorkflow(permitted []int) error {
	w := &edit.Workflow{
		Tasks:    s.Tasks,
		Store:    s.TaskStore,
		Users:    s.Users,
		Prompter: editPrompter{},
		Log:      s.Log,
	}
	if err := w.Run(permitted); err != nil {
		return fmt.Errorf("edit workflow: %w", err)
	}
	// Workflow mutations land in the shared backing array; keep the
	// session slice header in sync regardless.
	s.Tasks = w.Tasks
	return nil
}

// generateReports computes both overviews, prints them, and persists
// each verbatim to its artifact file.
func (s *Session) generateReports() error {
	printHeading("GENERATE REPORTS")

	taskText, userText, err := report.Generate(
		s.Tasks,
		s.Users.Usernames(),
		model.Today(),
		s.Config.Storage.TaskOverviewPath(),
		s.Config.Storage.UserOverviewPath(),
	)
	if err != nil {
		return fmt.Errorf("generating reports: %w", err)
	}

	fmt.Println(taskText)
	fmt.Println(userText)

	s.Log.WithFields(logrus.Fields{
		"tasks": len(s.Tasks),
		"users": s.Users.Count(),
	}).Info("reports generated")
	return nil
}

// displayStatistics shows quick counts for the admin, read back from
// the durable files rather than session state.
func (s *Session) displayStatistics() error {
	printHeading("DISPLAY STATISTICS")

	if !s.User.IsAdmin() {
		printError("Sorry, you are not authorised to display statistics.")
		return nil
	}

	totalUsers, err := store.CountLines(s.Config.Storage.UsersPath())
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	totalTasks, err := store.CountLines(s.Config.Storage.TasksPath())
	if err != nil {
		return fmt.Errorf("counting tasks: %w", err)
	}

	fmt.Println("------------------------------------")
	fmt.Printf("Total number of users: \t\t %d\n", totalUsers)
	fmt.Printf("Total number of tasks: \t\t %d\n", totalTasks)
	fmt.Println("------------------------------------")
	return nil
}
