package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/nhle/task-tracker/internal/edit"
	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/theme"
	"github.com/nhle/task-tracker/internal/view"
)

// askInput runs a single validated text input and blocks until the
// value passes validation or the user aborts the form.
func askInput(title, placeholder string, validate func(string) error) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompting %q: %w", title, err)
	}
	return value, nil
}

// askPassword runs a masked input.
func askPassword(title string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompting %q: %w", title, err)
	}
	return value, nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(model.DateFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// printHeading prints a section heading with a full-width divider.
func printHeading(title string) {
	fmt.Println(theme.DividerStyle.Render(strings.Repeat("-", 100)))
	fmt.Println(theme.HeaderStyle.Render(title))
	fmt.Println()
}

func printError(msg string) {
	fmt.Println(theme.ErrorStyle.Render("\t" + msg))
}

func printSuccess(msg string) {
	fmt.Println(theme.SuccessStyle.Render(msg))
}

// editPrompter implements edit.Prompter on huh forms. Input-format
// validation (numeric selection, date shape) happens inside the form
// via Validate closures; domain failures arrive through ShowError.
type editPrompter struct{}

// ConfirmContinue asks the yes/no continue question. A Confirm field
// can only yield yes or no, so no re-prompt loop is needed here.
func (editPrompter) ConfirmContinue() (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title("Would you like to edit a task?").
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return ok, nil
}

// SelectTask asks for a task number or -1 to exit. Non-numeric input
// re-prompts inside the form.
func (editPrompter) SelectTask() (int, error) {
	raw, err := askInput(
		"Select a task to edit (e.g. enter '1' for Task 1), or '-1' to return to the Main Menu",
		"task number",
		func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("please enter a number only")
			}
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	choice, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing task selection: %w", err)
	}
	return choice, nil
}

// ChooseAction presents the three edit options. A Select field cannot
// yield an unrecognised code.
func (editPrompter) ChooseAction() (edit.Action, error) {
	var action edit.Action
	sel := huh.NewSelect[edit.Action]().
		Title("Please select an option").
		Options(
			huh.NewOption("mc - mark task as complete", edit.ActionMarkComplete),
			huh.NewOption("a - assign task to a different user", edit.ActionReassign),
			huh.NewOption("d - update due date", edit.ActionChangeDueDate),
		).
		Value(&action)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return 0, fmt.Errorf("edit option prompt: %w", err)
	}
	return action, nil
}

// AskAssignee asks for a username until validate accepts it.
func (editPrompter) AskAssignee(validate func(string) error) (string, error) {
	return askInput(
		"Enter the username of the person you wish to assign to this task",
		"username",
		validate,
	)
}

// AskDueDate asks for a due date until it parses.
func (editPrompter) AskDueDate() (time.Time, error) {
	raw, err := askInput(
		"Enter a new Due Date for the task (Format: YYYY-MM-DD)",
		"YYYY-MM-DD",
		validateDate,
	)
	if err != nil {
		return time.Time{}, err
	}
	return model.ParseDate(strings.TrimSpace(raw))
}

func (editPrompter) ShowEntry(e view.Entry) {
	fmt.Println(view.RenderEntry(e))
}

func (editPrompter) ShowError(msg string) {
	printError(msg)
}

func (editPrompter) ShowInfo(msg string) {
	printSuccess(msg)
}
