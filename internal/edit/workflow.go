// Package edit drives the interactive mutation of a single task:
// completion, reassignment, or a due-date change. The flow is an
// explicit state machine; every validation failure is a named signal
// consumed by the retry loop rather than control flow that escapes to
// the caller. Retries are unbounded: the only exits are the caller
// declining to continue or the exit sentinel at task selection.
package edit

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/store"
	"github.com/nhle/task-tracker/internal/view"
)

// ExitChoice is the sentinel a caller enters at task selection to
// leave the workflow immediately, with nothing persisted.
const ExitChoice = -1

// Failure signals surfaced to the retry loop. Each maps to one short
// user-facing message and never crosses the workflow boundary.
var (
	// ErrNotPermitted: the position exists in the master list but is
	// outside the caller's permitted set.
	ErrNotPermitted = errors.New("task is not assigned to the caller")

	// ErrUnknownChoice: the position does not exist in the master
	// list at all.
	ErrUnknownChoice = errors.New("choice does not match any task")

	// ErrAlreadyComplete: completed tasks can no longer be edited.
	ErrAlreadyComplete = errors.New("task is already complete")

	// ErrStaleSelection: the task at the recorded position is no
	// longer the one that was selected.
	ErrStaleSelection = errors.New("selected task moved before the edit was applied")
)

// Action is one of the three edit options.
type Action int

const (
	ActionMarkComplete Action = iota
	ActionReassign
	ActionChangeDueDate
)

// Prompter supplies the human side of the workflow. Implementations
// own input-format validation (numeric selection, date shape) and
// re-prompt locally; domain validation stays in the workflow.
type Prompter interface {
	// ConfirmContinue asks whether the caller wants to edit a task.
	// Implementations re-prompt until they get a clear yes or no.
	ConfirmContinue() (bool, error)

	// SelectTask asks for a task number or ExitChoice.
	// Implementations re-prompt on non-numeric input.
	SelectTask() (int, error)

	// ChooseAction asks which of the three edit options to apply.
	// Implementations re-prompt on unrecognised option codes.
	ChooseAction() (Action, error)

	// AskAssignee asks for a username, re-prompting until validate
	// accepts it.
	AskAssignee(validate func(string) error) (string, error)

	// AskDueDate asks for a calendar date, re-prompting until the
	// input parses as YYYY-MM-DD. No bounds are applied; past dates
	// are accepted.
	AskDueDate() (time.Time, error)

	// ShowEntry displays the selected task before the edit menu.
	ShowEntry(e view.Entry)

	// ShowError displays a short failure message ahead of the next
	// prompt.
	ShowError(msg string)

	// ShowInfo displays a confirmation after a successful edit.
	ShowInfo(msg string)
}

// workflow states.
type state int

const (
	stateConfirm state = iota
	stateSelect
	stateEdit
	statePersist
	stateDone
)

// Workflow mutates tasks in the master list by position and flushes
// the whole list after every committed edit.
type Workflow struct {
	Tasks    []model.Task
	Store    store.TaskStore
	Users    store.UserDirectory
	Prompter Prompter
	Log      *logrus.Logger

	// Now returns the current date, injectable for tests.
	Now func() time.Time
}

// Run drives the workflow until the caller exits. permitted is the
// set of master positions this caller may target: the full set for an
// admin editing from the master listing, or just the caller's own
// positions when editing from a filtered one.
func (w *Workflow) Run(permitted []int) error {
	current := stateConfirm
	var selected int // 1-based master position
	var selectedID string

	for current != stateDone {
		switch current {

		case stateConfirm:
			ok, err := w.Prompter.ConfirmContinue()
			if err != nil {
				return fmt.Errorf("continue prompt: %w", err)
			}
			if !ok {
				current = stateDone
				continue
			}
			current = stateSelect

		case stateSelect:
			choice, err := w.Prompter.SelectTask()
			if err != nil {
				return fmt.Errorf("task selection: %w", err)
			}
			if choice == ExitChoice {
				current = stateDone
				continue
			}

			idx, err := w.resolve(choice, permitted)
			if err != nil {
				w.Prompter.ShowError(failureMessage(err))
				continue // re-prompt, same state
			}
			if w.Tasks[idx].Completed {
				w.Prompter.ShowError(failureMessage(ErrAlreadyComplete))
				continue
			}

			selected = choice
			selectedID = w.Tasks[idx].ID
			current = stateEdit

		case stateEdit:
			w.Prompter.ShowEntry(view.Entry{Position: selected, Task: w.Tasks[selected-1]})

			action, err := w.Prompter.ChooseAction()
			if err != nil {
				return fmt.Errorf("edit option prompt: %w", err)
			}

			if err := w.apply(selected, selectedID, action); err != nil {
				if errors.Is(err, ErrStaleSelection) {
					w.Prompter.ShowError(failureMessage(err))
					current = stateSelect
					continue
				}
				return err
			}
			current = statePersist

		case statePersist:
			if err := w.Store.PersistAll(w.Tasks); err != nil {
				return fmt.Errorf("persisting after edit: %w", err)
			}
			w.Log.WithFields(logrus.Fields{
				"position": selected,
				"task_id":  selectedID,
			}).Info("task edit persisted")
			current = stateConfirm
		}
	}

	return nil
}

// resolve classifies a numeric choice against the permitted set,
// distinguishing a position the caller may not target from one that
// does not exist at all.
func (w *Workflow) resolve(choice int, permitted []int) (int, error) {
	for _, p := range permitted {
		if p == choice {
			return choice - 1, nil
		}
	}
	if choice >= 1 && choice <= len(w.Tasks) {
		return 0, ErrNotPermitted
	}
	return 0, ErrUnknownChoice
}

// apply gathers the option's input, mutates the task at the recorded
// position, and stamps the last-updated date. The session ID recorded
// at selection is checked first so a list that shifted underneath the
// prompt cannot mutate the wrong task.
func (w *Workflow) apply(position int, selectedID string, action Action) error {
	idx := position - 1
	if idx < 0 || idx >= len(w.Tasks) || w.Tasks[idx].ID != selectedID {
		return ErrStaleSelection
	}
	task := w.Tasks[idx]

	switch action {
	case ActionMarkComplete:
		task.Completed = true
		w.Prompter.ShowInfo("This task has been marked as complete.")

	case ActionReassign:
		assignee, err := w.Prompter.AskAssignee(func(username string) error {
			if !w.Users.Exists(username) {
				return errors.New("User not recognised.")
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("assignee prompt: %w", err)
		}
		task.Assignee = assignee
		w.Prompter.ShowInfo(fmt.Sprintf("This task has been successfully assigned to %s.", assignee))

	case ActionChangeDueDate:
		dueAt, err := w.Prompter.AskDueDate()
		if err != nil {
			return fmt.Errorf("due date prompt: %w", err)
		}
		task.DueAt = dueAt
		w.Prompter.ShowInfo(fmt.Sprintf("This task is now due on %s.", dueAt.Format(model.DateFormat)))

	default:
		return fmt.Errorf("unrecognised edit action %d", action)
	}

	updatedAt := w.today()
	task.UpdatedAt = &updatedAt
	w.Tasks[idx] = task

	return nil
}

func (w *Workflow) today() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return model.Today()
}

// failureMessage maps a failure signal to its user-facing message.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotPermitted):
		return "** That task is not assigned to you. Only the assignee may edit. **"
	case errors.Is(err, ErrUnknownChoice):
		return "** That choice is not recognised. **"
	case errors.Is(err, ErrAlreadyComplete):
		return "** Error: This task has already been marked as complete and can no longer be edited. **"
	case errors.Is(err, ErrStaleSelection):
		return "** The task list changed; please select the task again. **"
	default:
		return err.Error()
	}
}
