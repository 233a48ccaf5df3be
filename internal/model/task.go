package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the calendar-date layout used everywhere: prompts,
// the durable row form, and rendered listings.
const DateFormat = time.DateOnly

// Completed-flag literals used in the durable row form.
const (
	completedYes = "Yes"
	completedNo  = "No"
)

// Task is one unit of work assigned to a team member.
//
// A task's position in the master list is its identifier for the
// session; ID is a session-scoped guard assigned at load or creation
// and is never persisted.
type Task struct {
	ID          string
	Assignee    string
	Title       string
	Description string
	AssignedAt  time.Time
	DueAt       time.Time

	// Completed only ever transitions false -> true.
	Completed bool

	// UpdatedAt is set on the first edit and refreshed on every
	// subsequent one. Absent (nil) until then.
	UpdatedAt *time.Time
}

// NewTask creates an incomplete task assigned today.
func NewTask(assignee, title, description string, dueAt time.Time) Task {
	return Task{
		ID:          uuid.New().String(),
		Assignee:    assignee,
		Title:       title,
		Description: description,
		AssignedAt:  Today(),
		DueAt:       dueAt,
	}
}

// StatusLabel returns the human-facing completion status.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "Incomplete"
}

// Overdue reports whether the due date lies strictly before today,
// regardless of completion. The comparison is date-only.
func (t Task) Overdue(today time.Time) bool {
	return t.DueAt.Before(truncateToDate(today))
}

// Row serializes the task to its durable semicolon-delimited form:
// assignee;title;description;assigned;due;Yes|No and, once the task
// has been edited at least once, a trailing last-updated date.
func (t Task) Row() string {
	fields := []string{
		t.Assignee,
		t.Title,
		t.Description,
		t.AssignedAt.Format(DateFormat),
		t.DueAt.Format(DateFormat),
		completedNo,
	}
	if t.Completed {
		fields[5] = completedYes
	}
	if t.UpdatedAt != nil {
		fields = append(fields, t.UpdatedAt.Format(DateFormat))
	}
	return strings.Join(fields, ";")
}

// ParseTaskRow parses one durable row into a Task, assigning a fresh
// session ID. Malformed rows are an error; callers treat them as fatal
// because the in-memory list cannot be built safely around a gap.
func ParseTaskRow(row string) (Task, error) {
	fields := strings.Split(row, ";")
	if len(fields) < 6 || len(fields) > 7 {
		return Task{}, fmt.Errorf("task row has %d fields, want 6 or 7", len(fields))
	}

	assignedAt, err := ParseDate(fields[3])
	if err != nil {
		return Task{}, fmt.Errorf("parsing assigned date: %w", err)
	}
	dueAt, err := ParseDate(fields[4])
	if err != nil {
		return Task{}, fmt.Errorf("parsing due date: %w", err)
	}

	var completed bool
	switch fields[5] {
	case completedYes:
		completed = true
	case completedNo:
		completed = false
	default:
		return Task{}, fmt.Errorf("unrecognised completed flag %q", fields[5])
	}

	t := Task{
		ID:          uuid.New().String(),
		Assignee:    fields[0],
		Title:       fields[1],
		Description: fields[2],
		AssignedAt:  assignedAt,
		DueAt:       dueAt,
		Completed:   completed,
	}

	if len(fields) == 7 {
		updatedAt, err := ParseDate(fields[6])
		if err != nil {
			return Task{}, fmt.Errorf("parsing last-updated date: %w", err)
		}
		t.UpdatedAt = &updatedAt
	}

	return t, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// Today returns the current calendar date with the time of day dropped.
func Today() time.Time {
	return truncateToDate(time.Now())
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
