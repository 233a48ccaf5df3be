package edit

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/view"
)

// memStore records PersistAll calls without touching disk.
type memStore struct {
	persisted [][]model.Task
}

func (s *memStore) LoadAll() ([]model.Task, error) { return nil, nil }
func (s *memStore) AppendOne(model.Task) error     { return nil }
func (s *memStore) PersistAll(tasks []model.Task) error {
	snapshot := make([]model.Task, len(tasks))
	copy(snapshot, tasks)
	s.persisted = append(s.persisted, snapshot)
	return nil
}

// fixedUsers is a static user directory.
type fixedUsers []string

func (u fixedUsers) Usernames() []string { return u }
func (u fixedUsers) Exists(name string) bool {
	for _, n := range u {
		if n == name {
			return true
		}
	}
	return false
}
func (u fixedUsers) IsAdmin(name string) bool         { return name == "admin" }
func (u fixedUsers) Authenticate(string, string) bool { return false }
func (u fixedUsers) Register(model.User) error        { return nil }

// scriptPrompter replays canned answers and records what the workflow
// showed, standing in for the interactive forms.
type scriptPrompter struct {
	confirms  []bool
	selects   []int
	actions   []Action
	assignees []string
	dueDates  []time.Time

	shown             []view.Entry
	errorsShown       []string
	infosShown        []string
	assigneesRejected int
}

func (p *scriptPrompter) ConfirmContinue() (bool, error) {
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("script exhausted at continue prompt")
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *scriptPrompter) SelectTask() (int, error) {
	if len(p.selects) == 0 {
		return 0, fmt.Errorf("script exhausted at task selection")
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

func (p *scriptPrompter) ChooseAction() (Action, error) {
	if len(p.actions) == 0 {
		return 0, fmt.Errorf("script exhausted at edit option")
	}
	v := p.actions[0]
	p.actions = p.actions[1:]
	return v, nil
}

func (p *scriptPrompter) AskAssignee(validate func(string) error) (string, error) {
	for len(p.assignees) > 0 {
		candidate := p.assignees[0]
		p.assignees = p.assignees[1:]
		if err := validate(candidate); err != nil {
			p.assigneesRejected++
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("script exhausted at assignee prompt")
}

func (p *scriptPrompter) AskDueDate() (time.Time, error) {
	if len(p.dueDates) == 0 {
		return time.Time{}, fmt.Errorf("script exhausted at due date prompt")
	}
	v := p.dueDates[0]
	p.dueDates = p.dueDates[1:]
	return v, nil
}

func (p *scriptPrompter) ShowEntry(e view.Entry) { p.shown = append(p.shown, e) }
func (p *scriptPrompter) ShowError(msg string)   { p.errorsShown = append(p.errorsShown, msg) }
func (p *scriptPrompter) ShowInfo(msg string)    { p.infosShown = append(p.infosShown, msg) }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testTasks(t *testing.T) []model.Task {
	t.Helper()
	due := date(t, "2023-02-01")
	return []model.Task{
		model.NewTask("alice", "First", "d", due),
		model.NewTask("bob", "Second", "d", due),
		model.NewTask("bob", "Third", "d", due),
	}
}

func newWorkflow(t *testing.T, tasks []model.Task, p Prompter, s *memStore) *Workflow {
	t.Helper()
	return &Workflow{
		Tasks:    tasks,
		Store:    s,
		Users:    fixedUsers{"admin", "alice", "bob"},
		Prompter: p,
		Log:      quietLogger(),
		Now:      func() time.Time { return date(t, "2023-06-01") },
	}
}

func TestMarkCompleteViaFilteredViewUpdatesMasterPosition(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	p := &scriptPrompter{
		confirms: []bool{true, false},
		selects:  []int{3},
		actions:  []Action{ActionMarkComplete},
	}
	w := newWorkflow(t, tasks, p, s)

	// bob edits from his filtered view: permitted positions 2 and 3.
	require.NoError(t, w.Run([]int{2, 3}))

	assert.True(t, w.Tasks[2].Completed)
	require.NotNil(t, w.Tasks[2].UpdatedAt)
	assert.Equal(t, date(t, "2023-06-01"), *w.Tasks[2].UpdatedAt)

	// Untouched tasks stay untouched.
	assert.False(t, w.Tasks[0].Completed)
	assert.False(t, w.Tasks[1].Completed)
	assert.Nil(t, w.Tasks[0].UpdatedAt)

	// Exactly one full-list persistence, reflecting the edit.
	require.Len(t, s.persisted, 1)
	assert.True(t, s.persisted[0][2].Completed)
}

func TestEditViaFilteredAndUnfilteredViewsAgree(t *testing.T) {
	runEdit := func(permitted []int) []model.Task {
		tasks := testTasks(t)
		s := &memStore{}
		p := &scriptPrompter{
			confirms: []bool{true, false},
			selects:  []int{2},
			actions:  []Action{ActionMarkComplete},
		}
		w := newWorkflow(t, tasks, p, s)
		require.NoError(t, w.Run(permitted))
		return w.Tasks
	}

	viaMaster := runEdit([]int{1, 2, 3}) // admin, full set
	viaFiltered := runEdit([]int{2, 3})  // bob, own positions

	assert.Equal(t, viaMaster[1].Completed, viaFiltered[1].Completed)
	assert.Equal(t, *viaMaster[1].UpdatedAt, *viaFiltered[1].UpdatedAt)
}

func TestForbiddenAndUnknownSelectionsAreDistinguished(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	p := &scriptPrompter{
		confirms: []bool{true},
		// Position 1 exists but belongs to alice; 99 does not exist;
		// then bob gives up.
		selects: []int{1, 99, ExitChoice},
	}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{2, 3}))

	require.Len(t, p.errorsShown, 2)
	assert.Contains(t, p.errorsShown[0], "not assigned to you")
	assert.Contains(t, p.errorsShown[1], "not recognised")
	assert.Empty(t, s.persisted, "exit persists nothing")
}

func TestAlreadyCompleteTaskReturnsToSelection(t *testing.T) {
	tasks := testTasks(t)
	tasks[1].Completed = true
	s := &memStore{}
	p := &scriptPrompter{
		confirms: []bool{true, false},
		selects:  []int{2, 3},
		actions:  []Action{ActionMarkComplete},
	}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{2, 3}))

	require.Len(t, p.errorsShown, 1)
	assert.Contains(t, p.errorsShown[0], "already been marked as complete")
	// The retry selected task 3 and completed it.
	assert.True(t, w.Tasks[2].Completed)
}

func TestReassignRejectsUnknownUsernames(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	p := &scriptPrompter{
		confirms:  []bool{true, false},
		selects:   []int{2},
		actions:   []Action{ActionReassign},
		assignees: []string{"mallory", "nobody", "alice"},
	}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{1, 2, 3}))

	assert.Equal(t, 2, p.assigneesRejected)
	assert.Equal(t, "alice", w.Tasks[1].Assignee)
	require.NotNil(t, w.Tasks[1].UpdatedAt)
	require.Len(t, s.persisted, 1)
	assert.Equal(t, "alice", s.persisted[0][1].Assignee)
}

func TestChangeDueDateAcceptsPastDates(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	newDue := date(t, "2020-01-01")
	p := &scriptPrompter{
		confirms: []bool{true, false},
		selects:  []int{1},
		actions:  []Action{ActionChangeDueDate},
		dueDates: []time.Time{newDue},
	}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{1, 2, 3}))

	assert.Equal(t, newDue, w.Tasks[0].DueAt)
	require.NotNil(t, w.Tasks[0].UpdatedAt)
}

func TestDecliningToContinueExitsImmediately(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	p := &scriptPrompter{confirms: []bool{false}}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{1, 2, 3}))

	assert.Empty(t, s.persisted)
	assert.Empty(t, p.shown)
}

func TestCompletionNeverReverses(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}

	// Complete task 2, then try to select it again in the same run.
	p := &scriptPrompter{
		confirms: []bool{true, true},
		selects:  []int{2, 2, ExitChoice},
		actions:  []Action{ActionMarkComplete},
	}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{1, 2, 3}))

	assert.True(t, w.Tasks[1].Completed)
	require.Len(t, p.errorsShown, 1)
	assert.Contains(t, p.errorsShown[0], "already been marked as complete")
}

func TestStaleSelectionIsRefused(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	w := newWorkflow(t, tasks, &scriptPrompter{}, s)

	// Simulate the list shifting between selection and apply: the ID
	// recorded at selection no longer matches the task at position 1.
	err := w.apply(1, "some-other-id", ActionMarkComplete)
	assert.ErrorIs(t, err, ErrStaleSelection)
	assert.False(t, w.Tasks[0].Completed)
}

func TestSelectionShowsTheChosenTask(t *testing.T) {
	tasks := testTasks(t)
	s := &memStore{}
	p := &scriptPrompter{
		confirms: []bool{true, false},
		selects:  []int{3},
		actions:  []Action{ActionMarkComplete},
	}
	w := newWorkflow(t, tasks, p, s)

	require.NoError(t, w.Run([]int{2, 3}))

	require.Len(t, p.shown, 1)
	assert.Equal(t, 3, p.shown[0].Position)
	assert.Equal(t, "Third", p.shown[0].Task.Title)
}
