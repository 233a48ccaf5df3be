package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-tracker/internal/model"
)

func sampleTasks(t *testing.T) []model.Task {
	t.Helper()
	due, err := model.ParseDate("2023-02-01")
	require.NoError(t, err)

	mk := func(assignee, title string) model.Task {
		task := model.NewTask(assignee, title, "desc", due)
		return task
	}
	return []model.Task{
		mk("alice", "First"),
		mk("bob", "Second"),
		mk("alice", "Third"),
		mk("bob", "Fourth"),
	}
}

func TestAllNumbersFromOne(t *testing.T) {
	tasks := sampleTasks(t)

	entries := All(tasks)
	require.Len(t, entries, len(tasks))
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, tasks[i].Title, e.Task.Title)
	}
}

func TestForUserKeepsMasterPositions(t *testing.T) {
	tasks := sampleTasks(t)

	entries := ForUser(tasks, "bob")
	require.Len(t, entries, 2)
	assert.Equal(t, []int{2, 4}, Positions(entries))

	// Every returned position fetches a task assigned to the user.
	for _, e := range entries {
		assert.Equal(t, "bob", tasks[e.Position-1].Assignee)
	}
}

func TestForUserMasterOrder(t *testing.T) {
	tasks := sampleTasks(t)

	entries := ForUser(tasks, "alice")
	assert.Equal(t, []int{1, 3}, Positions(entries))
	assert.Equal(t, "First", entries[0].Task.Title)
	assert.Equal(t, "Third", entries[1].Task.Title)
}

func TestForUserWithoutTasksIsEmptyNotError(t *testing.T) {
	entries := ForUser(sampleTasks(t), "carol")
	assert.Empty(t, entries)
}

func TestRenderEntryFields(t *testing.T) {
	tasks := sampleTasks(t)
	rendered := RenderEntry(Entry{Position: 2, Task: tasks[1]})

	assert.Contains(t, rendered, "Task 2:")
	assert.Contains(t, rendered, "Second")
	assert.Contains(t, rendered, "Assigned to:")
	assert.Contains(t, rendered, "bob")
	assert.Contains(t, rendered, "Due Date:")
	assert.Contains(t, rendered, "2023-02-01")
	assert.Contains(t, rendered, "Incomplete")
	assert.NotContains(t, rendered, "Last updated:")
}

func TestRenderEntryShowsLastUpdatedOnlyAfterEdit(t *testing.T) {
	tasks := sampleTasks(t)
	updated := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	tasks[0].UpdatedAt = &updated
	tasks[0].Completed = true

	rendered := RenderEntry(Entry{Position: 1, Task: tasks[0]})
	assert.Contains(t, rendered, "Last updated:")
	assert.Contains(t, rendered, "2023-03-15")
	assert.Contains(t, rendered, "Completed")
}
