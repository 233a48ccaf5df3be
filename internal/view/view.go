// Package view derives positioned, human-facing listings from the
// master task list. Filtered listings keep each task's master
// position, so the number a user sees is always a valid edit target
// no matter which listing it came from.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/theme"
)

// Entry pairs a task with its 1-based position in the master list.
type Entry struct {
	Position int
	Task     model.Task
}

// All returns every task with its master position.
func All(tasks []model.Task) []Entry {
	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = Entry{Position: i + 1, Task: t}
	}
	return entries
}

// ForUser returns the user's tasks in master order, keeping master
// positions. An empty slice, not an error, when the user has none.
func ForUser(tasks []model.Task, username string) []Entry {
	var entries []Entry
	for i, t := range tasks {
		if t.Assignee == username {
			entries = append(entries, Entry{Position: i + 1, Task: t})
		}
	}
	return entries
}

// Positions extracts the permitted position set from a listing.
func Positions(entries []Entry) []int {
	positions := make([]int, len(entries))
	for i, e := range entries {
		positions[i] = e.Position
	}
	return positions
}

// RenderEntry formats a single task as a labeled block.
func RenderEntry(e Entry) string {
	var b strings.Builder

	divider := theme.DividerStyle.Render(strings.Repeat("-", 40))
	b.WriteString(divider + "\n")

	writeField := func(label, value string) {
		b.WriteString(theme.LabelStyle.Render(label))
		b.WriteString("\t" + value + "\n")
	}

	writeField(fmt.Sprintf("Task %d:", e.Position), e.Task.Title)
	writeField("Assigned to:", e.Task.Assignee)
	writeField("Date assigned:", e.Task.AssignedAt.Format(model.DateFormat))
	writeField("Due Date:", e.Task.DueAt.Format(model.DateFormat))
	if e.Task.UpdatedAt != nil {
		writeField("Last updated:", e.Task.UpdatedAt.Format(model.DateFormat))
	}

	b.WriteString(theme.LabelStyle.Render("Current status:"))
	b.WriteString("\t" + theme.StatusStyle(e.Task.Completed).Render(e.Task.StatusLabel()) + "\n")

	b.WriteString(theme.LabelStyle.Render("Task Description:"))
	b.WriteString("\n " + e.Task.Description + "\n")

	b.WriteString(divider)
	return b.String()
}

// RenderList formats a sequence of entries, one block per task.
func RenderList(entries []Entry) string {
	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = RenderEntry(e)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
