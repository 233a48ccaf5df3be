// Package report computes aggregate statistics over the task list and
// the user directory, and renders them as the two overview artifacts.
// All figures are pure functions of the inputs; when a denominator is
// zero the derived percentages are zero, never a division error.
package report

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/nhle/task-tracker/internal/model"
)

// TaskOverview aggregates the full task list.
type TaskOverview struct {
	Total             int
	Completed         int
	Incomplete        int
	Overdue           int
	IncompleteOverdue int
	PercentIncomplete float64
	PercentOverdue    float64
}

// UserStats is the per-user breakdown within the user overview.
type UserStats struct {
	Username                 string
	Assigned                 int
	PercentOfTotal           float64
	PercentComplete          float64
	PercentIncomplete        float64
	PercentIncompleteOverdue float64
}

// UserOverview aggregates per registered user, in directory order.
type UserOverview struct {
	TotalUsers int
	TotalTasks int
	Users      []UserStats
}

// BuildTaskOverview computes the task overview for the given date.
func BuildTaskOverview(tasks []model.Task, today time.Time) TaskOverview {
	o := TaskOverview{Total: len(tasks)}

	for _, t := range tasks {
		if t.Completed {
			o.Completed++
		} else {
			o.Incomplete++
		}
		if t.Overdue(today) {
			o.Overdue++
			if !t.Completed {
				o.IncompleteOverdue++
			}
		}
	}

	if o.Total > 0 {
		o.PercentIncomplete = percent(o.Incomplete, o.Total)
		o.PercentOverdue = percent(o.Overdue, o.Total)
	}

	return o
}

// BuildUserOverview computes the per-user breakdown. usernames sets
// both membership and iteration order.
func BuildUserOverview(tasks []model.Task, usernames []string, today time.Time) UserOverview {
	o := UserOverview{
		TotalUsers: len(usernames),
		TotalTasks: len(tasks),
	}

	for _, username := range usernames {
		var assigned, complete, incomplete, incompleteOverdue int
		for _, t := range tasks {
			if t.Assignee != username {
				continue
			}
			assigned++
			if t.Completed {
				complete++
			} else {
				incomplete++
				if t.Overdue(today) {
					incompleteOverdue++
				}
			}
		}

		stats := UserStats{Username: username, Assigned: assigned}
		if assigned > 0 {
			stats.PercentOfTotal = percent(assigned, o.TotalTasks)
			stats.PercentComplete = percent(complete, assigned)
			stats.PercentIncomplete = percent(incomplete, assigned)
			stats.PercentIncompleteOverdue = percent(incompleteOverdue, assigned)
		}
		o.Users = append(o.Users, stats)
	}

	return o
}

// percent returns part/whole as a percentage rounded half-up to two
// decimal places.
func percent(part, whole int) float64 {
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}

// RenderTaskOverview formats the task overview as the durable text
// artifact; the console shows the same content.
func RenderTaskOverview(o TaskOverview) string {
	var b strings.Builder

	b.WriteString("-------------------------------- Task Overview --------------------------------\n\n")
	fmt.Fprintf(&b, "The total number of tasks that have been generated is: \t\t\t%d\n", o.Total)
	fmt.Fprintf(&b, "The total number of completed tasks is: \t\t\t\t%d\n", o.Completed)
	fmt.Fprintf(&b, "The total number of incomplete tasks is: \t\t\t\t%d\n", o.Incomplete)
	fmt.Fprintf(&b, "The total number of overdue tasks is: \t\t\t\t\t%d\n", o.Overdue)
	fmt.Fprintf(&b, "The total number of tasks that are incomplete and overdue is: \t\t%d\n", o.IncompleteOverdue)
	fmt.Fprintf(&b, "The percentage of tasks that are incomplete is: \t\t\t%s%%\n", formatPercent(o.PercentIncomplete))
	fmt.Fprintf(&b, "The percentage of tasks that are overdue is: \t\t\t\t%s%%\n", formatPercent(o.PercentOverdue))

	return b.String()
}

// RenderUserOverview formats the user overview as the durable text
// artifact; the console shows the same content.
func RenderUserOverview(o UserOverview) string {
	var b strings.Builder

	b.WriteString("-------------------------------- User Overview --------------------------------\n\n")
	fmt.Fprintf(&b, "The total number of users that are registered in the Task Manager is:\t%d\n", o.TotalUsers)
	fmt.Fprintf(&b, "The total number of tasks that have been generated is:\t\t\t%d\n\n", o.TotalTasks)

	for _, u := range o.Users {
		fmt.Fprintf(&b, "%s User Stats - %s %s\n", strings.Repeat("-", 15), u.Username, strings.Repeat("-", 15))
		fmt.Fprintf(&b, "The total number of assigned tasks is: \t\t\t\t\t%d\n", u.Assigned)
		fmt.Fprintf(&b, "As a percentage of all tasks this is: \t\t\t\t\t%s%%\n", formatPercent(u.PercentOfTotal))
		fmt.Fprintf(&b, "The percentage of tasks that are complete is: \t\t\t\t%s%%\n", formatPercent(u.PercentComplete))
		fmt.Fprintf(&b, "The percentage of tasks that are incomplete is: \t\t\t%s%%\n", formatPercent(u.PercentIncomplete))
		fmt.Fprintf(&b, "The percentage of tasks that are incomplete and overdue is: \t\t%s%%\n\n", formatPercent(u.PercentIncompleteOverdue))
	}

	return b.String()
}

// formatPercent trims trailing zeros so whole numbers read as "100"
// and two-decimal values as "33.33".
func formatPercent(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Generate computes both overviews in one invocation and writes each
// verbatim to its durable artifact. It returns the rendered texts for
// console display.
func Generate(tasks []model.Task, usernames []string, today time.Time, taskPath, userPath string) (taskText, userText string, err error) {
	taskText = RenderTaskOverview(BuildTaskOverview(tasks, today))
	userText = RenderUserOverview(BuildUserOverview(tasks, usernames, today))

	if err := os.WriteFile(taskPath, []byte(taskText), 0o644); err != nil {
		return "", "", fmt.Errorf("writing task overview: %w", err)
	}
	if err := os.WriteFile(userPath, []byte(userText), 0o644); err != nil {
		return "", "", fmt.Errorf("writing user overview: %w", err)
	}

	return taskText, userText, nil
}
