package query

import (
	"time"

	"github.com/Captain-Vikram/To-Do-List/models"
)

// Statistics are the per-status counts of a collection.
type Statistics struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// ComputeStatistics tallies tasks in a single pass.
func ComputeStatistics(tasks []models.Task) Statistics {
	var s Statistics
	for _, t := range tasks {
		s.Total++
		switch t.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// Count returns the tally for one status.
func (s Statistics) Count(status models.TaskStatus) int {
	switch status {
	case models.StatusPending:
		return s.Pending
	case models.StatusInProgress:
		return s.InProgress
	case models.StatusCompleted:
		return s.Completed
	}
	return 0
}

// Group is the slice of tasks sharing one status.
type Group struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.Task     `json:"tasks"`
}

// GroupByStatus partitions tasks into pending, in progress and completed
// groups, preserving the incoming order inside each group. Empty groups are
// kept so views can show a placeholder.
func GroupByStatus(tasks []models.Task) []Group {
	groups := make([]Group, 0, 3)
	for _, s := range models.Statuses() {
		g := Group{Status: s, Tasks: []models.Task{}}
		for _, t := range tasks {
			if t.Status == s {
				g.Tasks = append(g.Tasks, t)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// IsOverdue reports whether t has a due date strictly before the calendar
// day of now and is not completed.
func IsOverdue(t models.Task, now time.Time) bool {
	if t.Completed() {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
