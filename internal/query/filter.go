package query

import (
	"strings"

	"github.com/Captain-Vikram/To-Do-List/models"
)

// Filter returns the tasks that match all three conditions: the search text
// (case-insensitive substring of title or description, empty matches
// everything), the status filter and the priority filter. The input is not
// modified.
func Filter(tasks []models.Task, search string, status StatusFilter, priority PriorityFilter) []models.Task {
	needle := strings.ToLower(search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesSearch(t, needle) {
			continue
		}
		if !status.Matches(t.Status) || !priority.Matches(t.Priority) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t models.Task, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Apply filters and then sorts tasks according to p.
func Apply(tasks []models.Task, p Params) []models.Task {
	return Sort(Filter(tasks, p.Search, p.Status, p.Priority), p.SortBy, p.Order)
}
