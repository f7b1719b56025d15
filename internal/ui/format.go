package ui

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/models"
)

// DisplayDateLayout is how due dates are shown, e.g. "Mar 05, 2025".
const DisplayDateLayout = "Jan 02, 2006"

// FormatDate renders a stored due date for display. Empty dates render as
// "-" and unparsable values are returned unchanged.
func FormatDate(dueDate string) string {
	if dueDate == "" {
		return "-"
	}
	d, err := time.Parse(models.DateLayout, dueDate)
	if err != nil {
		return dueDate
	}
	return d.Format(DisplayDateLayout)
}

// Label turns an identifier like "in_progress" into "In Progress".
func Label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// StatusLabel renders a status, e.g. "In Progress".
func StatusLabel(s models.TaskStatus) string {
	return Label(s.String())
}

// PriorityLabel renders a priority, e.g. "High".
func PriorityLabel(p models.TaskPriority) string {
	return Label(p.String())
}

// SortKeyLabel renders a sort key for the status bar.
func SortKeyLabel(k query.SortKey) string {
	switch k {
	case query.SortByCreatedAt:
		return "Date Created"
	case query.SortByDueDate:
		return "Due Date"
	case query.SortByPriority:
		return "Priority"
	case query.SortByTitle:
		return "Title"
	}
	return string(k)
}

// StatusIcon is the list glyph for a status.
func StatusIcon(s models.TaskStatus) string {
	switch s {
	case models.StatusInProgress:
		return "◐"
	case models.StatusCompleted:
		return "●"
	default:
		return "○"
	}
}

// Truncate returns a truncated string with "..." if it exceeds maxLen.
// This function is Unicode-safe, counting runes instead of bytes.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncateID shortens an ID for display.
func TruncateID(id string) string {
	id = strings.TrimPrefix(id, "task-")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
