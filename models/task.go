package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// TaskStatus represents the possible statuses of a task.
type TaskStatus uint8

const (
	StatusPending TaskStatus = iota
	StatusInProgress
	StatusCompleted
)

var statusNames = [...]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
}

// Statuses lists every status in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is one of the defined statuses.
func (s TaskStatus) Valid() bool {
	return s <= StatusCompleted
}

func (s TaskStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TaskStatus(%d)", uint8(s))
	}
	return statusNames[s]
}

// Next cycles pending -> in_progress -> completed -> pending.
func (s TaskStatus) Next() TaskStatus {
	if !s.Valid() || s == StatusCompleted {
		return StatusPending
	}
	return s + 1
}

// ParseStatus converts the textual form of a status. The dashed spelling
// "in-progress" is accepted as an alias.
func ParseStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "in_progress", "in-progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return 0, fmt.Errorf("unknown status %q (want pending, in_progress or completed)", s)
}

func (s TaskStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *TaskStatus) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TaskPriority represents the priority levels of a task.
type TaskPriority uint8

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

// Priorities lists every priority from lowest to highest.
func Priorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is one of the defined priorities.
func (p TaskPriority) Valid() bool {
	return p <= PriorityHigh
}

// Rank is the numeric weight used for ordering: low=1, medium=2, high=3.
func (p TaskPriority) Rank() int {
	return int(p) + 1
}

func (p TaskPriority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("TaskPriority(%d)", uint8(p))
	}
	return priorityNames[p]
}

// ParsePriority converts the textual form of a priority.
func ParsePriority(s string) (TaskPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("unknown priority %q (want low, medium or high)", s)
}

func (p TaskPriority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *TaskPriority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Task represents a single to-do item.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     string       `json:"dueDate,omitempty"` // YYYY-MM-DD, empty means no deadline
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Due returns the parsed due date. ok is false when the task has no due
// date or the stored value is not a calendar date.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Completed reports whether the task is done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Draft returns the editable fields of t, e.g. to prefill an edit form.
func (t Task) Draft() Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
	}
}

// Draft is the set of fields a caller supplies to create or edit a task.
// ID and CreatedAt are owned by the store.
type Draft struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
}

// NewDraft returns an empty draft with the form defaults: medium priority, pending.
func NewDraft() Draft {
	return Draft{
		Priority: PriorityMedium,
		Status:   StatusPending,
	}
}

// Normalized returns a copy with surrounding whitespace removed from the
// title and due date.
func (d Draft) Normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.DueDate = strings.TrimSpace(d.DueDate)
	return d
}
