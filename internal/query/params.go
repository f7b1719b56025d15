// Package query derives the visible task list from the canonical collection:
// filtering, ordering and the per-status statistics.
package query

import (
	"fmt"
	"strings"

	"github.com/Captain-Vikram/To-Do-List/models"
)

// All is the filter value that matches every status or priority.
const All = "all"

// StatusFilter is either All or the name of a single status.
type StatusFilter string

// PriorityFilter is either All or the name of a single priority.
type PriorityFilter string

const (
	AnyStatus   StatusFilter   = All
	AnyPriority PriorityFilter = All
)

// ForStatus returns the filter matching only s.
func ForStatus(s models.TaskStatus) StatusFilter {
	return StatusFilter(s.String())
}

// ForPriority returns the filter matching only p.
func ForPriority(p models.TaskPriority) PriorityFilter {
	return PriorityFilter(p.String())
}

// ParseStatusFilter accepts "all" or any status spelling models.ParseStatus accepts.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || strings.EqualFold(strings.TrimSpace(s), All) {
		return AnyStatus, nil
	}
	st, err := models.ParseStatus(s)
	if err != nil {
		return "", err
	}
	return ForStatus(st), nil
}

// ParsePriorityFilter accepts "all" or a priority name.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	if s == "" || strings.EqualFold(strings.TrimSpace(s), All) {
		return AnyPriority, nil
	}
	p, err := models.ParsePriority(s)
	if err != nil {
		return "", err
	}
	return ForPriority(p), nil
}

// Matches reports whether the filter admits s.
func (f StatusFilter) Matches(s models.TaskStatus) bool {
	return f == AnyStatus || string(f) == s.String()
}

// Matches reports whether the filter admits p.
func (f PriorityFilter) Matches(p models.TaskPriority) bool {
	return f == AnyPriority || string(f) == p.String()
}

// Next cycles all -> pending -> in_progress -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	opts := append([]StatusFilter{AnyStatus}, statusFilters()...)
	return opts[(indexOf(opts, f)+1)%len(opts)]
}

// Next cycles all -> low -> medium -> high -> all.
func (f PriorityFilter) Next() PriorityFilter {
	opts := []PriorityFilter{AnyPriority}
	for _, p := range models.Priorities() {
		opts = append(opts, ForPriority(p))
	}
	return opts[(indexOf(opts, f)+1)%len(opts)]
}

func statusFilters() []StatusFilter {
	out := make([]StatusFilter, 0, 3)
	for _, s := range models.Statuses() {
		out = append(out, ForStatus(s))
	}
	return out
}

func indexOf[T comparable](opts []T, v T) int {
	for i, o := range opts {
		if o == v {
			return i
		}
	}
	return -1
}

// SortKey selects the comparator used by Sort.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByPriority  SortKey = "priority"
	// SortByTitle is selectable but compares every pair as equal, so the
	// stable sort keeps the incoming order.
	SortByTitle SortKey = "title"
)

// SortKeys lists the selectable keys in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortByCreatedAt, SortByDueDate, SortByPriority, SortByTitle}
}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Next cycles through SortKeys.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	return keys[(indexOf(keys, k)+1)%len(keys)]
}

// SortOrder is the direction applied to the comparator.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder accepts asc/ascending and desc/descending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Reverse returns the opposite direction.
func (o SortOrder) Reverse() SortOrder {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// Params is the query state that determines the derived list.
type Params struct {
	Search   string         `json:"searchQuery"`
	Status   StatusFilter   `json:"statusFilter"`
	Priority PriorityFilter `json:"priorityFilter"`
	SortBy   SortKey        `json:"sortBy"`
	Order    SortOrder      `json:"sortOrder"`
}

// DefaultParams returns the reset state: no search, all statuses and
// priorities, newest first.
func DefaultParams() Params {
	return Params{
		Search:   "",
		Status:   AnyStatus,
		Priority: AnyPriority,
		SortBy:   SortByCreatedAt,
		Order:    Descending,
	}
}

// Active reports whether any filter narrows the list.
func (p Params) Active() bool {
	return p.Search != "" || p.Status != AnyStatus || p.Priority != AnyPriority
}
