package store

import (
	"context"

	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/models"
)

// TaskStore is the contract views program against. It covers the task
// collection, the query state and the appearance preference; every mutation
// goes through it.
type TaskStore interface {
	// AddTask appends a new task built from d with a fresh ID and the
	// current time. The draft is not validated.
	AddTask(d models.Draft) models.Task

	// EditTask replaces every editable field of the task identified by id,
	// keeping its ID and CreatedAt. An unknown id leaves the collection
	// unchanged and returns an error wrapping ErrTaskNotFound.
	EditTask(id string, d models.Draft) error

	// SetTaskStatus changes only the status of one task.
	SetTaskStatus(id string, s models.TaskStatus) error

	// DeleteTask removes the task identified by id.
	DeleteTask(id string) error

	// Task returns a single task by id.
	Task(id string) (models.Task, error)

	// MarkAllCompleted sets every task to completed and returns how many
	// tasks changed.
	MarkAllCompleted() int

	// ClearCompleted removes all completed tasks and returns how many were
	// removed.
	ClearCompleted() int

	SetSearchQuery(text string)
	SetStatusFilter(f query.StatusFilter)
	SetPriorityFilter(f query.PriorityFilter)
	SetSortBy(k query.SortKey)
	SetSortOrder(o query.SortOrder)
	ToggleSortOrder() query.SortOrder
	ResetFilters()

	// ToggleDarkMode flips the appearance flag and persists it. The flag
	// is flipped even when persisting fails.
	ToggleDarkMode(ctx context.Context) (bool, error)

	// InitializeDarkMode loads the persisted appearance, falling back to
	// the ambient signal when nothing is stored.
	InitializeDarkMode(ctx context.Context) error

	Tasks() []models.Task
	Visible() []models.Task
	Statistics() query.Statistics
	Query() query.Params
	DarkMode() bool
	Snapshot() Snapshot
}

// PreferenceStore persists string preferences by key.
type PreferenceStore interface {
	// Get returns the stored value. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// PreferenceWatcher is implemented by preference backends that can report
// changes made by other processes.
type PreferenceWatcher interface {
	// Watch emits the new value of key whenever it changes on the backend.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan string, error)
}

// AppearanceDetector reports the host environment's colour-scheme preference.
type AppearanceDetector interface {
	PrefersDark() bool
}

// AppearanceFunc adapts a function to AppearanceDetector.
type AppearanceFunc func() bool

func (f AppearanceFunc) PrefersDark() bool { return f() }
