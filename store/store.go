package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/models"
	"github.com/google/uuid"
)

// ErrTaskNotFound is returned by operations addressing an unknown task id.
var ErrTaskNotFound = errors.New("task not found")

// maxIDAttempts bounds retries when the generator returns an issued ID.
const maxIDAttempts = 16

// Snapshot is a consistent view of the whole store at one version.
type Snapshot struct {
	Tasks      []models.Task    `json:"tasks"`
	Visible    []models.Task    `json:"visible"`
	Statistics query.Statistics `json:"statistics"`
	Query      query.Params     `json:"query"`
	DarkMode   bool             `json:"isDarkMode"`
	Version    uint64           `json:"version"`
}

// Store is the single source of truth for tasks, query state and the
// appearance flag. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	// persistMu orders theme writes without holding mu during backend I/O.
	persistMu sync.Mutex

	tasks    []models.Task
	issued   map[string]struct{}
	params   query.Params
	darkMode bool

	version      uint64 // bumped on every state change
	tasksVersion uint64 // bumped when the collection changes
	stats        query.Statistics
	statsVersion uint64
	statsValid   bool

	prefs      PreferenceStore
	appearance AppearanceDetector
	newID      func() string
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPreferences sets the backend used for the appearance preference.
func WithPreferences(p PreferenceStore) Option {
	return func(s *Store) { s.prefs = p }
}

// WithAppearance sets the ambient colour-scheme signal.
func WithAppearance(d AppearanceDetector) Option {
	return func(s *Store) { s.appearance = d }
}

// WithIDGenerator overrides task ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns an empty store with default query state and light appearance.
func New(opts ...Option) *Store {
	s := &Store{
		tasks:  []models.Task{},
		issued: make(map[string]struct{}),
		params: query.DefaultParams(),
		newID:  generateID,
		now:    func() time.Time { return time.Now().UTC() },
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prefs == nil {
		s.prefs = NewMemoryPreferences()
	}
	if s.appearance == nil {
		s.appearance = AppearanceFunc(func() bool { return false })
	}
	return s
}

// generateID returns a short task identifier, e.g. "task-1f3a9c2e".
func generateID() string {
	return "task-" + uuid.New().String()[:8]
}

// nextIDLocked returns an ID that has never been issued by this store.
func (s *Store) nextIDLocked() string {
	for range maxIDAttempts {
		id := s.newID()
		if _, seen := s.issued[id]; !seen && id != "" {
			s.issued[id] = struct{}{}
			return id
		}
	}
	id := "task-" + uuid.NewString()
	s.issued[id] = struct{}{}
	return id
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *Store) touchLocked(tasksChanged bool) {
	s.version++
	if tasksChanged {
		s.tasksVersion++
	}
}

func (s *Store) AddTask(d models.Draft) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := models.Task{
		ID:          s.nextIDLocked(),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		Status:      d.Status,
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, t)
	s.touchLocked(true)
	s.log.Debug("task added", "id", t.ID, "title", t.Title)
	return t
}

func (s *Store) EditTask(id string, d models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("edit task %s: %w", id, ErrTaskNotFound)
	}
	t := &s.tasks[i]
	t.Title = d.Title
	t.Description = d.Description
	t.DueDate = d.DueDate
	t.Priority = d.Priority
	t.Status = d.Status
	s.touchLocked(true)
	s.log.Debug("task edited", "id", id)
	return nil
}

func (s *Store) SetTaskStatus(id string, status models.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("set status of task %s: %w", id, ErrTaskNotFound)
	}
	if s.tasks[i].Status != status {
		s.tasks[i].Status = status
		s.touchLocked(true)
	}
	return nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("delete task %s: %w", id, ErrTaskNotFound)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.touchLocked(true)
	s.log.Debug("task deleted", "id", id)
	return nil
}

func (s *Store) Task(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	return s.tasks[i], nil
}

func (s *Store) MarkAllCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.tasks {
		if s.tasks[i].Status != models.StatusCompleted {
			s.tasks[i].Status = models.StatusCompleted
			changed++
		}
	}
	if changed > 0 {
		s.touchLocked(true)
	}
	s.log.Debug("marked all completed", "changed", changed)
	return changed
}

func (s *Store) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.Completed() })
	removed := before - len(s.tasks)
	if removed > 0 {
		s.touchLocked(true)
	}
	s.log.Debug("cleared completed", "removed", removed)
	return removed
}

func (s *Store) setParam(fn func(p *query.Params)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.params)
	s.touchLocked(false)
}

func (s *Store) SetSearchQuery(text string) {
	s.setParam(func(p *query.Params) { p.Search = text })
}

func (s *Store) SetStatusFilter(f query.StatusFilter) {
	s.setParam(func(p *query.Params) { p.Status = f })
}

func (s *Store) SetPriorityFilter(f query.PriorityFilter) {
	s.setParam(func(p *query.Params) { p.Priority = f })
}

func (s *Store) SetSortBy(k query.SortKey) {
	s.setParam(func(p *query.Params) { p.SortBy = k })
}

func (s *Store) SetSortOrder(o query.SortOrder) {
	s.setParam(func(p *query.Params) { p.Order = o })
}

func (s *Store) ToggleSortOrder() query.SortOrder {
	var order query.SortOrder
	s.setParam(func(p *query.Params) {
		p.Order = p.Order.Reverse()
		order = p.Order
	})
	return order
}

func (s *Store) ResetFilters() {
	s.setParam(func(p *query.Params) { *p = query.DefaultParams() })
}

func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	s.touchLocked(false)
	s.mu.Unlock()

	if err := s.prefs.Set(ctx, ThemeKey, themeValue(dark)); err != nil {
		return dark, fmt.Errorf("persist theme: %w", err)
	}
	return dark, nil
}

func (s *Store) InitializeDarkMode(ctx context.Context) error {
	saved, ok, err := s.prefs.Get(ctx, ThemeKey)
	if err != nil {
		ok = false
		err = fmt.Errorf("read theme: %w", err)
	}

	var dark bool
	if ok {
		dark = saved == ThemeDark
	} else {
		dark = s.appearance.PrefersDark()
	}

	s.mu.Lock()
	s.darkMode = dark
	s.touchLocked(false)
	s.mu.Unlock()

	s.log.Debug("appearance initialized", "dark", dark, "persisted", ok)
	return err
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Visible returns the filtered and sorted list for the current query state.
func (s *Store) Visible() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return query.Apply(s.tasks, s.params)
}

// Statistics returns the per-status counts, recomputed only when the
// collection changed since the last call.
func (s *Store) Statistics() query.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statisticsLocked()
}

func (s *Store) statisticsLocked() query.Statistics {
	if !s.statsValid || s.statsVersion != s.tasksVersion {
		s.stats = query.ComputeStatistics(s.tasks)
		s.statsVersion = s.tasksVersion
		s.statsValid = true
	}
	return s.stats
}

func (s *Store) Query() query.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// Version increases on every state change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Tasks:      slices.Clone(s.tasks),
		Visible:    query.Apply(s.tasks, s.params),
		Statistics: s.statisticsLocked(),
		Query:      s.params,
		DarkMode:   s.darkMode,
		Version:    s.version,
	}
}

var _ TaskStore = (*Store)(nil)
