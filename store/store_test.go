package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock advancing one minute per call.
func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return New(append([]Option{WithClock(fixedClock())}, opts...)...)
}

func draft(title string, status models.TaskStatus) models.Draft {
	d := models.NewDraft()
	d.Title = title
	d.Status = status
	return d
}

func TestStore_AddTask(t *testing.T) {
	s := newTestStore(t)

	seen := map[string]bool{}
	for i := range 50 {
		task := s.AddTask(draft(fmt.Sprintf("task %d", i), models.StatusPending))
		assert.NotEmpty(t, task.ID)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		assert.False(t, task.CreatedAt.IsZero())
	}

	tasks := s.Tasks()
	require.Len(t, tasks, 50)
	assert.Equal(t, "task 0", tasks[0].Title)
	assert.Equal(t, "task 49", tasks[49].Title)
}

func TestStore_AddTaskDoesNotValidate(t *testing.T) {
	s := newTestStore(t)
	task := s.AddTask(models.Draft{Title: "", DueDate: "garbage"})
	assert.Equal(t, "", task.Title)
	assert.Len(t, s.Tasks(), 1)
}

func TestStore_IDsNeverReused(t *testing.T) {
	ids := []string{"task-a", "task-a", "task-b"}
	i := 0
	s := newTestStore(t, WithIDGenerator(func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}))

	first := s.AddTask(draft("one", models.StatusPending))
	require.NoError(t, s.DeleteTask(first.ID))
	second := s.AddTask(draft("two", models.StatusPending))

	assert.Equal(t, "task-a", first.ID)
	assert.Equal(t, "task-b", second.ID)
}

func TestStore_IDFallbackWhenGeneratorIsStuck(t *testing.T) {
	s := newTestStore(t, WithIDGenerator(func() string { return "task-same" }))
	a := s.AddTask(draft("a", models.StatusPending))
	b := s.AddTask(draft("b", models.StatusPending))
	assert.Equal(t, "task-same", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_EditTask(t *testing.T) {
	s := newTestStore(t)
	orig := s.AddTask(draft("original", models.StatusPending))

	edit := models.Draft{
		Title:       "renamed",
		Description: "details",
		DueDate:     "2024-06-01",
		Priority:    models.PriorityHigh,
		Status:      models.StatusInProgress,
	}
	require.NoError(t, s.EditTask(orig.ID, edit))

	got, err := s.Task(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Equal(t, edit, got.Draft())
}

func TestStore_MissingIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(draft("keep", models.StatusPending))
	before := s.Tasks()

	err := s.EditTask("task-missing", draft("x", models.StatusCompleted))
	assert.True(t, errors.Is(err, ErrTaskNotFound))

	err = s.DeleteTask("task-missing")
	assert.True(t, errors.Is(err, ErrTaskNotFound))

	err = s.SetTaskStatus("task-missing", models.StatusCompleted)
	assert.True(t, errors.Is(err, ErrTaskNotFound))

	_, err = s.Task("task-missing")
	assert.True(t, errors.Is(err, ErrTaskNotFound))

	assert.Equal(t, before, s.Tasks())
}

func TestStore_DeleteTask(t *testing.T) {
	s := newTestStore(t)
	a := s.AddTask(draft("a", models.StatusPending))
	b := s.AddTask(draft("b", models.StatusPending))
	c := s.AddTask(draft("c", models.StatusPending))

	require.NoError(t, s.DeleteTask(b.ID))

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, a.ID, tasks[0].ID)
	assert.Equal(t, c.ID, tasks[1].ID)
}

func TestStore_SetTaskStatus(t *testing.T) {
	s := newTestStore(t)
	a := s.AddTask(draft("a", models.StatusPending))
	require.NoError(t, s.SetTaskStatus(a.ID, models.StatusCompleted))

	got, err := s.Task(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "a", got.Title)
}

func TestStore_MarkAllCompletedIdempotent(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(draft("a", models.StatusPending))
	s.AddTask(draft("b", models.StatusInProgress))
	s.AddTask(draft("c", models.StatusCompleted))

	assert.Equal(t, 2, s.MarkAllCompleted())
	once := s.Tasks()
	assert.Equal(t, 0, s.MarkAllCompleted())
	assert.Equal(t, once, s.Tasks())

	for _, task := range once {
		assert.Equal(t, models.StatusCompleted, task.Status)
	}
}

func TestStore_ClearCompleted(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(draft("a", models.StatusPending))
	s.AddTask(draft("b", models.StatusCompleted))
	s.AddTask(draft("c", models.StatusCompleted))

	assert.Equal(t, 2, s.ClearCompleted())
	require.Len(t, s.Tasks(), 1)
	assert.Equal(t, "a", s.Tasks()[0].Title)

	s.MarkAllCompleted()
	s.ClearCompleted()
	assert.Empty(t, s.Tasks())
}

func TestStore_QueryStateAndVisible(t *testing.T) {
	s := newTestStore(t)
	first := s.AddTask(draft("Write report", models.StatusPending))
	second := s.AddTask(draft("Read book", models.StatusCompleted))

	// default: newest first
	assert.Equal(t, []string{second.ID, first.ID}, taskIDs(s.Visible()))

	s.SetSortOrder(query.Ascending)
	assert.Equal(t, []string{first.ID, second.ID}, taskIDs(s.Visible()))

	s.SetSearchQuery("REPORT")
	assert.Equal(t, []string{first.ID}, taskIDs(s.Visible()))

	s.SetSearchQuery("")
	s.SetStatusFilter(query.ForStatus(models.StatusCompleted))
	assert.Equal(t, []string{second.ID}, taskIDs(s.Visible()))

	s.SetPriorityFilter(query.ForPriority(models.PriorityHigh))
	assert.Empty(t, s.Visible())

	s.SetSortBy(query.SortByPriority)
	assert.Equal(t, query.Descending, s.ToggleSortOrder())

	s.ResetFilters()
	assert.Equal(t, query.DefaultParams(), s.Query())
	assert.Len(t, s.Visible(), 2)

	// the canonical collection keeps insertion order
	assert.Equal(t, []string{first.ID, second.ID}, taskIDs(s.Tasks()))
}

func TestStore_Statistics(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, query.Statistics{}, s.Statistics())

	s.AddTask(draft("p1", models.StatusPending))
	s.AddTask(draft("p2", models.StatusPending))
	s.AddTask(draft("i1", models.StatusInProgress))
	for i := range 3 {
		s.AddTask(draft(fmt.Sprintf("c%d", i), models.StatusCompleted))
	}
	assert.Equal(t, query.Statistics{Total: 6, Pending: 2, InProgress: 1, Completed: 3}, s.Statistics())

	// statistics ignore filters
	s.SetStatusFilter(query.ForStatus(models.StatusPending))
	assert.Equal(t, 6, s.Statistics().Total)

	s.ClearCompleted()
	assert.Equal(t, query.Statistics{Total: 3, Pending: 2, InProgress: 1}, s.Statistics())
}

func TestStore_Snapshot(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(draft("a", models.StatusPending))
	v := s.Version()

	snap := s.Snapshot()
	assert.Len(t, snap.Tasks, 1)
	assert.Len(t, snap.Visible, 1)
	assert.Equal(t, 1, snap.Statistics.Pending)
	assert.Equal(t, v, snap.Version)

	s.SetSearchQuery("zzz")
	assert.Greater(t, s.Version(), v)
	assert.Empty(t, s.Snapshot().Visible)
}

func TestStore_TasksReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.AddTask(draft("a", models.StatusPending))
	tasks := s.Tasks()
	tasks[0].Title = "mutated"
	assert.Equal(t, "a", s.Tasks()[0].Title)
}

func TestStore_DarkMode(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle persists", func(t *testing.T) {
		prefs := NewMemoryPreferences()
		s := newTestStore(t, WithPreferences(prefs))
		assert.False(t, s.DarkMode())

		dark, err := s.ToggleDarkMode(ctx)
		require.NoError(t, err)
		assert.True(t, dark)
		v, ok, _ := prefs.Get(ctx, ThemeKey)
		assert.True(t, ok)
		assert.Equal(t, ThemeDark, v)

		dark, err = s.ToggleDarkMode(ctx)
		require.NoError(t, err)
		assert.False(t, dark)
		v, _, _ = prefs.Get(ctx, ThemeKey)
		assert.Equal(t, ThemeLight, v)
	})

	tests := []struct {
		name    string
		stored  string
		hasPref bool
		ambient bool
		want    bool
	}{
		{name: "stored dark", stored: ThemeDark, hasPref: true, ambient: false, want: true},
		{name: "stored light beats ambient", stored: ThemeLight, hasPref: true, ambient: true, want: false},
		{name: "no preference uses ambient dark", ambient: true, want: true},
		{name: "no preference uses ambient light", ambient: false, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefs := NewMemoryPreferences()
			if tc.hasPref {
				require.NoError(t, prefs.Set(ctx, ThemeKey, tc.stored))
			}
			s := newTestStore(t,
				WithPreferences(prefs),
				WithAppearance(AppearanceFunc(func() bool { return tc.ambient })),
			)
			require.NoError(t, s.InitializeDarkMode(ctx))
			assert.Equal(t, tc.want, s.DarkMode())
		})
	}
}

type failingPrefs struct{}

func (failingPrefs) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}
func (failingPrefs) Set(context.Context, string, string) error { return errors.New("backend down") }
func (failingPrefs) Close() error                              { return nil }

func TestStore_DarkModeBackendFailure(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t,
		WithPreferences(failingPrefs{}),
		WithAppearance(AppearanceFunc(func() bool { return true })),
	)

	err := s.InitializeDarkMode(ctx)
	assert.Error(t, err)
	assert.True(t, s.DarkMode(), "falls back to ambient signal")

	dark, err := s.ToggleDarkMode(ctx)
	assert.Error(t, err)
	assert.False(t, dark)
	assert.False(t, s.DarkMode(), "flag flips even when persisting fails")
}

type slowPrefs struct {
	*MemoryPreferences
	started chan struct{}
	release chan struct{}
}

func (p slowPrefs) Set(ctx context.Context, key, value string) error {
	close(p.started)
	<-p.release
	return p.MemoryPreferences.Set(ctx, key, value)
}

func TestStore_ToggleDarkModeDoesNotBlockReaders(t *testing.T) {
	prefs := slowPrefs{
		MemoryPreferences: NewMemoryPreferences(),
		started:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	s := newTestStore(t, WithPreferences(prefs))

	done := make(chan error, 1)
	go func() {
		_, err := s.ToggleDarkMode(context.Background())
		done <- err
	}()
	<-prefs.started

	read := make(chan bool, 1)
	go func() { read <- s.DarkMode() }()
	select {
	case dark := <-read:
		assert.True(t, dark)
	case <-time.After(time.Second):
		t.Fatal("DarkMode blocked while the theme was being saved")
	}

	close(prefs.release)
	require.NoError(t, <-done)
	v, ok, err := prefs.Get(context.Background(), ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, v)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			task := s.AddTask(draft(fmt.Sprintf("t%d", i), models.StatusPending))
			_ = s.SetTaskStatus(task.ID, models.StatusInProgress)
			_ = s.Visible()
			_ = s.Statistics()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, s.Statistics().InProgress)
}

func taskIDs(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
