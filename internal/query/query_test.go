package query

import (
	"testing"
	"time"

	"github.com/Captain-Vikram/To-Do-List/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func task(id, title string, mods ...func(*models.Task)) models.Task {
	t := models.Task{ID: id, Title: title, Priority: models.PriorityMedium, CreatedAt: base}
	for _, m := range mods {
		m(&t)
	}
	return t
}

func due(d string) func(*models.Task)               { return func(t *models.Task) { t.DueDate = d } }
func desc(d string) func(*models.Task)              { return func(t *models.Task) { t.Description = d } }
func prio(p models.TaskPriority) func(*models.Task) { return func(t *models.Task) { t.Priority = p } }
func status(s models.TaskStatus) func(*models.Task) { return func(t *models.Task) { t.Status = s } }
func created(offset time.Duration) func(*models.Task) {
	return func(t *models.Task) { t.CreatedAt = base.Add(offset) }
}

func ids(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sampleTasks() []models.Task {
	return []models.Task{
		task("1", "Buy groceries", desc("milk and EGGS"), prio(models.PriorityLow)),
		task("2", "Write report", status(models.StatusInProgress), prio(models.PriorityHigh)),
		task("3", "Call plumber", desc("kitchen sink"), status(models.StatusCompleted)),
		task("4", "Plan trip", desc("book eggs benedict brunch"), prio(models.PriorityHigh)),
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		status   StatusFilter
		priority PriorityFilter
		want     []string
	}{
		{name: "no filters", status: AnyStatus, priority: AnyPriority, want: []string{"1", "2", "3", "4"}},
		{name: "search title case-insensitive", search: "REPORT", status: AnyStatus, priority: AnyPriority, want: []string{"2"}},
		{name: "search description", search: "eggs", status: AnyStatus, priority: AnyPriority, want: []string{"1", "4"}},
		{name: "status only", status: ForStatus(models.StatusCompleted), priority: AnyPriority, want: []string{"3"}},
		{name: "priority only", status: AnyStatus, priority: ForPriority(models.PriorityHigh), want: []string{"2", "4"}},
		{name: "all conditions conjunctive", search: "eggs", status: ForStatus(models.StatusPending), priority: ForPriority(models.PriorityHigh), want: []string{"4"}},
		{name: "no match", search: "zzz", status: AnyStatus, priority: AnyPriority, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(sampleTasks(), tc.search, tc.status, tc.priority)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter(sampleTasks(), "e", AnyStatus, ForPriority(models.PriorityHigh))
	twice := Filter(once, "e", AnyStatus, ForPriority(models.PriorityHigh))
	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sampleTasks()
	before := append([]models.Task(nil), in...)
	_ = Filter(in, "plan", AnyStatus, AnyPriority)
	assert.Equal(t, before, in)
}

func TestSort_DueDateUndatedLast(t *testing.T) {
	tasks := []models.Task{
		task("A", "a", due("2024-01-01")),
		task("B", "b"),
		task("C", "c", due("2024-06-01")),
	}

	assert.Equal(t, []string{"A", "C", "B"}, ids(Sort(tasks, SortByDueDate, Ascending)))
	assert.Equal(t, []string{"C", "A", "B"}, ids(Sort(tasks, SortByDueDate, Descending)))
}

func TestSort_Priority(t *testing.T) {
	tasks := []models.Task{
		task("m", "m", prio(models.PriorityMedium)),
		task("h", "h", prio(models.PriorityHigh)),
		task("l", "l", prio(models.PriorityLow)),
	}
	assert.Equal(t, []string{"l", "m", "h"}, ids(Sort(tasks, SortByPriority, Ascending)))
	assert.Equal(t, []string{"h", "m", "l"}, ids(Sort(tasks, SortByPriority, Descending)))
}

func TestSort_CreatedAt(t *testing.T) {
	tasks := []models.Task{
		task("mid", "x", created(time.Hour)),
		task("old", "x", created(0)),
		task("new", "x", created(2*time.Hour)),
	}
	assert.Equal(t, []string{"old", "mid", "new"}, ids(Sort(tasks, SortByCreatedAt, Ascending)))
	assert.Equal(t, []string{"new", "mid", "old"}, ids(Sort(tasks, SortByCreatedAt, Descending)))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	tasks := []models.Task{
		task("first", "x", prio(models.PriorityHigh)),
		task("second", "y", prio(models.PriorityHigh)),
		task("low", "z", prio(models.PriorityLow)),
	}
	for _, order := range []SortOrder{Ascending, Descending} {
		once := Sort(tasks, SortByPriority, order)
		twice := Sort(once, SortByPriority, order)
		assert.Equal(t, ids(once), ids(twice))
		// equal keys keep their relative order in both directions
		assert.Less(t, indexOf(ids(once), "first"), indexOf(ids(once), "second"))
	}
}

func TestSort_TitleKeepsOrder(t *testing.T) {
	tasks := []models.Task{task("b", "Banana"), task("a", "Apple"), task("c", "Cherry")}
	assert.Equal(t, []string{"b", "a", "c"}, ids(Sort(tasks, SortByTitle, Ascending)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(Sort(tasks, SortByTitle, Descending)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{task("2", "x", created(time.Hour)), task("1", "x")}
	_ = Sort(tasks, SortByCreatedAt, Ascending)
	assert.Equal(t, []string{"2", "1"}, ids(tasks))
}

func TestSort_Empty(t *testing.T) {
	got := Sort(nil, SortByCreatedAt, Descending)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply(t *testing.T) {
	p := DefaultParams()
	p.Priority = ForPriority(models.PriorityHigh)
	p.SortBy = SortByPriority
	got := Apply(sampleTasks(), p)
	assert.Equal(t, []string{"2", "4"}, ids(got))
}

func TestComputeStatistics(t *testing.T) {
	assert.Equal(t, Statistics{}, ComputeStatistics(nil))

	var tasks []models.Task
	for i := 0; i < 2; i++ {
		tasks = append(tasks, task("p", "p"))
	}
	tasks = append(tasks, task("i", "i", status(models.StatusInProgress)))
	for i := 0; i < 3; i++ {
		tasks = append(tasks, task("c", "c", status(models.StatusCompleted)))
	}

	got := ComputeStatistics(tasks)
	assert.Equal(t, Statistics{Total: 6, Pending: 2, InProgress: 1, Completed: 3}, got)
	assert.Equal(t, 3, got.Count(models.StatusCompleted))
}

func TestGroupByStatus(t *testing.T) {
	groups := GroupByStatus(sampleTasks())
	require.Len(t, groups, 3)
	assert.Equal(t, models.StatusPending, groups[0].Status)
	assert.Equal(t, []string{"1", "4"}, ids(groups[0].Tasks))
	assert.Equal(t, []string{"2"}, ids(groups[1].Tasks))
	assert.Equal(t, []string{"3"}, ids(groups[2].Tasks))

	empty := GroupByStatus(nil)
	require.Len(t, empty, 3)
	assert.Empty(t, empty[1].Tasks)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	assert.True(t, IsOverdue(task("x", "x", due("2024-05-09")), now))
	assert.False(t, IsOverdue(task("x", "x", due("2024-05-10")), now), "a task due today is not overdue until the day ends")
	assert.False(t, IsOverdue(task("x", "x"), now))
	assert.False(t, IsOverdue(task("x", "x", due("2024-01-01"), status(models.StatusCompleted)), now))
}

func TestParams(t *testing.T) {
	p := DefaultParams()
	assert.False(t, p.Active())
	assert.Equal(t, SortByCreatedAt, p.SortBy)
	assert.Equal(t, Descending, p.Order)

	p.Search = "x"
	assert.True(t, p.Active())
}

func TestParseFilters(t *testing.T) {
	sf, err := ParseStatusFilter("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusFilter("in_progress"), sf)

	sf, err = ParseStatusFilter("ALL")
	require.NoError(t, err)
	assert.Equal(t, AnyStatus, sf)

	_, err = ParseStatusFilter("archived")
	assert.Error(t, err)

	pf, err := ParsePriorityFilter("high")
	require.NoError(t, err)
	assert.True(t, pf.Matches(models.PriorityHigh))
	assert.False(t, pf.Matches(models.PriorityLow))

	k, err := ParseSortKey("duedate")
	require.NoError(t, err)
	assert.Equal(t, SortByDueDate, k)

	o, err := ParseSortOrder("ascending")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)
	assert.Equal(t, Descending, o.Reverse())
}

func TestCycling(t *testing.T) {
	assert.Equal(t, ForStatus(models.StatusPending), AnyStatus.Next())
	assert.Equal(t, AnyStatus, ForStatus(models.StatusCompleted).Next())
	assert.Equal(t, ForPriority(models.PriorityLow), AnyPriority.Next())
	assert.Equal(t, SortByDueDate, SortByCreatedAt.Next())
	assert.Equal(t, SortByCreatedAt, SortByTitle.Next())
}
