package query

import (
	"cmp"
	"slices"

	"github.com/Captain-Vikram/To-Do-List/models"
)

// Sort returns a stably sorted copy of tasks. Descending order negates the
// comparator, except that tasks without a due date always come last when
// sorting by due date.
func Sort(tasks []models.Task, key SortKey, order SortOrder) []models.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []models.Task{}
	}
	cmpFn := comparator(key)
	slices.SortStableFunc(out, func(a, b models.Task) int {
		if key == SortByDueDate {
			if c, decided := undatedLast(a, b); decided {
				return c
			}
		}
		c := cmpFn(a, b)
		if order == Descending {
			return -c
		}
		return c
	})
	return out
}

func comparator(key SortKey) func(a, b models.Task) int {
	switch key {
	case SortByDueDate:
		return func(a, b models.Task) int {
			da, _ := a.Due()
			db, _ := b.Due()
			return da.Compare(db)
		}
	case SortByPriority:
		return func(a, b models.Task) int {
			return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
		}
	case SortByCreatedAt:
		return func(a, b models.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	default:
		return func(models.Task, models.Task) int { return 0 }
	}
}

// undatedLast orders a dated task before an undated one regardless of
// direction. decided is false when both tasks carry a date.
func undatedLast(a, b models.Task) (c int, decided bool) {
	_, aok := a.Due()
	_, bok := b.Due()
	switch {
	case aok && bok:
		return 0, false
	case !aok && !bok:
		return 0, true
	case !aok:
		return 1, true
	default:
		return -1, true
	}
}
