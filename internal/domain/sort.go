package domain

import (
	"sort"
	"strings"
	"time"
)

// SortTasks returns a new slice sorted by the given key and order. The sort
// is stable: tasks with equal keys keep their relative input order. An
// unknown key returns the input order unchanged.
func SortTasks(tasks []Task, key SortKey, order SortOrder) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	var less func(a, b *Task) int
	switch key {
	case SortByTitle:
		less = func(a, b *Task) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortByPriority:
		less = func(a, b *Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		}
	case SortByStatus:
		less = func(a, b *Task) int {
			return a.Status.Rank() - b.Status.Rank()
		}
	case SortByDueDate:
		less = func(a, b *Task) int {
			return compareTime(dueOrZero(a), dueOrZero(b))
		}
	case SortByCreatedAt:
		less = func(a, b *Task) int {
			return compareTime(a.CreatedAt, b.CreatedAt)
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := less(&sorted[i], &sorted[j])
		if order == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted
}

// dueOrZero treats an absent due date as the zero time, which sorts earliest.
func dueOrZero(t *Task) time.Time {
	if t.DueDate == nil {
		return time.Time{}
	}
	return *t.DueDate
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
