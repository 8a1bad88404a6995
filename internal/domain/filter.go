package domain

import "strings"

// Matches reports whether the task satisfies every present field of the
// filter. Dimensions combine with AND; multi-value dimensions (statuses,
// priorities) match with OR within the set. Due-date bounds are inclusive.
func (f *TaskFilter) Matches(t *Task) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, t.Priority) {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.CreatedBy != "" && t.CreatedBy != f.CreatedBy {
		return false
	}
	if f.SearchText != "" && !matchesSearch(t, f.SearchText) {
		return false
	}
	if f.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueFrom)) {
		return false
	}
	if f.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueTo)) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(t, f.Tags) {
		return false
	}
	return true
}

// FilterTasks returns the subset of tasks matching the filter.
// The input slice is never mutated; a new slice is always returned.
func FilterTasks(tasks []Task, filter TaskFilter) []Task {
	result := make([]Task, 0, len(tasks))
	for i := range tasks {
		if filter.Matches(&tasks[i]) {
			result = append(result, tasks[i])
		}
	}
	return result
}

// matchesSearch checks title and description for a case-insensitive substring.
func matchesSearch(t *Task, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// hasAnyTag returns true if the task carries at least one of the given tags.
func hasAnyTag(t *Task, tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

func containsStatus(statuses []Status, s Status) bool {
	for _, have := range statuses {
		if have == s {
			return true
		}
	}
	return false
}

func containsPriority(priorities []Priority, p Priority) bool {
	for _, have := range priorities {
		if have == p {
			return true
		}
	}
	return false
}
