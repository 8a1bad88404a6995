package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func sampleTasks() []Task {
	due1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	return []Task{
		{
			ID:          "1",
			Title:       "Setup project repository",
			Description: "Initialize the repository",
			Status:      StatusTodo,
			Priority:    PriorityHigh,
			AssignedTo:  "2",
			CreatedBy:   "1",
			DueDate:     timePtr(due1),
			Tags:        []string{"setup", "infrastructure"},
		},
		{
			ID:          "2",
			Title:       "Design database schema",
			Description: "Create the ERD",
			Status:      StatusInProgress,
			Priority:    PriorityMedium,
			AssignedTo:  "3",
			CreatedBy:   "1",
			DueDate:     timePtr(due2),
			Tags:        []string{"database", "design"},
		},
		{
			ID:          "3",
			Title:       "Write API documentation",
			Description: "Document all endpoints",
			Status:      StatusDone,
			Priority:    PriorityLow,
			AssignedTo:  "2",
			CreatedBy:   "2",
		},
	}
}

func TestFilterTasks_EmptyFilterMatchesAll(t *testing.T) {
	tasks := sampleTasks()
	result := FilterTasks(tasks, TaskFilter{})
	assert.Len(t, result, 3)
}

func TestFilterTasks_ByStatus(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, TaskFilter{Statuses: []Status{StatusDone}})

	require.Len(t, result, 1)
	assert.Equal(t, "3", result[0].ID)
}

func TestFilterTasks_StatusSetIsOr(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, TaskFilter{
		Statuses: []Status{StatusTodo, StatusDone},
	})

	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "3", result[1].ID)
}

func TestFilterTasks_DimensionsAreAnd(t *testing.T) {
	tasks := sampleTasks()

	// Task 1 and 3 are assigned to user 2, but only task 1 is TODO.
	result := FilterTasks(tasks, TaskFilter{
		Statuses:   []Status{StatusTodo},
		AssignedTo: "2",
	})

	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestFilterTasks_ByPriority(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, TaskFilter{
		Priorities: []Priority{PriorityHigh, PriorityUrgent},
	})

	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestFilterTasks_ByCreator(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, TaskFilter{CreatedBy: "2"})

	require.Len(t, result, 1)
	assert.Equal(t, "3", result[0].ID)
}

func TestFilterTasks_SearchIsCaseInsensitive(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "matches title", search: "DATABASE", want: []string{"2"}},
		{name: "matches description", search: "endpoints", want: []string{"3"}},
		{name: "substring", search: "doc", want: []string{"3"}},
		{name: "no match", search: "nonexistent", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterTasks(tasks, TaskFilter{SearchText: tt.search})
			got := make([]string, 0, len(result))
			for _, task := range result {
				got = append(got, task.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterTasks_DueDateRangeIsInclusive(t *testing.T) {
	tasks := sampleTasks()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	result := FilterTasks(tasks, TaskFilter{DueFrom: &from, DueTo: &to})

	// Task 1 is due exactly on the boundary; task 3 has no due date and
	// cannot match a range constraint.
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestFilterTasks_TagsMatchAny(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, TaskFilter{Tags: []string{"design", "setup"}})

	require.Len(t, result, 2)
}

func TestFilterTasks_ReturnsSubsetAndNeverMutates(t *testing.T) {
	tasks := sampleTasks()
	original := make([]Task, len(tasks))
	copy(original, tasks)

	filter := TaskFilter{
		Statuses:   []Status{StatusTodo, StatusInProgress},
		SearchText: "e",
	}
	result := FilterTasks(tasks, filter)

	assert.Equal(t, original, tasks)
	for i := range result {
		assert.True(t, filter.Matches(&result[i]))
	}
	// Every excluded task violates at least one present field.
	excluded := 0
	for i := range tasks {
		if !filter.Matches(&tasks[i]) {
			excluded++
		}
	}
	assert.Equal(t, len(tasks)-len(result), excluded)
}

func TestTaskFilter_IsZero(t *testing.T) {
	assert.True(t, (&TaskFilter{}).IsZero())
	assert.False(t, (&TaskFilter{SearchText: "x"}).IsZero())
	assert.False(t, (&TaskFilter{Statuses: []Status{StatusTodo}}).IsZero())
}
