package usecase

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/domain"
)

// SearchTasksInput contains the parameters for searching tasks.
type SearchTasksInput struct {
	Query string
}

// SearchTasksOutput contains the matching tasks.
type SearchTasksOutput struct {
	Tasks []domain.Task
}

// SearchTasks is the use case for free-text task search.
type SearchTasks struct {
	api domain.TaskAPI
}

// NewSearchTasks creates a new SearchTasks use case.
func NewSearchTasks(api domain.TaskAPI) *SearchTasks {
	return &SearchTasks{api: api}
}

// Execute searches tasks by title, description and tags.
func (uc *SearchTasks) Execute(ctx context.Context, in SearchTasksInput) (*SearchTasksOutput, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return &SearchTasksOutput{Tasks: []domain.Task{}}, nil
	}

	tasks, err := uc.api.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return &SearchTasksOutput{Tasks: tasks}, nil
}
