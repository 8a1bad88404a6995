package usecase

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
	"taskdeck/internal/taskcache"
)

// CreateTaskInput contains the parameters for creating a task.
type CreateTaskInput struct {
	Draft domain.TaskDraft
}

// CreateTaskOutput contains the created task.
type CreateTaskOutput struct {
	Task *domain.Task
}

// CreateTask is the use case for creating a task.
type CreateTask struct {
	api    domain.TaskAPI
	cache  *taskcache.Cache
	logger domain.Logger
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(api domain.TaskAPI, cache *taskcache.Cache, logger domain.Logger) *CreateTask {
	return &CreateTask{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Execute validates the draft, creates the task on the server, and
// prepends it to the cached list.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	if err := in.Draft.Validate(); err != nil {
		return nil, err
	}

	task, err := uc.api.Create(ctx, in.Draft)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	uc.cache.AddTask(*task)
	uc.logger.Info("tasks", "task created", "id", task.ID, "title", task.Title)
	return &CreateTaskOutput{Task: task}, nil
}
