package usecase

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
	"taskdeck/internal/taskcache"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	ID string
}

// ShowTaskOutput contains the task details.
type ShowTaskOutput struct {
	Task *domain.Task
}

// ShowTask is the use case for loading a single task.
type ShowTask struct {
	api   domain.TaskAPI
	cache *taskcache.Cache
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(api domain.TaskAPI, cache *taskcache.Cache) *ShowTask {
	return &ShowTask{
		api:   api,
		cache: cache,
	}
}

// Execute fetches the task and marks it selected in the cache.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := uc.api.Get(ctx, in.ID)
	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.IsNotFound() {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	uc.cache.SetSelected(task)
	return &ShowTaskOutput{Task: task}, nil
}
