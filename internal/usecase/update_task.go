package usecase

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
	"taskdeck/internal/taskcache"
)

// UpdateTaskInput contains the parameters for updating a task.
type UpdateTaskInput struct {
	ID    string
	Patch domain.TaskPatch
}

// UpdateTaskOutput contains the updated task.
type UpdateTaskOutput struct {
	Task *domain.Task
}

// UpdateTask is the use case for updating a task.
type UpdateTask struct {
	api    domain.TaskAPI
	cache  *taskcache.Cache
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(api domain.TaskAPI, cache *taskcache.Cache, logger domain.Logger) *UpdateTask {
	return &UpdateTask{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Execute validates the patch, applies it on the server, and replaces the
// task in the cached list.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if err := in.Patch.Validate(); err != nil {
		return nil, err
	}

	task, err := uc.api.Update(ctx, in.ID, in.Patch)
	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.IsNotFound() {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	uc.cache.UpdateTask(*task)
	uc.logger.Info("tasks", "task updated", "id", task.ID)
	return &UpdateTaskOutput{Task: task}, nil
}
