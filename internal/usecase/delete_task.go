package usecase

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
	"taskdeck/internal/taskcache"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	ID string
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	api    domain.TaskAPI
	cache  *taskcache.Cache
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(api domain.TaskAPI, cache *taskcache.Cache, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Execute deletes the task on the server and drops it from the cache.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) error {
	if err := uc.api.Delete(ctx, in.ID); err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.IsNotFound() {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	uc.cache.RemoveTask(in.ID)
	uc.logger.Info("tasks", "task deleted", "id", in.ID)
	return nil
}
