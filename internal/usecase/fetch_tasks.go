package usecase

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
	"taskdeck/internal/taskcache"
)

// FetchTasksInput contains the parameters for fetching the task list.
type FetchTasksInput struct {
	Filter    domain.TaskFilter
	SortBy    domain.SortKey
	SortOrder domain.SortOrder
	Page      int
	PageSize  int
}

// FetchTasksOutput contains the fetched tasks.
type FetchTasksOutput struct {
	Tasks []domain.Task
	Stale bool // True when a mutation superseded this fetch and the cache kept its state
}

// FetchTasks is the use case for loading the task list into the cache.
type FetchTasks struct {
	api    domain.TaskAPI
	cache  *taskcache.Cache
	logger domain.Logger
}

// NewFetchTasks creates a new FetchTasks use case.
func NewFetchTasks(api domain.TaskAPI, cache *taskcache.Cache, logger domain.Logger) *FetchTasks {
	return &FetchTasks{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Execute fetches tasks from the server and stores them in the cache.
// A mutation that lands while the fetch is in flight wins: the stale
// response is discarded instead of clobbering the newer cache state.
func (uc *FetchTasks) Execute(ctx context.Context, in FetchTasksInput) (*FetchTasksOutput, error) {
	version := uc.cache.BeginFetch()
	uc.cache.SetFilter(in.Filter)

	tasks, err := uc.api.List(ctx, in.Filter, domain.ListOptions{
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
		Page:      in.Page,
		PageSize:  in.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	applied := uc.cache.ApplyFetch(tasks, version)
	if !applied {
		uc.logger.Debug("tasks", "stale fetch discarded")
	}
	return &FetchTasksOutput{Tasks: tasks, Stale: !applied}, nil
}
