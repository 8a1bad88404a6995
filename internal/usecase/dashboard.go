package usecase

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
)

// DefaultRecentLimit is how many recent tasks the dashboard shows.
const DefaultRecentLimit = 5

// DashboardOutput aggregates everything the dashboard view needs.
type DashboardOutput struct {
	Stats    *domain.TaskStats
	Recent   []domain.Task
	Overdue  []domain.Task
	DueToday []domain.Task
}

// Dashboard is the use case for loading the dashboard.
type Dashboard struct {
	api domain.TaskAPI
}

// NewDashboard creates a new Dashboard use case.
func NewDashboard(api domain.TaskAPI) *Dashboard {
	return &Dashboard{api: api}
}

// Execute loads the statistics and the highlight lists.
func (uc *Dashboard) Execute(ctx context.Context, recentLimit int) (*DashboardOutput, error) {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	stats, err := uc.api.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	recent, err := uc.api.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent tasks: %w", err)
	}
	overdue, err := uc.api.Overdue(ctx)
	if err != nil {
		return nil, fmt.Errorf("load overdue tasks: %w", err)
	}
	dueToday, err := uc.api.DueToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("load due-today tasks: %w", err)
	}

	return &DashboardOutput{
		Stats:    stats,
		Recent:   recent,
		Overdue:  overdue,
		DueToday: dueToday,
	}, nil
}
