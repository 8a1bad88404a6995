package httpapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/domain"
)

// TaskClient implements domain.TaskAPI over the REST backend.
type TaskClient struct {
	client *Client
}

// NewTaskClient creates a TaskClient.
func NewTaskClient(client *Client) *TaskClient {
	return &TaskClient{client: client}
}

// List retrieves tasks matching the filter and options.
func (t *TaskClient) List(ctx context.Context, filter domain.TaskFilter, opts domain.ListOptions) ([]domain.Task, error) {
	query := url.Values{}

	if len(filter.Statuses) > 0 {
		query.Set("status", joinStatuses(filter.Statuses))
	}
	if len(filter.Priorities) > 0 {
		query.Set("priority", joinPriorities(filter.Priorities))
	}
	if filter.AssignedTo != "" {
		query.Set("assignedTo", filter.AssignedTo)
	}
	if filter.CreatedBy != "" {
		query.Set("createdBy", filter.CreatedBy)
	}
	if filter.SearchText != "" {
		query.Set("search", filter.SearchText)
	}
	if len(filter.Tags) > 0 {
		query.Set("tags", strings.Join(filter.Tags, ","))
	}
	if filter.DueFrom != nil {
		query.Set("dueFrom", filter.DueFrom.Format(time.RFC3339))
	}
	if filter.DueTo != nil {
		query.Set("dueTo", filter.DueTo.Format(time.RFC3339))
	}

	if opts.SortBy != "" {
		query.Set("sortBy", string(opts.SortBy))
	}
	if opts.SortOrder != "" {
		query.Set("sortOrder", string(opts.SortOrder))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(opts.PageSize))
	}

	var tasks []domain.Task
	if err := t.client.Get(ctx, "/tasks", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get retrieves a task by ID.
func (t *TaskClient) Get(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := t.client.Get(ctx, "/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create creates a new task.
func (t *TaskClient) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	var task domain.Task
	if err := t.client.Post(ctx, "/tasks", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates an existing task.
func (t *TaskClient) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := t.client.Put(ctx, "/tasks/"+url.PathEscape(id), patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by ID.
func (t *TaskClient) Delete(ctx context.Context, id string) error {
	return t.client.Delete(ctx, "/tasks/"+url.PathEscape(id))
}

// Stats retrieves the dashboard statistics.
func (t *TaskClient) Stats(ctx context.Context) (*domain.TaskStats, error) {
	var stats domain.TaskStats
	if err := t.client.Get(ctx, "/tasks/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Recent retrieves the most recently created tasks.
func (t *TaskClient) Recent(ctx context.Context, limit int) ([]domain.Task, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var tasks []domain.Task
	if err := t.client.Get(ctx, "/tasks/recent", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Overdue retrieves tasks past their due date and not done.
func (t *TaskClient) Overdue(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := t.client.Get(ctx, "/tasks/overdue", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DueToday retrieves tasks due on the current day.
func (t *TaskClient) DueToday(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := t.client.Get(ctx, "/tasks/due-today", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Search retrieves tasks matching a free-text query.
func (t *TaskClient) Search(ctx context.Context, queryText string) ([]domain.Task, error) {
	query := url.Values{}
	query.Set("q", queryText)
	var tasks []domain.Task
	if err := t.client.Get(ctx, "/tasks/search", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func joinStatuses(statuses []domain.Status) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func joinPriorities(priorities []domain.Priority) string {
	parts := make([]string, len(priorities))
	for i, p := range priorities {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

// Ensure TaskClient implements TaskAPI.
var _ domain.TaskAPI = (*TaskClient)(nil)
