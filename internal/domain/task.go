// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents a work item managed by taskdeck.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	AssignedTo     string     `json:"assignedTo,omitempty"` // User ID (empty = unassigned)
	CreatedBy      string     `json:"createdBy"`            // User ID
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	Tags           []string   `json:"tags,omitempty"`
}

// IsOverdue returns true if the task has a due date in the past and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}

// IsDueToday returns true if the task is due on the same calendar day as now.
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// HasTag returns true if the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// TaskDraft contains the fields for creating a new task.
type TaskDraft struct {
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	AssignedTo     string     `json:"assignedTo,omitempty"`
	Status         Status     `json:"status,omitempty"`
	Priority       Priority   `json:"priority"`
	Tags           []string   `json:"tags,omitempty"`
}

// Validate checks that the draft can be submitted.
func (d *TaskDraft) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.Status != "" && !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !d.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// TaskPatch contains the fields for updating an existing task.
// Nil fields are left unchanged on the server.
type TaskPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *Status    `json:"status,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
	AssignedTo     *string    `json:"assignedTo,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p *TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssignedTo == nil && p.DueDate == nil &&
		p.Tags == nil && p.EstimatedHours == nil
}

// Validate checks that the patch is well-formed and changes at least one field.
func (p *TaskPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if p.Title != nil && *p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// TaskFilter specifies criteria for selecting tasks.
// Absent fields mean "no constraint on that dimension".
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	DueFrom    *time.Time // Inclusive lower bound on due date
	DueTo      *time.Time // Inclusive upper bound on due date
	AssignedTo string     // Assignee user ID
	CreatedBy  string     // Creator user ID
	SearchText string     // Case-insensitive substring of title or description
	Statuses   []Status   // OR within the set
	Priorities []Priority // OR within the set
	Tags       []string   // Match if the task has at least one of these
}

// IsZero returns true if the filter constrains nothing.
func (f *TaskFilter) IsZero() bool {
	return f.DueFrom == nil && f.DueTo == nil && f.AssignedTo == "" &&
		f.CreatedBy == "" && f.SearchText == "" && len(f.Statuses) == 0 &&
		len(f.Priorities) == 0 && len(f.Tags) == 0
}

// TaskStats summarizes the task collection for the dashboard.
type TaskStats struct {
	Total       int `json:"total"`
	Todo        int `json:"todo"`
	InProgress  int `json:"inProgress"`
	Done        int `json:"done"`
	Overdue     int `json:"overdue"`
	DueToday    int `json:"dueToday"`
	DueThisWeek int `json:"dueThisWeek"`
}

// SortKey identifies a task sort dimension.
type SortKey string

// Valid sort keys.
const (
	SortByTitle     SortKey = "title"
	SortByPriority  SortKey = "priority"
	SortByStatus    SortKey = "status"
	SortByDueDate   SortKey = "dueDate"
	SortByCreatedAt SortKey = "createdAt"
)

// SortOrder identifies a sort direction.
type SortOrder string

// Valid sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListOptions carries pagination and sorting for server-side task listing.
type ListOptions struct {
	SortBy    SortKey
	SortOrder SortOrder
	Page      int
	PageSize  int
}
