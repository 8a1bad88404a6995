// Package taskcache maintains an in-memory mirror of the last-fetched task
// collection and provides deterministic client-side filtering and sorting
// without additional network calls.
package taskcache

import (
	"sync"

	"taskdeck/internal/domain"
	"taskdeck/internal/watch"
)

// Cache is the process-wide task state. Exactly one instance exists per
// running application; consumers subscribe to change notifications instead
// of holding private copies.
//
// Mutating operations are serialized. Subscribers are notified synchronously
// and must not call mutating operations from within a notification.
type Cache struct {
	tasks    *watch.Value[[]domain.Task]
	selected *watch.Value[*domain.Task]
	loading  *watch.Value[bool]
	filter   *watch.Value[domain.TaskFilter]
	mu       sync.Mutex
	version  uint64
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		tasks:    watch.NewValue([]domain.Task{}),
		selected: watch.NewValue[*domain.Task](nil),
		loading:  watch.NewValue(false),
		filter:   watch.NewValue(domain.TaskFilter{}),
	}
}

// Tasks returns the currently cached task list in last-set order.
func (c *Cache) Tasks() []domain.Task {
	return c.tasks.Get()
}

// TaskByID returns the cached task with the given ID.
func (c *Cache) TaskByID(id string) (domain.Task, bool) {
	for _, t := range c.tasks.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// SetTasks replaces the cached list wholesale. Used after a successful
// list fetch.
func (c *Cache) SetTasks(tasks []domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.tasks.Set(tasks)
}

// AddTask prepends a task, newest first. Used after a successful create.
func (c *Cache) AddTask(task domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	current := c.tasks.Get()
	updated := make([]domain.Task, 0, len(current)+1)
	updated = append(updated, task)
	updated = append(updated, current...)
	c.tasks.Set(updated)
}

// UpdateTask replaces the cached task with a matching ID. If the ID is not
// present the call is a no-op: the cache never invents entries via update
// and the list stays referentially unchanged.
func (c *Cache) UpdateTask(task domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.tasks.Get()
	index := -1
	for i := range current {
		if current[i].ID == task.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return
	}
	c.version++
	updated := make([]domain.Task, len(current))
	copy(updated, current)
	updated[index] = task
	c.tasks.Set(updated)
}

// RemoveTask deletes the cached task with the given ID. No-op if absent.
func (c *Cache) RemoveTask(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.tasks.Get()
	updated := make([]domain.Task, 0, len(current))
	for _, t := range current {
		if t.ID != id {
			updated = append(updated, t)
		}
	}
	if len(updated) == len(current) {
		return
	}
	c.version++
	c.tasks.Set(updated)
}

// FilterTasks returns the subset of currently cached tasks matching every
// present field of the filter. The cache is never mutated.
func (c *Cache) FilterTasks(filter domain.TaskFilter) []domain.Task {
	return domain.FilterTasks(c.tasks.Get(), filter)
}

// SortTasks returns a stably sorted copy of the given tasks.
func (c *Cache) SortTasks(tasks []domain.Task, key domain.SortKey, order domain.SortOrder) []domain.Task {
	return domain.SortTasks(tasks, key, order)
}

// SetSelected sets the selected task reference. Pass nil to clear.
func (c *Cache) SetSelected(task *domain.Task) {
	c.selected.Set(task)
}

// Selected returns the selected task, or nil.
func (c *Cache) Selected() *domain.Task {
	return c.selected.Get()
}

// SetLoading sets the loading flag.
func (c *Cache) SetLoading(loading bool) {
	c.loading.Set(loading)
}

// IsLoading returns the loading flag.
func (c *Cache) IsLoading() bool {
	return c.loading.Get()
}

// SetFilter replaces the current filter descriptor.
func (c *Cache) SetFilter(filter domain.TaskFilter) {
	c.filter.Set(filter)
}

// Filter returns the current filter descriptor.
func (c *Cache) Filter() domain.TaskFilter {
	return c.filter.Get()
}

// ClearFilter resets the filter descriptor to no constraints.
func (c *Cache) ClearFilter() {
	c.filter.Set(domain.TaskFilter{})
}

// ClearState resets the whole cache. Called on logout.
func (c *Cache) ClearState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.tasks.Set([]domain.Task{})
	c.selected.Set(nil)
	c.loading.Set(false)
	c.filter.Set(domain.TaskFilter{})
}

// SubscribeTasks registers fn for task list changes and returns a disposer.
func (c *Cache) SubscribeTasks(fn func([]domain.Task)) func() {
	return c.tasks.Subscribe(fn)
}

// SubscribeSelected registers fn for selected-task changes.
func (c *Cache) SubscribeSelected(fn func(*domain.Task)) func() {
	return c.selected.Subscribe(fn)
}

// SubscribeLoading registers fn for loading flag changes.
func (c *Cache) SubscribeLoading(fn func(bool)) func() {
	return c.loading.Subscribe(fn)
}

// SubscribeFilter registers fn for filter descriptor changes.
func (c *Cache) SubscribeFilter(fn func(domain.TaskFilter)) func() {
	return c.filter.Subscribe(fn)
}

// BeginFetch snapshots the cache version before a list fetch starts.
// Pass the returned version to ApplyFetch once the results arrive.
func (c *Cache) BeginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// ApplyFetch installs fetch results only if no mutation happened since the
// matching BeginFetch call. It returns false when the results are stale and
// were discarded, resolving the fetch-vs-mutation race in favor of local
// mutations.
func (c *Cache) ApplyFetch(tasks []domain.Task, version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		return false
	}
	c.version++
	c.tasks.Set(tasks)
	return true
}
