package tui

import "taskdeck/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the task list has been fetched.
type MsgTasksLoaded struct {
	Tasks []domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskUpdated is sent when a task mutation has been applied.
type MsgTaskUpdated struct {
	Task *domain.Task
}

func (MsgTaskUpdated) sealed() {}

// MsgTaskDeleted is sent when a task has been deleted.
type MsgTaskDeleted struct {
	ID string
}

func (MsgTaskDeleted) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
