package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"        // Created, not started
	StatusInProgress Status = "IN_PROGRESS" // Being worked on
	StatusDone       Status = "DONE"        // Completed
)

// AllStatuses returns all valid status values in rank order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// statusRank defines the fixed ordering used for sorting.
var statusRank = map[Status]int{
	StatusTodo:       1,
	StatusInProgress: 2,
	StatusDone:       3,
}

// Rank returns the fixed sort rank of the status. Unknown statuses rank 0.
func (s Status) Rank() int {
	return statusRank[s]
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
