package domain

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// AllPriorities returns all valid priority values in rank order.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// priorityRank defines the fixed ordering used for sorting.
var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Rank returns the fixed sort rank of the priority. Unknown priorities rank 0.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return string(p)
	}
}

// ParsePriority converts a string to a Priority.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}
