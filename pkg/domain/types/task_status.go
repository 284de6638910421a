package types

import "fmt"

// TaskStatus represents the completion state of a checklist task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as TaskStatusPending.
func (s TaskStatus) Normalize() TaskStatus {
	if s == "" {
		return TaskStatusPending
	}
	return s
}

// Toggle returns the opposite status
func (s TaskStatus) Toggle() TaskStatus {
	if s.Normalize() == TaskStatusCompleted {
		return TaskStatusPending
	}
	return TaskStatusCompleted
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
