package model

import (
	"cloud.google.com/go/civil"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// Task is a checklist item on a grant. Status toggles independently of the
// grant's stage and milestones.
type Task struct {
	ID            types.TaskID
	Label         string
	DueDate       *civil.Date
	AssigneeEmail string
	AssigneeID    string
	AssigneeName  string
	CreatedByID   string
	CreatedByName string
	Status        types.TaskStatus
}
