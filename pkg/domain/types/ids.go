package types

import "github.com/google/uuid"

// OrgID identifies an organization
type OrgID string

// GrantID identifies a grant aggregate
type GrantID string

// MilestoneID identifies a milestone within a grant
type MilestoneID string

// TaskID identifies a checklist task within a grant
type TaskID string

// NewGrantID generates a new random grant ID
func NewGrantID() GrantID {
	return GrantID(uuid.NewString())
}

// NewMilestoneID generates a new random milestone ID
func NewMilestoneID() MilestoneID {
	return MilestoneID(uuid.NewString())
}

// NewTaskID generates a new random task ID
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

func (x OrgID) String() string       { return string(x) }
func (x GrantID) String() string     { return string(x) }
func (x MilestoneID) String() string { return string(x) }
func (x TaskID) String() string      { return string(x) }
