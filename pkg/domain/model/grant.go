package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// Grant is the aggregate root for a tracked grant opportunity. It owns its
// stage history, milestones and checklist tasks; milestones and tasks never
// exist outside a grant.
type Grant struct {
	ID          types.GrantID
	OrgID       types.OrgID
	Title       string
	Agency      string
	Summary     string
	URL         string
	Stage       types.Stage
	Priority    types.Priority
	Notes       string
	Attachments []string
	History     []StageHistoryEntry
	Milestones  []Milestone
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StageHistoryEntry records one stage transition. The history is append-only:
// entries are never rewritten or deleted, and ChangedAt is monotonically
// non-decreasing. The grant's current Stage always equals the last entry's.
type StageHistoryEntry struct {
	Stage     types.Stage
	ChangedAt time.Time
	Note      string
}

// Validate checks structural invariants of the grant
func (g *Grant) Validate() error {
	if g.Title == "" {
		return goerr.New("grant title is required")
	}
	if g.OrgID == "" {
		return goerr.New("grant org ID is required")
	}
	if !g.Stage.Normalize().IsValid() {
		return goerr.New("invalid grant stage", goerr.V("stage", g.Stage))
	}
	if !g.Priority.Normalize().IsValid() {
		return goerr.New("invalid grant priority", goerr.V("priority", g.Priority))
	}
	return nil
}

// ChangeStage moves the grant to the given stage and appends a history entry.
// Any stage may move to any other stage; grants can be reopened or
// reclassified, so no pipeline order is enforced.
func (g *Grant) ChangeStage(stage types.Stage, note string, now time.Time) {
	g.Stage = stage
	g.History = append(g.History, StageHistoryEntry{
		Stage:     stage,
		ChangedAt: now,
		Note:      note,
	})
}

// Milestone returns a pointer to the milestone with the given ID, or nil
func (g *Grant) Milestone(id types.MilestoneID) *Milestone {
	for i := range g.Milestones {
		if g.Milestones[i].ID == id {
			return &g.Milestones[i]
		}
	}
	return nil
}

// Task returns a pointer to the task with the given ID, or nil
func (g *Grant) Task(id types.TaskID) *Task {
	for i := range g.Tasks {
		if g.Tasks[i].ID == id {
			return &g.Tasks[i]
		}
	}
	return nil
}

// RemoveMilestone deletes the milestone with the given ID and reports whether
// it was present. Callers enforce the built-in restriction.
func (g *Grant) RemoveMilestone(id types.MilestoneID) bool {
	for i := range g.Milestones {
		if g.Milestones[i].ID == id {
			g.Milestones = append(g.Milestones[:i], g.Milestones[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveTask deletes the task with the given ID and reports whether it was present
func (g *Grant) RemoveTask(id types.TaskID) bool {
	for i := range g.Tasks {
		if g.Tasks[i].ID == id {
			g.Tasks = append(g.Tasks[:i], g.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
