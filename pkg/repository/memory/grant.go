package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

type grantRepository struct {
	mu     sync.RWMutex
	grants map[types.OrgID]map[types.GrantID]*model.Grant
}

func newGrantRepository() *grantRepository {
	return &grantRepository{
		grants: make(map[types.OrgID]map[types.GrantID]*model.Grant),
	}
}

func (r *grantRepository) ensureOrg(orgID types.OrgID) {
	if _, exists := r.grants[orgID]; !exists {
		r.grants[orgID] = make(map[types.GrantID]*model.Grant)
	}
}

// copyGrant creates a deep copy so callers can never mutate stored state
func copyGrant(g *model.Grant) *model.Grant {
	copied := *g

	copied.Attachments = append([]string(nil), g.Attachments...)
	copied.History = append([]model.StageHistoryEntry(nil), g.History...)

	copied.Milestones = make([]model.Milestone, len(g.Milestones))
	for i, m := range g.Milestones {
		cm := m
		if m.DueDate != nil {
			due := *m.DueDate
			cm.DueDate = &due
		}
		cm.ReminderChannels = append([]types.Channel(nil), m.ReminderChannels...)
		cm.ScheduledReminders = append([]model.ReminderEntry(nil), m.ScheduledReminders...)
		copied.Milestones[i] = cm
	}

	copied.Tasks = make([]model.Task, len(g.Tasks))
	for i, t := range g.Tasks {
		ct := t
		if t.DueDate != nil {
			due := *t.DueDate
			ct.DueDate = &due
		}
		copied.Tasks[i] = ct
	}

	return &copied
}

func (r *grantRepository) Create(ctx context.Context, g *model.Grant) (*model.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOrg(g.OrgID)

	now := time.Now().UTC()
	created := copyGrant(g)
	if created.ID == "" {
		created.ID = types.NewGrantID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.grants[g.OrgID][created.ID] = created
	return copyGrant(created), nil
}

func (r *grantRepository) Get(ctx context.Context, orgID types.OrgID, id types.GrantID) (*model.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	org, exists := r.grants[orgID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", id))
	}

	g, exists := org[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", id))
	}

	return copyGrant(g), nil
}

func (r *grantRepository) List(ctx context.Context, orgID types.OrgID) ([]*model.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	org, exists := r.grants[orgID]
	if !exists {
		return []*model.Grant{}, nil
	}

	grants := make([]*model.Grant, 0, len(org))
	for _, g := range org {
		grants = append(grants, copyGrant(g))
	}

	return grants, nil
}

func (r *grantRepository) Update(ctx context.Context, g *model.Grant) (*model.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	org, exists := r.grants[g.OrgID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", g.ID))
	}

	existing, exists := org[g.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", g.ID))
	}

	updated := copyGrant(g)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	org[updated.ID] = updated
	return copyGrant(updated), nil
}

func (r *grantRepository) Delete(ctx context.Context, orgID types.OrgID, id types.GrantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	org, exists := r.grants[orgID]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", id))
	}

	if _, exists := org[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", id))
	}

	delete(org, id)
	return nil
}
