package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

type orgRepository struct {
	mu    sync.RWMutex
	prefs map[types.OrgID]*model.OrgPreferences
}

func newOrgRepository() *orgRepository {
	return &orgRepository{
		prefs: make(map[types.OrgID]*model.OrgPreferences),
	}
}

func copyPreferences(p *model.OrgPreferences) *model.OrgPreferences {
	copied := *p
	copied.States = append([]string(nil), p.States...)
	copied.FocusAreas = append([]string(nil), p.FocusAreas...)
	copied.ReminderChannels = append([]types.Channel(nil), p.ReminderChannels...)
	return &copied
}

func (r *orgRepository) GetPreferences(ctx context.Context, orgID types.OrgID) (*model.OrgPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.prefs[orgID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "org preferences not found", goerr.V("org_id", orgID))
	}

	return copyPreferences(p), nil
}

func (r *orgRepository) PutPreferences(ctx context.Context, prefs *model.OrgPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs[prefs.OrgID] = copyPreferences(prefs)
	return nil
}
