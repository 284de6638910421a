package interfaces

import (
	"context"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// GrantRepository defines the interface for Grant data access. A grant is
// one row; milestones, tasks and history are nested within it and written
// last-writer-wins at grant granularity (no field-level merge).
type GrantRepository interface {
	// Create persists a new grant
	Create(ctx context.Context, g *model.Grant) (*model.Grant, error)

	// Get retrieves a grant by ID
	Get(ctx context.Context, orgID types.OrgID, id types.GrantID) (*model.Grant, error)

	// List retrieves all grants for an organization
	List(ctx context.Context, orgID types.OrgID) ([]*model.Grant, error)

	// Update replaces an existing grant
	Update(ctx context.Context, g *model.Grant) (*model.Grant, error)

	// Delete deletes a grant by ID
	Delete(ctx context.Context, orgID types.OrgID, id types.GrantID) error
}
