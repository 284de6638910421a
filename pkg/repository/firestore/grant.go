package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

type grantRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGrantRepository(client *firestore.Client) *grantRepository {
	return &grantRepository{
		client: client,
	}
}

func (r *grantRepository) grantsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_grants"
	}
	return "grants"
}

func (r *grantRepository) Create(ctx context.Context, g *model.Grant) (*model.Grant, error) {
	now := time.Now().UTC()
	created := *g
	if created.ID == "" {
		created.ID = types.NewGrantID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.client.Collection(r.grantsCollection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create grant", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *grantRepository) Get(ctx context.Context, orgID types.OrgID, id types.GrantID) (*model.Grant, error) {
	docSnap, err := r.client.Collection(r.grantsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get grant", goerr.V("id", id))
	}

	var g model.Grant
	if err := docSnap.DataTo(&g); err != nil {
		return nil, goerr.Wrap(err, "failed to decode grant", goerr.V("id", id))
	}

	// Grants are keyed globally; never leak another org's row
	if g.OrgID != orgID {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", id))
	}

	return &g, nil
}

func (r *grantRepository) List(ctx context.Context, orgID types.OrgID) ([]*model.Grant, error) {
	iter := r.client.Collection(r.grantsCollection()).
		Where("OrgID", "==", orgID.String()).
		Documents(ctx)
	defer iter.Stop()

	grants := []*model.Grant{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate grants", goerr.V("org_id", orgID))
		}

		var g model.Grant
		if err := docSnap.DataTo(&g); err != nil {
			return nil, goerr.Wrap(err, "failed to decode grant", goerr.V("doc_id", docSnap.Ref.ID))
		}

		grants = append(grants, &g)
	}

	return grants, nil
}

func (r *grantRepository) Update(ctx context.Context, g *model.Grant) (*model.Grant, error) {
	docRef := r.client.Collection(r.grantsCollection()).Doc(g.ID.String())

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "grant not found", goerr.V("id", g.ID))
		}
		return nil, goerr.Wrap(err, "failed to check grant existence", goerr.V("id", g.ID))
	}

	var prev model.Grant
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode grant", goerr.V("id", g.ID))
	}

	updated := *g
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update grant", goerr.V("id", g.ID))
	}

	return &updated, nil
}

func (r *grantRepository) Delete(ctx context.Context, orgID types.OrgID, id types.GrantID) error {
	docRef := r.client.Collection(r.grantsCollection()).Doc(id.String())

	if _, err := r.Get(ctx, orgID, id); err != nil {
		return err
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete grant", goerr.V("id", id))
	}

	return nil
}
