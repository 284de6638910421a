package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

type orgRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newOrgRepository(client *firestore.Client) *orgRepository {
	return &orgRepository{
		client: client,
	}
}

func (r *orgRepository) orgsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_orgs"
	}
	return "orgs"
}

func (r *orgRepository) GetPreferences(ctx context.Context, orgID types.OrgID) (*model.OrgPreferences, error) {
	docSnap, err := r.client.Collection(r.orgsCollection()).Doc(orgID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "org preferences not found", goerr.V("org_id", orgID))
		}
		return nil, goerr.Wrap(err, "failed to get org preferences", goerr.V("org_id", orgID))
	}

	var p model.OrgPreferences
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode org preferences", goerr.V("org_id", orgID))
	}

	return &p, nil
}

func (r *orgRepository) PutPreferences(ctx context.Context, prefs *model.OrgPreferences) error {
	if err := prefs.Validate(); err != nil {
		return goerr.Wrap(err, "invalid org preferences")
	}

	_, err := r.client.Collection(r.orgsCollection()).Doc(prefs.OrgID.String()).Set(ctx, prefs)
	if err != nil {
		return goerr.Wrap(err, "failed to put org preferences", goerr.V("org_id", prefs.OrgID))
	}

	return nil
}
