package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
)

// Firestore is the production persistence backend. One document per grant,
// one per organization's preferences.
type Firestore struct {
	client *firestore.Client
	grant  *grantRepository
	org    *orgRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces collections, mainly for shared test projects
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.grant.collectionPrefix = prefix
		f.org.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		grant:  newGrantRepository(client),
		org:    newOrgRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Grant() interfaces.GrantRepository {
	return f.grant
}

func (f *Firestore) Org() interfaces.OrgRepository {
	return f.org
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
