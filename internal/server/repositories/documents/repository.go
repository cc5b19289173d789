// Package documents persists the per-owner record collections of the
// document store. The store keeps whatever the client sends: saves
// overwrite, deletes remove, and nothing is merged server side.
package documents

import (
	"context"

	"github.com/dmitrijs2005/studenthub/internal/server/models"
)

type Repository interface {
	// Upsert replaces the document identified by owner, kind and id.
	Upsert(ctx context.Context, doc *models.Document) error

	// Delete removes the document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, ownerID, kind, id string) error

	// ListByKind returns every document of the owner's collection.
	ListByKind(ctx context.Context, ownerID, kind string) ([]*models.Document, error)
}
