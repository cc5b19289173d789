package records

import (
	"context"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
)

// Repository is the per-kind local store contract.
type Repository[P models.Payload] interface {
	// InsertOrReplace upserts the full record by id.
	InsertOrReplace(ctx context.Context, rec *models.Record[P]) error

	// GetByID returns the record including tombstones, or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Record[P], error)

	// ListForOwner returns the owner's live records matching all filters,
	// oldest first.
	ListForOwner(ctx context.Context, ownerID string, filters ...models.Predicate[P]) ([]*models.Record[P], error)

	// ListDirty returns every unsynced record of the owner, tombstones included.
	ListDirty(ctx context.Context, ownerID string) ([]*models.Record[P], error)

	// SetSynced marks the record clean if it still carries version.
	SetSynced(ctx context.Context, id string, version int64) error

	// SoftDelete turns the record into a dirty tombstone stamped at ts, or
	// one past its current version when that is later.
	SoftDelete(ctx context.Context, id string, ts int64) error

	// HardDeleteByID removes the row only while it is the acknowledged
	// tombstone at version, and reports whether it did.
	HardDeleteByID(ctx context.Context, id string, version int64) (bool, error)

	// PurgeSyncedTombstones removes rows that are deleted and synced.
	PurgeSyncedTombstones(ctx context.Context) (int64, error)
}
