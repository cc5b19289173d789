package syncer

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/records"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/logging"
)

// Writer is the write path of one record kind. Calls return once the local
// store has the change; the server is updated in the background.
type Writer[P models.Payload] struct {
	engine *Engine
	local  records.Repository[P]
	remote Remote[P]
	logger logging.Logger
}

func NewWriter[P models.Payload](engine *Engine, local records.Repository[P], remote Remote[P]) *Writer[P] {
	var p P
	return &Writer[P]{
		engine: engine,
		local:  local,
		remote: remote,
		logger: engine.logger.With("kind", p.Kind()),
	}
}

// Create stores a new record holding payload.
func (w *Writer[P]) Create(ctx context.Context, payload P) (*models.Record[P], error) {
	rec := models.NewRecord(payload, w.engine.now())
	if err := w.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save upserts rec for the session owner and marks it dirty. rec is
// updated in place with the stored envelope.
func (w *Writer[P]) Save(ctx context.Context, rec *models.Record[P]) error {
	owner, err := w.engine.owner(ctx)
	if err != nil {
		return err
	}
	if err := rec.Payload.Validate(); err != nil {
		return err
	}

	var stored *models.Record[P]
	err = w.engine.pool.Do(ctx, func(ctx context.Context) error {
		existing, err := w.local.GetByID(ctx, rec.ID)
		if err != nil {
			return localErr(err)
		}

		next := rec.Clone()
		next.OwnerID = owner
		next.UpdatedAt = 0
		if existing != nil {
			if existing.OwnerID != owner {
				return fmt.Errorf("%w: record %s", common.ErrorForbidden, rec.ID)
			}
			next.CreatedAt = existing.CreatedAt
			next.UpdatedAt = existing.UpdatedAt
		}
		next.MarkUpdated(w.engine.now())

		if err := w.local.InsertOrReplace(ctx, next); err != nil {
			return localErr(err)
		}
		stored = next
		return nil
	})
	if err != nil {
		return err
	}
	*rec = *stored

	if w.engine.IsOnline() {
		pushed := stored.Clone()
		w.engine.background(ctx, func(ctx context.Context) error {
			return w.pushSave(ctx, owner, pushed)
		}, "op", "save", "kind", pushed.Kind(), "id", pushed.ID)
	}
	return nil
}

// Update applies mutate to the payload of a live record and saves it.
func (w *Writer[P]) Update(ctx context.Context, id string, mutate func(*P) error) (*models.Record[P], error) {
	rec, err := w.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(&rec.Payload); err != nil {
		return nil, err
	}
	if err := w.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete turns the record into a tombstone. Once the server confirms the
// delete the row is removed locally.
func (w *Writer[P]) Delete(ctx context.Context, id string) error {
	owner, err := w.engine.owner(ctx)
	if err != nil {
		return err
	}

	var version int64
	err = w.engine.pool.Do(ctx, func(ctx context.Context) error {
		existing, err := w.local.GetByID(ctx, id)
		if err != nil {
			return localErr(err)
		}
		if existing == nil || existing.OwnerID != owner {
			return fmt.Errorf("%s record %s: %w", w.kind(), id, common.ErrorNotFound)
		}

		if err := w.local.SoftDelete(ctx, id, w.engine.now()); err != nil {
			return localErr(err)
		}
		tomb, err := w.local.GetByID(ctx, id)
		if err != nil {
			return localErr(err)
		}
		version = tomb.Version()
		return nil
	})
	if err != nil {
		return err
	}

	if w.engine.IsOnline() {
		w.engine.background(ctx, func(ctx context.Context) error {
			return w.pushDelete(ctx, owner, id, version)
		}, "op", "delete", "kind", w.kind(), "id", id)
	}
	return nil
}

// Get returns a live record of the session owner.
func (w *Writer[P]) Get(ctx context.Context, id string) (*models.Record[P], error) {
	owner, err := w.engine.owner(ctx)
	if err != nil {
		return nil, err
	}

	var rec *models.Record[P]
	err = w.engine.pool.Do(ctx, func(ctx context.Context) (err error) {
		rec, err = w.local.GetByID(ctx, id)
		return localErr(err)
	})
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Deleted || rec.OwnerID != owner {
		return nil, fmt.Errorf("%s record %s: %w", w.kind(), id, common.ErrorNotFound)
	}
	return rec, nil
}

// List returns the owner's live records matching every filter.
func (w *Writer[P]) List(ctx context.Context, filters ...models.Predicate[P]) ([]*models.Record[P], error) {
	owner, err := w.engine.owner(ctx)
	if err != nil {
		return nil, err
	}

	var recs []*models.Record[P]
	err = w.engine.pool.Do(ctx, func(ctx context.Context) (err error) {
		recs, err = w.local.ListForOwner(ctx, owner, filters...)
		return localErr(err)
	})
	return recs, err
}

// Count returns how many of the owner's live records match every filter.
func (w *Writer[P]) Count(ctx context.Context, filters ...models.Predicate[P]) (int, error) {
	recs, err := w.List(ctx, filters...)
	return len(recs), err
}

// Pending counts the owner's records waiting to be pushed.
func (w *Writer[P]) Pending(ctx context.Context) (int, error) {
	owner, err := w.engine.owner(ctx)
	if err != nil {
		return 0, err
	}

	var n int
	err = w.engine.pool.Do(ctx, func(ctx context.Context) error {
		dirty, err := w.local.ListDirty(ctx, owner)
		n = len(dirty)
		return localErr(err)
	})
	return n, err
}

func (w *Writer[P]) kind() models.Kind {
	var p P
	return p.Kind()
}

// pushSave sends one live record and acknowledges exactly that version.
func (w *Writer[P]) pushSave(ctx context.Context, owner string, rec *models.Record[P]) error {
	if err := w.remote.Save(ctx, owner, rec); err != nil {
		return remoteErr(common.ErrRemoteSaveFailed, err)
	}
	return localErr(w.local.SetSynced(ctx, rec.ID, rec.Version()))
}

// pushDelete propagates a tombstone and then settles it locally.
func (w *Writer[P]) pushDelete(ctx context.Context, owner, id string, version int64) error {
	if err := w.remote.Delete(ctx, owner, id); err != nil {
		return remoteErr(common.ErrRemoteDeleteFailed, err)
	}
	return w.settleTombstone(ctx, id, version)
}

// settleTombstone acknowledges a remotely deleted version and erases the
// row if it is still that acknowledged tombstone. A record edited or
// restored in the meantime carries a newer version and survives.
func (w *Writer[P]) settleTombstone(ctx context.Context, id string, version int64) error {
	if err := w.local.SetSynced(ctx, id, version); err != nil {
		return localErr(err)
	}
	_, err := w.local.HardDeleteByID(ctx, id, version)
	return localErr(err)
}
