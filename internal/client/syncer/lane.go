package syncer

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/workerpool"
	"github.com/dmitrijs2005/studenthub/internal/common"
)

// Lane is one record kind as seen by the Orchestrator. Writer implements it.
type Lane interface {
	kind() models.Kind
	push(ctx context.Context, owner string) error
	pull(ctx context.Context, owner string) error
}

var _ Lane = (*Writer[models.Task])(nil)

// push sends every dirty record of the owner. Remote failures leave the
// record dirty and are only logged; a local store failure fails the lane.
func (w *Writer[P]) push(ctx context.Context, owner string) error {
	var dirty []*models.Record[P]
	err := w.engine.pool.Do(ctx, func(ctx context.Context) (err error) {
		dirty, err = w.local.ListDirty(ctx, owner)
		return localErr(err)
	})
	if err != nil {
		return err
	}

	futures := make([]*workerpool.Future, len(dirty))
	for i, rec := range dirty {
		f, err := w.engine.pool.Submit(ctx, func(ctx context.Context) error {
			if rec.Deleted {
				return w.pushDelete(ctx, owner, rec.ID, rec.Version())
			}
			return w.pushSave(ctx, owner, rec)
		})
		if err != nil {
			return err
		}
		futures[i] = f
	}

	var (
		fatal  error
		pushed int
	)
	for i, f := range futures {
		err := f.Wait(ctx)
		switch {
		case err == nil:
			pushed++
		case errors.Is(err, common.ErrLocalStore):
			fatal = errors.Join(fatal, err)
		default:
			w.logger.Warn(ctx, "push failed", "id", dirty[i].ID, "deleted", dirty[i].Deleted, "error", err)
		}
	}
	if fatal != nil {
		return fatal
	}

	var purged int64
	err = w.engine.pool.Do(ctx, func(ctx context.Context) (err error) {
		purged, err = w.local.PurgeSyncedTombstones(ctx)
		return localErr(err)
	})
	if err != nil {
		return err
	}

	w.logger.Debug(ctx, "push finished", "dirty", len(dirty), "pushed", pushed, "purged", purged)
	return nil
}

// pull applies every remote record that is strictly newer than the local
// copy. A fetch failure fails the lane.
func (w *Writer[P]) pull(ctx context.Context, owner string) error {
	var remote []*models.Record[P]
	err := w.engine.pool.Do(ctx, func(ctx context.Context) (err error) {
		remote, err = w.remote.FetchAll(ctx, owner)
		return err
	})
	if err != nil {
		return remoteErr(common.ErrRemoteFetchFailed, err)
	}

	var applied atomic.Int64
	futures := make([]*workerpool.Future, 0, len(remote))
	for _, rec := range remote {
		f, err := w.engine.pool.Submit(ctx, func(ctx context.Context) error {
			ok, err := w.reconcile(ctx, owner, rec)
			if ok {
				applied.Add(1)
			}
			return err
		})
		if err != nil {
			return err
		}
		futures = append(futures, f)
	}

	var errs error
	for _, f := range futures {
		errs = errors.Join(errs, f.Wait(ctx))
	}
	if errs != nil {
		return errs
	}

	w.logger.Debug(ctx, "pull finished", "remote", len(remote), "applied", applied.Load())
	return nil
}

// reconcile stores remote as a clean record when it wins over the local copy.
func (w *Writer[P]) reconcile(ctx context.Context, owner string, remote *models.Record[P]) (bool, error) {
	local, err := w.local.GetByID(ctx, remote.ID)
	if err != nil {
		return false, localErr(err)
	}
	if !models.RemoteWins(local, remote) {
		return false, nil
	}

	in := remote.Clone()
	in.OwnerID = owner
	in.Synced = true
	if err := w.local.InsertOrReplace(ctx, in); err != nil {
		return false, localErr(err)
	}
	return true, nil
}
