package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/studenthub/internal/client/connectivity"
	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studenthub/internal/client/workerpool"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/logging"
	"github.com/dmitrijs2005/studenthub/internal/timex"
)

// Session yields the owner every record is stamped with.
type Session interface {
	OwnerID(ctx context.Context) (string, error)
}

// Remote is the per-kind server collection.
type Remote[P models.Payload] interface {
	Save(ctx context.Context, ownerID string, rec *models.Record[P]) error
	FetchAll(ctx context.Context, ownerID string) ([]*models.Record[P], error)
	Delete(ctx context.Context, ownerID string, id string) error
}

// Engine is the context shared by every Writer and the Orchestrator.
type Engine struct {
	pool    *workerpool.Pool
	session Session
	oracle  connectivity.Oracle
	meta    metadata.Repository
	logger  logging.Logger
	now     func() int64

	inflight sync.WaitGroup
}

type Option func(*Engine)

// WithClock replaces the millisecond wall clock.
func WithClock(now func() int64) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(pool *workerpool.Pool, session Session, oracle connectivity.Oracle, meta metadata.Repository, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		pool:    pool,
		session: session,
		oracle:  oracle,
		meta:    meta,
		logger:  logger.With("module", "syncer"),
		now:     timex.NowMillis,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) owner(ctx context.Context) (string, error) {
	owner, err := e.session.OwnerID(ctx)
	if err != nil {
		return "", err
	}
	if owner == "" {
		return "", common.ErrNotAuthenticated
	}
	return owner, nil
}

// IsOnline reports the oracle's current view.
func (e *Engine) IsOnline() bool {
	return e.oracle.IsOnline()
}

// LastSyncedAt returns the completion time of the last successful cycle.
func (e *Engine) LastSyncedAt(ctx context.Context) (int64, bool, error) {
	var (
		v  int64
		ok bool
	)
	err := e.pool.Do(ctx, func(ctx context.Context) (err error) {
		v, ok, err = metadata.GetInt64(ctx, e.meta, common.MetaLastSyncedAt)
		return err
	})
	if err != nil {
		return 0, false, localErr(err)
	}
	return v, ok, nil
}

// background runs fn on the pool detached from the caller's cancellation.
// Failures are logged only.
func (e *Engine) background(ctx context.Context, fn workerpool.Task, args ...any) {
	ctx = context.WithoutCancel(ctx)

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		f, err := e.pool.Submit(ctx, fn)
		if err == nil {
			err = f.Wait(ctx)
		}
		if err != nil {
			e.logger.Warn(ctx, "background push failed", append(args, "error", err)...)
		}
	}()
}

// Flush waits for background pushes started by writers.
func (e *Engine) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// localErr marks a store failure. Cancellation and a closed pool pass
// through unchanged.
func localErr(err error) error {
	switch {
	case err == nil, errors.Is(err, common.ErrLocalStore),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, workerpool.ErrPoolClosed):
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrLocalStore, err)
}

func remoteErr(sentinel, err error) error {
	if err == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
