package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs sync cycles over a fixed set of lanes.
type Orchestrator struct {
	engine *Engine
	lanes  []Lane
}

func NewOrchestrator(engine *Engine, lanes ...Lane) *Orchestrator {
	return &Orchestrator{engine: engine, lanes: lanes}
}

// Run performs one cycle: push every lane, then pull every lane, then
// record the completion time. Partial progress is kept on failure.
func (o *Orchestrator) Run(ctx context.Context) error {
	owner, err := o.engine.owner(ctx)
	if err != nil {
		return err
	}
	if !o.engine.IsOnline() {
		return common.ErrOffline
	}

	started := time.Now()
	o.engine.logger.Info(ctx, "sync started", "owner", owner)

	if err := o.phase(ctx, owner, Lane.push); err != nil {
		o.engine.logger.Error(ctx, "sync failed", "phase", "push", "error", err)
		return fmt.Errorf("push phase: %w", err)
	}
	if err := o.phase(ctx, owner, Lane.pull); err != nil {
		o.engine.logger.Error(ctx, "sync failed", "phase", "pull", "error", err)
		return fmt.Errorf("pull phase: %w", err)
	}

	finished := o.engine.now()
	err = o.engine.pool.Do(ctx, func(ctx context.Context) error {
		return localErr(metadata.SetInt64(ctx, o.engine.meta, common.MetaLastSyncedAt, finished))
	})
	if err != nil {
		return fmt.Errorf("save sync marker: %w", err)
	}

	o.engine.logger.Info(ctx, "sync finished", "owner", owner, "elapsed", time.Since(started))
	return nil
}

func (o *Orchestrator) phase(ctx context.Context, owner string, step func(Lane, context.Context, string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range o.lanes {
		g.Go(func() error {
			if err := step(l, gctx, owner); err != nil {
				return fmt.Errorf("%s: %w", l.kind(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Start runs a cycle in the background. The channel yields its result once.
func (o *Orchestrator) Start(ctx context.Context) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- o.Run(ctx)
		close(ch)
	}()
	return ch
}

// Watch runs a cycle on every offline to online transition and every
// interval while online, until ctx is done. interval <= 0 disables the
// timer. Cycle errors are logged.
func (o *Orchestrator) Watch(ctx context.Context, interval time.Duration) {
	transitions := o.engine.oracle.Subscribe()

	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	run := func(trigger string) {
		err := o.Run(ctx)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrNotAuthenticated), errors.Is(err, common.ErrOffline):
			o.engine.logger.Debug(ctx, "auto sync skipped", "trigger", trigger, "reason", err)
		default:
			o.engine.logger.Warn(ctx, "auto sync failed", "trigger", trigger, "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-transitions:
			if !ok {
				transitions = nil
				continue
			}
			if online {
				run("reconnect")
			}
		case <-tick:
			if o.engine.IsOnline() {
				run("interval")
			}
		}
	}
}
