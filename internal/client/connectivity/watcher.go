// Package connectivity tracks whether the remote store is reachable by
// pinging it on a fixed interval, and publishes offline/online transitions.
package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/logging"
)

// Oracle reports reachability.
type Oracle interface {
	IsOnline() bool
	// Subscribe returns a channel receiving the new state on every
	// transition. Slow subscribers only miss intermediate states.
	Subscribe() <-chan bool
}

// PingFunc probes the remote store; nil means reachable.
type PingFunc func(ctx context.Context) error

const pingTimeout = 3 * time.Second

// Watcher is a ping-driven Oracle.
type Watcher struct {
	ping     PingFunc
	interval time.Duration
	logger   logging.Logger

	online atomic.Bool

	mu   sync.Mutex
	subs []chan bool
}

func NewWatcher(ping PingFunc, interval time.Duration, logger logging.Logger) *Watcher {
	return &Watcher{ping: ping, interval: interval, logger: logger.With("module", "connectivity")}
}

func (w *Watcher) IsOnline() bool {
	return w.online.Load()
}

func (w *Watcher) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	w.mu.Lock()
	w.subs = append(w.subs, ch)
	w.mu.Unlock()
	return ch
}

// Check pings once and records the outcome.
func (w *Watcher) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := w.ping(pctx)
	cancel()

	w.set(ctx, err == nil)
	return err == nil
}

// Run checks immediately and then every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// set records the outcome of a ping. The state change and its publication
// happen under mu so subscribers see transitions in the order they occur.
func (w *Watcher) set(ctx context.Context, online bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.online.Swap(online) == online {
		return
	}
	if online {
		w.logger.Info(ctx, "Switched to online mode")
	} else {
		w.logger.Info(ctx, "Switched to offline mode")
	}

	for _, ch := range w.subs {
		select {
		case <-ch:
		default:
		}
		ch <- online
	}
}

// Static is a fixed Oracle, useful when connectivity is known up front.
type Static struct {
	online atomic.Bool
}

func NewStatic(online bool) *Static {
	s := &Static{}
	s.online.Store(online)
	return s
}

func (s *Static) IsOnline() bool         { return s.online.Load() }
func (s *Static) Set(online bool)        { s.online.Store(online) }
func (s *Static) Subscribe() <-chan bool { return make(chan bool) }
