// Package workerpool runs leaf I/O tasks on a fixed number of goroutines.
//
// Tasks must not submit to the same pool and wait for the result: with
// every worker blocked that way the pool deadlocks.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 4

var ErrPoolClosed = errors.New("worker pool closed")

// Task is a unit of work. The context is the one given to Submit.
type Task func(ctx context.Context) error

// Future delivers a task's result.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(err error) {
	f.err = err
	close(f.done)
}

// Done is closed once the task finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the task finished or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type job struct {
	ctx    context.Context
	fn     Task
	future *Future
}

// Pool is a bounded set of workers reading from one queue.
type Pool struct {
	tasks  chan job
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New starts workers goroutines with a queue of the same size.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := &Pool{tasks: make(chan job, workers)}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.process()
	}
	return p
}

// Submit queues fn, blocking while the queue is full.
func (p *Pool) Submit(ctx context.Context, fn Task) (*Future, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	j := job{ctx: ctx, fn: fn, future: newFuture()}
	select {
	case p.tasks <- j:
		return j.future, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Do submits fn and waits for it.
func (p *Pool) Do(ctx context.Context, fn Task) error {
	f, err := p.Submit(ctx, fn)
	if err != nil {
		return err
	}
	return f.Wait(ctx)
}

// Close stops accepting tasks, lets queued ones finish and waits for the
// workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) process() {
	defer p.wg.Done()
	for j := range p.tasks {
		j.future.resolve(run(j))
	}
}

func run(j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in worker: %v", r)
		}
	}()
	return j.fn(j.ctx)
}
