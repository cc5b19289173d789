package syncer

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/studenthub/internal/client/client"
	"github.com/dmitrijs2005/studenthub/internal/client/connectivity"
	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/records"
	"github.com/dmitrijs2005/studenthub/internal/client/workerpool"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu    sync.Mutex
	owner string
}

func (s *fakeSession) OwnerID(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == "" {
		return "", common.ErrNotAuthenticated
	}
	return s.owner, nil
}

// callLog records remote calls across kinds in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, s)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// fakeRemote is an in-memory per-owner collection.
type fakeRemote[P models.Payload] struct {
	log *callLog

	mu        sync.Mutex
	docs      map[string]*models.Record[P]
	saves     []string
	deletes   []string
	fetches   int
	saveErr   error
	deleteErr error
	fetchErr  error
	failIDs   map[string]bool
	onSave    func(rec *models.Record[P])
}

func newFakeRemote[P models.Payload](log *callLog) *fakeRemote[P] {
	return &fakeRemote[P]{log: log, docs: map[string]*models.Record[P]{}, failIDs: map[string]bool{}}
}

func (r *fakeRemote[P]) kind() string {
	var p P
	return p.Kind().String()
}

func (r *fakeRemote[P]) Save(ctx context.Context, ownerID string, rec *models.Record[P]) error {
	r.log.add("save:" + r.kind())
	if hook := r.hook(); hook != nil {
		hook(rec)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, ownerID+"/"+rec.ID)
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.failIDs[rec.ID] {
		return errors.New("rejected")
	}
	c := rec.Clone()
	c.OwnerID = ownerID
	c.Synced = false
	r.docs[rec.ID] = c
	return nil
}

func (r *fakeRemote[P]) hook() func(*models.Record[P]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onSave
}

func (r *fakeRemote[P]) Delete(ctx context.Context, ownerID string, id string) error {
	r.log.add("delete:" + r.kind())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, ownerID+"/"+id)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeRemote[P]) FetchAll(ctx context.Context, ownerID string) ([]*models.Record[P], error) {
	r.log.add("fetch:" + r.kind())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	var out []*models.Record[P]
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (r *fakeRemote[P]) put(rec *models.Record[P]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[rec.ID] = rec.Clone()
}

func (r *fakeRemote[P]) get(id string) *models.Record[P] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[id]
}

func (r *fakeRemote[P]) counts() (saves, deletes, fetches int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves), len(r.deletes), r.fetches
}

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *sql.DB

	clock   atomic.Int64
	step    atomic.Int64
	session *fakeSession
	oracle  *connectivity.Static
	pool    *workerpool.Pool
	meta    metadata.Repository
	engine  *Engine

	log         *callLog
	taskRepo    *records.SQLiteRepository[models.Task]
	classRepo   *records.SQLiteRepository[models.Class]
	taskRemote  *fakeRemote[models.Task]
	classRemote *fakeRemote[models.Class]
	tasks       *Writer[models.Task]
	classes     *Writer[models.Class]
	orch        *Orchestrator
}

func newFixture(t *testing.T, online bool) *fixture {
	t.Helper()

	f := &fixture{t: t, ctx: context.Background()}

	db, err := client.InitDatabase(f.ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	f.db = db

	f.clock.Store(1_000)
	f.step.Store(1)
	f.session = &fakeSession{owner: "u1"}
	f.oracle = connectivity.NewStatic(online)
	f.pool = workerpool.New(4)
	t.Cleanup(f.pool.Close)
	f.meta = metadata.NewSQLiteRepository(db)
	f.engine = NewEngine(f.pool, f.session, f.oracle, f.meta, logging.NopLogger{},
		WithClock(func() int64 { return f.clock.Add(f.step.Load()) }))

	f.log = &callLog{}
	f.taskRepo = records.NewSQLiteRepository[models.Task](db)
	f.classRepo = records.NewSQLiteRepository[models.Class](db)
	f.taskRemote = newFakeRemote[models.Task](f.log)
	f.classRemote = newFakeRemote[models.Class](f.log)
	f.tasks = NewWriter[models.Task](f.engine, f.taskRepo, f.taskRemote)
	f.classes = NewWriter[models.Class](f.engine, f.classRepo, f.classRemote)
	f.orch = NewOrchestrator(f.engine, f.classes, f.tasks)
	return f
}

// freezeClock stops the engine clock at ms.
func (f *fixture) freezeClock(ms int64) {
	f.step.Store(0)
	f.clock.Store(ms)
}

// holdNextTaskSave parks the next remote task save until release is closed.
func (f *fixture) holdNextTaskSave() (entered <-chan struct{}, release chan<- struct{}) {
	in := make(chan struct{})
	out := make(chan struct{})
	f.taskRemote.mu.Lock()
	f.taskRemote.onSave = func(*models.Record[models.Task]) {
		f.taskRemote.mu.Lock()
		f.taskRemote.onSave = nil
		f.taskRemote.mu.Unlock()
		close(in)
		<-out
	}
	f.taskRemote.mu.Unlock()
	return in, out
}

func (f *fixture) flush() {
	f.t.Helper()
	require.NoError(f.t, f.engine.Flush(f.ctx))
}

func (f *fixture) localTask(id string) *models.Record[models.Task] {
	f.t.Helper()
	rec, err := f.taskRepo.GetByID(f.ctx, id)
	require.NoError(f.t, err)
	return rec
}

func (f *fixture) createTask(title string) *models.Record[models.Task] {
	f.t.Helper()
	rec, err := f.tasks.Create(f.ctx, models.Task{Title: title})
	require.NoError(f.t, err)
	return rec
}
