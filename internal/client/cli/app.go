package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/client"
	"github.com/dmitrijs2005/studenthub/internal/client/config"
	"github.com/dmitrijs2005/studenthub/internal/client/connectivity"
	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/records"
	"github.com/dmitrijs2005/studenthub/internal/client/services"
	"github.com/dmitrijs2005/studenthub/internal/client/syncer"
	"github.com/dmitrijs2005/studenthub/internal/client/workerpool"
	"github.com/dmitrijs2005/studenthub/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const flushTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger

	db      *sql.DB
	pool    *workerpool.Pool
	watcher *connectivity.Watcher
	oracle  connectivity.Oracle

	authService *services.AuthService
	snapshots   *services.SnapshotService

	engine       *syncer.Engine
	classes      *syncer.Writer[models.Class]
	assignments  *syncer.Writer[models.Assignment]
	tasks        *syncer.Writer[models.Task]
	orchestrator *syncer.Orchestrator

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the local store and wires the sync engine. Nothing talks to
// the server until Run starts the connectivity watcher.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	watcher := connectivity.NewWatcher(apiClient.Ping, c.OnlineCheckInterval, logger)
	a := newApp(c, logger, db, apiClient, watcher)
	a.watcher = watcher
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, api client.Client, oracle connectivity.Oracle) *App {
	authService := services.NewAuthService(api, db)
	pool := workerpool.New(c.Workers)
	engine := syncer.NewEngine(pool, authService, oracle, metadata.NewSQLiteRepository(db), logger)

	classRepo := records.NewSQLiteRepository[models.Class](db)
	assignmentRepo := records.NewSQLiteRepository[models.Assignment](db)
	taskRepo := records.NewSQLiteRepository[models.Task](db)

	classes := syncer.NewWriter[models.Class](engine, classRepo, client.NewCollection[models.Class](api))
	assignments := syncer.NewWriter[models.Assignment](engine, assignmentRepo, client.NewCollection[models.Assignment](api))
	tasks := syncer.NewWriter[models.Task](engine, taskRepo, client.NewCollection[models.Task](api))

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		pool:         pool,
		oracle:       oracle,
		authService:  authService,
		snapshots:    services.NewSnapshotService(api, authService, classRepo, assignmentRepo, taskRepo),
		engine:       engine,
		classes:      classes,
		assignments:  assignments,
		tasks:        tasks,
		orchestrator: syncer.NewOrchestrator(engine, classes, assignments, tasks),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		now:          time.Now,
	}
}

func (a *App) mode() Mode {
	if a.oracle.IsOnline() {
		return ModeOnline
	}
	return ModeOffline
}

func (a *App) isLoggedIn() bool {
	_, err := a.authService.OwnerID(context.Background())
	return err == nil
}

// Run starts the background watchers and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.Close()
	}()

	if a.watcher != nil {
		go a.watcher.Run(ctx)
	}
	go a.orchestrator.Watch(ctx, a.config.SyncInterval)

	fmt.Fprintln(a.out, "Welcome to StudentHub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close waits briefly for background pushes and releases resources.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := a.engine.Flush(ctx); err != nil {
		a.logger.Warn(ctx, "pending pushes abandoned", "error", err)
	}
	a.pool.Close()
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "closing database", "error", err)
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.authService.Username(); u != "" {
		s = u + " "
	}
	return fmt.Sprintf("(%s%s)", s, a.mode())
}

// syncInBackground starts a cycle and logs its outcome.
func (a *App) syncInBackground(ctx context.Context) {
	go func() {
		err := <-a.orchestrator.Start(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn(ctx, "background sync failed", "error", err)
		}
	}()
}
