// Package server wires the document store: PostgreSQL storage, the account
// and document services, snapshot presigning and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/logging"
	"github.com/dmitrijs2005/studenthub/internal/server/config"
	"github.com/dmitrijs2005/studenthub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studenthub/internal/server/services"

	gs "github.com/dmitrijs2005/studenthub/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

// NewApp connects to the database and brings its schema up to date.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.OpenDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	us := services.NewUserService(db, rm, c, logger)
	ds := services.NewDocumentService(db, rm, logger)
	ss := services.NewSnapshotService(c)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ds, ss, c.SecretKey),
	}
}

// Run serves until ctx is canceled and then releases the database.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
