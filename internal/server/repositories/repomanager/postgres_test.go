package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/studenthub/internal/server/repositories/documents"
	"github.com/dmitrijs2005/studenthub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/studenthub/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	if _, ok := m.Users(db).(*users.PostgresRepository); !ok {
		t.Fatal("Users() is not the postgres repository")
	}
	if _, ok := m.RefreshTokens(db).(*refreshtokens.PostgresRepository); !ok {
		t.Fatal("RefreshTokens() is not the postgres repository")
	}
	if _, ok := m.Documents(db).(*documents.PostgresRepository); !ok {
		t.Fatal("Documents() is not the postgres repository")
	}
}

func TestRunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpenDatabase(t *testing.T) {
	db, mock := newDB(t)

	orig := sqlOpen
	defer func() { sqlOpen = orig }()

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" || dsn != "postgres://x" {
			t.Fatalf("unexpected open(%q, %q)", driver, dsn)
		}
		return db, nil
	}

	mock.ExpectPing()
	got, err := OpenDatabase(context.Background(), "postgres://x")
	if err != nil || got != db {
		t.Fatalf("OpenDatabase: %v", err)
	}

	mock.ExpectPing().WillReturnError(errors.New("refused"))
	if _, err := OpenDatabase(context.Background(), "postgres://x"); err == nil {
		t.Fatal("expected ping error")
	}

	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	if _, err := OpenDatabase(context.Background(), "postgres://x"); err == nil {
		t.Fatal("expected open error")
	}
}
